package validation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"
)

// ErrMisconfigured is returned in strict mode when a rule's own operands
// are invalid, e.g. Between(5, 1) or a date operand that does not parse.
var ErrMisconfigured = errors.New("validation: misconfigured rule")

// ── Options ──────────────────────────────────────────────────────────────────

type options struct {
	logger   zerolog.Logger
	strict   bool
	location *time.Location
	catalog  *Catalog
	lang     language.Tag
}

func defaultOptions() options {
	return options{
		logger:   zerolog.Nop(),
		location: time.UTC,
		lang:     language.Und,
	}
}

// Option configures a Validator or Factory.
type Option func(*options)

// WithLogger sets the logger used to report misconfigured rules.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// Strict makes misconfigured rules abort validation with ErrMisconfigured
// instead of being recorded as field messages.
func Strict() Option {
	return func(o *options) { o.strict = true }
}

// WithLocation sets the location date strings are interpreted in.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		if loc != nil {
			o.location = loc
		}
	}
}

// WithCatalog sets the message catalog.
func WithCatalog(c *Catalog) Option {
	return func(o *options) { o.catalog = c }
}

// WithLanguage selects the catalog language.
func WithLanguage(tag language.Tag) Option {
	return func(o *options) { o.lang = tag }
}

// ── Validator ────────────────────────────────────────────────────────────────

// Validator runs a rule set against one form submission.
type Validator struct {
	form   FormData
	rules  Rules
	opts   options
	errors *Errors
}

// Make creates a new Validator, much like Validator::make($data, $rules).
func Make(form FormData, rules Rules, opts ...Option) *Validator {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if form == nil {
		form = NewForm()
	}
	return &Validator{
		form:   form,
		rules:  rules,
		opts:   o,
		errors: NewErrors(),
	}
}

// Fails runs validation and returns true if any rule fails.
func (v *Validator) Fails(ctx context.Context) (bool, error) {
	bag, err := v.Validate(ctx)
	if err != nil {
		return false, err
	}
	return bag.Any(), nil
}

// Passes runs validation and returns true if all rules pass.
func (v *Validator) Passes(ctx context.Context) (bool, error) {
	fails, err := v.Fails(ctx)
	return !fails && err == nil, err
}

// Errors returns the error bag of the last run.
func (v *Validator) Errors() *Errors { return v.errors }

// Validate runs every field's predicates and returns a fresh error bag.
// Fields are processed in name order. The returned error is non-nil only
// when a predicate failed to run, the context ended, or (in strict mode)
// a rule is misconfigured; rule failures are reported in the bag.
func (v *Validator) Validate(ctx context.Context) (*Errors, error) {
	bag := NewErrors()
	v.errors = bag

	for _, field := range sortedKeys(v.rules) {
		if err := ctx.Err(); err != nil {
			return bag, err
		}
		builder := v.rules[field]
		if builder == nil {
			continue
		}
		def := builder.Definition()

		var err error
		if alias, ok := strings.CutSuffix(field, ".*"); ok {
			err = v.validateEach(ctx, bag, alias, def)
		} else {
			err = v.validateField(ctx, bag, field, def)
		}
		if err != nil {
			return bag, err
		}
	}

	v.opts.logger.Debug().
		Int("fields", len(v.rules)).
		Int("failures", bag.Count()).
		Msg("form validated")
	return bag, nil
}

func (v *Validator) validateField(ctx context.Context, bag *Errors, field string, def *Definition) error {
	in := &Input{
		Attribute: field,
		Value:     v.value(field),
		Form:      v.form,
		Location:  v.opts.location,
	}

	for _, p := range def.Predicates {
		f, err := p.Validate(ctx, in)
		if err != nil {
			return fmt.Errorf("validate %s: %w", field, err)
		}
		if f == nil {
			continue
		}
		msg, err := v.render(in.Attribute, def, f)
		if err != nil {
			return err
		}
		bag.Add(field, msg)
		if f.Hard || def.Bail {
			break
		}
	}
	return nil
}

// validateEach runs def against every entry of alias[]. Messages go under
// "alias[]" with the entry's own attribute name "alias[i]". Entries never
// bail; a type failure only stops the entry it hit.
func (v *Validator) validateEach(ctx context.Context, bag *Errors, alias string, def *Definition) error {
	key := alias + "[]"
	values := v.form.GetAll(key)
	halted := make([]bool, len(values))

	for _, p := range def.Predicates {
		for i, value := range values {
			if halted[i] {
				continue
			}
			in := &Input{
				Attribute: fmt.Sprintf("%s[%d]", alias, i),
				Value:     value,
				Form:      v.form,
				Location:  v.opts.location,
			}
			f, err := p.Validate(ctx, in)
			if err != nil {
				return fmt.Errorf("validate %s: %w", in.Attribute, err)
			}
			if f == nil {
				continue
			}
			msg, err := v.render(in.Attribute, def, f)
			if err != nil {
				return err
			}
			bag.Add(key, msg)
			if f.Hard {
				halted[i] = true
			}
		}
	}
	return nil
}

func (v *Validator) value(field string) any {
	if strings.HasSuffix(field, "[]") {
		return v.form.GetAll(field)
	}
	return v.form.Get(field)
}

func (v *Validator) render(attr string, def *Definition, f *Failure) (string, error) {
	if f.Misconfigured {
		if v.opts.strict {
			return "", fmt.Errorf("%w: %s (%s)", ErrMisconfigured, attr, f.Key)
		}
		v.opts.logger.Warn().
			Str("attribute", attr).
			Str("rule", f.Key).
			Msg("misconfigured validation rule")
	}

	p := f.Placeholders
	if p == nil {
		p = Placeholders{":attribute": attr}
	}

	tmpl := f.Message
	if f.Hard {
		p[":type"] = string(def.Type)
		if def.Message != "" {
			tmpl = def.Message
		}
	}
	if tmpl == "" {
		tmpl = v.opts.catalog.Lookup(v.opts.lang, f.Key)
	}
	return Format(tmpl, p), nil
}

// ── Factory ──────────────────────────────────────────────────────────────────

// Factory creates validators sharing the same options, e.g. one per HTTP
// request.
type Factory struct {
	opts []Option
	base options
}

// NewFactory returns a factory applying opts to every validator it makes.
func NewFactory(opts ...Option) *Factory {
	base := defaultOptions()
	for _, opt := range opts {
		opt(&base)
	}
	return &Factory{opts: opts, base: base}
}

// Make creates a validator; extra options apply after the factory's.
func (f *Factory) Make(form FormData, rules Rules, opts ...Option) *Validator {
	all := make([]Option, 0, len(f.opts)+len(opts))
	all = append(all, f.opts...)
	all = append(all, opts...)
	return Make(form, rules, all...)
}

// Catalog returns the factory's message catalog, possibly nil.
func (f *Factory) Catalog() *Catalog { return f.base.catalog }

// Logger returns the factory's logger.
func (f *Factory) Logger() zerolog.Logger { return f.base.logger }
