package validation

import (
	"context"
	"time"
)

// InputType is the primitive type a field is declared as.
type InputType string

const (
	TypeArray   InputType = "array"
	TypeBoolean InputType = "boolean"
	TypeDate    InputType = "date"
	TypeFile    InputType = "file"
	TypeNumber  InputType = "number"
	TypeString  InputType = "string"
)

// Input is what a predicate sees for one field (or one wildcard element).
type Input struct {
	Attribute string
	Value     any
	Form      FormData
	// Location is used to parse and render date strings. Nil means UTC.
	Location *time.Location
}

func (in *Input) location() *time.Location {
	if in.Location == nil {
		return time.UTC
	}
	return in.Location
}

// Failure describes a failed rule. Key selects the catalog template and
// Message, when set, replaces it.
type Failure struct {
	Key          string
	Message      string
	Placeholders Placeholders

	// Hard marks a type failure: it suppresses the rest of the chain.
	Hard bool
	// Misconfigured marks a rule whose own operands are invalid, e.g.
	// Between(5, 1).
	Misconfigured bool
}

// Predicate evaluates one rule. A nil Failure is a pass; a non-nil error
// aborts validation and is returned to the caller.
type Predicate interface {
	Validate(ctx context.Context, in *Input) (*Failure, error)
}

// Func is a custom rule. It returns the failure template (placeholders such
// as :attribute are substituted) or "" when the value passes.
type Func func(ctx context.Context, attribute string, value any, form FormData) (string, error)

// Validate implements Predicate.
func (f Func) Validate(ctx context.Context, in *Input) (*Failure, error) {
	msg, err := f(ctx, in.Attribute, in.Value, in.Form)
	if err != nil || msg == "" {
		return nil, err
	}
	return &Failure{Message: msg, Placeholders: Placeholders{":attribute": in.Attribute}}, nil
}

// WhenFunc gates the conditional rules (RequiredWhen, AcceptedWhen, ...).
type WhenFunc func(ctx context.Context, attribute string, value any, form FormData) (bool, error)

// message is the catalog key and optional caller override a rule renders.
type message struct {
	key      string
	override string
}

func (m message) fail(p Placeholders) *Failure {
	return &Failure{Key: m.key, Message: m.override, Placeholders: p}
}

func attribute(in *Input) Placeholders {
	return Placeholders{":attribute": in.Attribute}
}

// blank reports the "no value submitted" case most families skip.
func blank(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

func first(ss []string, fallback string) string {
	if len(ss) > 0 && ss[0] != "" {
		return ss[0]
	}
	return fallback
}
