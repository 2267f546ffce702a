package validation

// ── Definitions ──────────────────────────────────────────────────────────────

// Definition is what a builder produces for one field: the declared type,
// the type-failure message override, the bail flag and the ordered
// predicate list. The first predicate is always the implicit type check.
type Definition struct {
	Type       InputType
	Message    string
	Bail       bool
	Predicates []Predicate
}

// Builder is implemented by every rule builder.
type Builder interface {
	Definition() *Definition
}

// Rules maps field names to builders.
//
//	validation.Rules{
//	    "email":   validation.String().Required().Email(),
//	    "tags.*":  validation.String().Required(),
//	    "avatar":  validation.File().Image(),
//	}
type Rules map[string]Builder

func msg(key string, override []string) message {
	return message{key: key, override: first(override, "")}
}

// base carries the chain state shared by all builders. B is the concrete
// builder so chained calls keep its full method set.
type base[B any] struct {
	self B
	def  Definition
}

func newBase[B any](self B, typ InputType, message []string) base[B] {
	return base[B]{
		self: self,
		def: Definition{
			Type:       typ,
			Message:    first(message, ""),
			Predicates: []Predicate{typeCheck{typ: typ}},
		},
	}
}

// Definition implements Builder.
func (b *base[B]) Definition() *Definition { return &b.def }

func (b *base[B]) add(p Predicate) B {
	b.def.Predicates = append(b.def.Predicates, p)
	return b.self
}

// Required fails on nil, blank strings and empty blobs. For list fields
// every entry must be present.
func (b *base[B]) Required(message ...string) B {
	return b.add(presence{op: opRequired, msg: msg("required", message)})
}

// RequiredWhen applies Required only when fn reports true.
func (b *base[B]) RequiredWhen(fn WhenFunc, message ...string) B {
	return b.add(presence{op: opRequiredWhen, when: fn, msg: msg("required", message)})
}

// Prohibited fails when a value is present.
func (b *base[B]) Prohibited(message ...string) B {
	return b.add(presence{op: opProhibited, msg: msg("prohibited", message)})
}

// ProhibitedWhen applies Prohibited only when fn reports true.
func (b *base[B]) ProhibitedWhen(fn WhenFunc, message ...string) B {
	return b.add(presence{op: opProhibitedWhen, when: fn, msg: msg("prohibited", message)})
}

// Custom appends an arbitrary rule.
func (b *base[B]) Custom(fn Func) B {
	return b.add(fn)
}

// Use appends a Predicate implementation.
func (b *base[B]) Use(p Predicate) B {
	return b.add(p)
}

// Bail stops the field at its first failure.
func (b *base[B]) Bail() B {
	b.def.Bail = true
	return b.self
}

// ── Shared rule sets ─────────────────────────────────────────────────────────

// decisionRules are the accept/decline checks shared by Boolean and String.
type decisionRules[B any] struct {
	b *base[B]
}

// Accepted requires yes, on, 1 or true.
func (r decisionRules[B]) Accepted(message ...string) B {
	return r.b.add(decision{op: opAccepted, msg: msg("accepted", message)})
}

// AcceptedWhen applies Accepted only when fn reports true.
func (r decisionRules[B]) AcceptedWhen(fn WhenFunc, message ...string) B {
	return r.b.add(decision{op: opAcceptedWhen, when: fn, msg: msg("accepted", message)})
}

// Declined requires no, off, 0 or false.
func (r decisionRules[B]) Declined(message ...string) B {
	return r.b.add(decision{op: opDeclined, msg: msg("declined", message)})
}

// DeclinedWhen applies Declined only when fn reports true.
func (r decisionRules[B]) DeclinedWhen(fn WhenFunc, message ...string) B {
	return r.b.add(decision{op: opDeclinedWhen, when: fn, msg: msg("declined", message)})
}

// comparisonRules are the bound checks shared by Array (length) and Number
// (value). Min and Max are strict.
type comparisonRules[B any] struct {
	b       *base[B]
	measure InputType
}

func (r comparisonRules[B]) compare(op countOp, name string, min, max float64, message []string) B {
	return r.b.add(count{
		op:      op,
		measure: r.measure,
		min:     min,
		max:     max,
		msg:     msg(string(r.measure)+"."+name, message),
	})
}

// Min requires a value strictly greater than n.
func (r comparisonRules[B]) Min(n float64, message ...string) B {
	return r.compare(opGt, "gt", n, 0, message)
}

// Gt is an alias of Min.
func (r comparisonRules[B]) Gt(n float64, message ...string) B { return r.Min(n, message...) }

// Max requires a value strictly less than n.
func (r comparisonRules[B]) Max(n float64, message ...string) B {
	return r.compare(opLt, "lt", n, 0, message)
}

// Lt is an alias of Max.
func (r comparisonRules[B]) Lt(n float64, message ...string) B { return r.Max(n, message...) }

// Gte requires a value of at least n.
func (r comparisonRules[B]) Gte(n float64, message ...string) B {
	return r.compare(opGte, "gte", n, 0, message)
}

// Lte requires a value of at most n.
func (r comparisonRules[B]) Lte(n float64, message ...string) B {
	return r.compare(opLte, "lte", n, 0, message)
}

// Between is inclusive on both ends. min > max is reported as a
// misconfiguration.
func (r comparisonRules[B]) Between(min, max float64, message ...string) B {
	return r.compare(opBetween, "between", min, max, message)
}

// patternRules are the regex checks shared by Number and String.
type patternRules[B any] struct {
	b *base[B]
}

// Regex requires the value to match m (a *regexp.Regexp or MatcherFunc).
func (r patternRules[B]) Regex(m Matcher, message ...string) B {
	return r.b.add(pattern{matcher: m, msg: msg("format", message)})
}

// NotRegex requires the value not to match m.
func (r patternRules[B]) NotRegex(m Matcher, message ...string) B {
	return r.b.add(pattern{negate: true, matcher: m, msg: msg("format", message)})
}

// ── Entry points ─────────────────────────────────────────────────────────────

// Array declares a list field, normally named "field[]". The optional
// message replaces the type-failure message.
func Array(message ...string) *ArrayRule {
	r := &ArrayRule{}
	r.base = newBase(r, TypeArray, message)
	r.comparisonRules = comparisonRules[*ArrayRule]{b: &r.base, measure: TypeArray}
	return r
}

// Boolean declares a yes/no style field.
func Boolean(message ...string) *BooleanRule {
	r := &BooleanRule{}
	r.base = newBase(r, TypeBoolean, message)
	r.decisionRules = decisionRules[*BooleanRule]{b: &r.base}
	return r
}

// Date declares a YYYY-MM-DD or YYYY-MM-DDTHH:MM:SS field.
func Date(message ...string) *DateRule {
	r := &DateRule{}
	r.base = newBase(r, TypeDate, message)
	return r
}

// File declares an upload field.
func File(message ...string) *FileRule {
	r := &FileRule{}
	r.base = newBase(r, TypeFile, message)
	return r
}

// Number declares a numeric field.
func Number(message ...string) *NumberRule {
	r := &NumberRule{}
	r.base = newBase(r, TypeNumber, message)
	r.comparisonRules = comparisonRules[*NumberRule]{b: &r.base, measure: TypeNumber}
	r.patternRules = patternRules[*NumberRule]{b: &r.base}
	return r
}

// String declares a text field.
func String(message ...string) *StringRule {
	r := &StringRule{}
	r.base = newBase(r, TypeString, message)
	r.decisionRules = decisionRules[*StringRule]{b: &r.base}
	r.patternRules = patternRules[*StringRule]{b: &r.base}
	return r
}
