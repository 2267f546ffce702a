package validation

import (
	"context"
	"regexp"
	"time"
)

// dates compares a date field with a time.Time, a date string or another
// field's value.
type dates struct {
	op       countOp
	min, max any // time.Time, date string or field name
	msg      message
}

// operand resolution outcomes
type operandState int

const (
	operandOK operandState = iota
	operandMissing
	operandInvalid
)

func (d dates) Validate(_ context.Context, in *Input) (*Failure, error) {
	if blank(in.Value) {
		return nil, nil
	}

	loc := in.location()
	p := attribute(in)
	misconfigured := &Failure{Key: "config.date", Placeholders: p, Misconfigured: true}

	from, state := resolveOperand(d.min, in.Form, loc)
	switch state {
	case operandMissing:
		return nil, nil
	case operandInvalid:
		return misconfigured, nil
	}
	value, ok := parseDateValue(in.Value, loc)
	if !ok {
		return misconfigured, nil
	}
	p[":$1"] = formatDate(from, loc)

	var pass bool
	switch d.op {
	case opEqual:
		pass = value.Equal(from)
	case opGt:
		pass = value.After(from)
	case opGte:
		pass = !value.Before(from)
	case opLt:
		pass = value.Before(from)
	case opLte:
		pass = !value.After(from)
	case opBetween:
		to, state := resolveOperand(d.max, in.Form, loc)
		switch state {
		case operandMissing:
			return nil, nil
		case operandInvalid:
			return misconfigured, nil
		}
		if from.After(to) {
			return misconfigured, nil
		}
		p[":$2"] = formatDate(to, loc)
		pass = !value.Before(from) && !value.After(to)
	}
	if pass {
		return nil, nil
	}
	return d.msg.fail(p), nil
}

// dateShape matches literals that look like a date even when the calendar
// rejects them, e.g. 2024-02-30.
var dateShape = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}(T\d{2}:\d{2}:\d{2})?$`)

// resolveOperand turns a rule operand into a time. A date-shaped string
// that does not parse is invalid. Other strings name another field; an
// absent or empty field is "missing", which lets the rule pass.
func resolveOperand(op any, form FormData, loc *time.Location) (time.Time, operandState) {
	switch v := op.(type) {
	case time.Time:
		if v.IsZero() {
			return time.Time{}, operandInvalid
		}
		return v, operandOK
	case string:
		if t, ok := parseDate(v, loc); ok {
			return t, operandOK
		}
		if dateShape.MatchString(v) {
			return time.Time{}, operandInvalid
		}
		if form == nil {
			return time.Time{}, operandMissing
		}
		other := form.Get(v)
		if blank(other) {
			return time.Time{}, operandMissing
		}
		if t, ok := parseDateValue(other, loc); ok {
			return t, operandOK
		}
	}
	return time.Time{}, operandInvalid
}

// formatDate renders YYYY-MM-DD, adding HH:MM when the time is not
// midnight.
func formatDate(t time.Time, loc *time.Location) string {
	t = t.In(loc)
	if t.Hour() == 0 && t.Minute() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format("2006-01-02 15:04")
}
