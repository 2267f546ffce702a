package validation

import (
	"context"
	"strconv"
	"unicode/utf8"
)

type countOp int

const (
	opEqual countOp = iota
	opGt
	opGte
	opLt
	opLte
	opBetween
)

// count compares a number, an array length or a string length.
type count struct {
	op       countOp
	measure  InputType
	min, max float64
	msg      message
}

func (c count) Validate(_ context.Context, in *Input) (*Failure, error) {
	if blank(in.Value) {
		return nil, nil
	}

	p := attribute(in).With(":$1", formatNumber(c.min))
	if c.op == opBetween {
		p[":$2"] = formatNumber(c.max)
		if c.min > c.max {
			return &Failure{Key: "config.count", Placeholders: p, Misconfigured: true}, nil
		}
	}

	n, ok := c.size(in.Value)
	if !ok {
		// The type check owns malformed values.
		return nil, nil
	}

	var pass bool
	switch c.op {
	case opEqual:
		pass = n == c.min
	case opGt:
		pass = n > c.min
	case opGte:
		pass = n >= c.min
	case opLt:
		pass = n < c.min
	case opLte:
		pass = n <= c.min
	case opBetween:
		pass = n >= c.min && n <= c.max
	}
	if pass {
		return nil, nil
	}
	return c.msg.fail(p), nil
}

func (c count) size(v any) (float64, bool) {
	switch c.measure {
	case TypeArray:
		if list, ok := v.([]any); ok {
			return float64(len(list)), true
		}
	case TypeNumber:
		return toFloat(v)
	case TypeString:
		if s, ok := v.(string); ok {
			return float64(utf8.RuneCountInString(s)), true
		}
	}
	return 0, false
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
