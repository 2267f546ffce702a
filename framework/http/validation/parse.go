package validation

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrUnknownRule is returned for a rule name the type does not support.
	ErrUnknownRule = errors.New("validation: unknown rule")
	// ErrInvalidRule is returned for a known rule with a bad parameter.
	ErrInvalidRule = errors.New("validation: invalid rule parameter")
)

// Parse compiles a pipe-separated rule string into a builder. The first
// segment may name the type; without one the field is a string.
//
//	Parse("required|email")
//	Parse("number|required|between:1,10")
//	Parse("array|required_some|max:5")
//	Parse("date|after:starts_at")
//
// Parameters follow a colon; lists are comma-separated. Regex parameters
// cannot contain "|".
func Parse(expr string) (Builder, error) {
	var segments []string
	for _, s := range strings.Split(expr, "|") {
		if s = strings.TrimSpace(s); s != "" {
			segments = append(segments, s)
		}
	}

	typ := TypeString
	if len(segments) > 0 {
		if t, ok := inputTypes[segments[0]]; ok {
			typ = t
			segments = segments[1:]
		}
	}

	switch typ {
	case TypeArray:
		return build(Array(), segments, applyArray)
	case TypeBoolean:
		return build(Boolean(), segments, applyBoolean)
	case TypeDate:
		return build(Date(), segments, applyDate)
	case TypeFile:
		return build(File(), segments, applyFile)
	case TypeNumber:
		return build(Number(), segments, applyNumber)
	default:
		return build(String(), segments, applyString)
	}
}

// MustParse is like Parse but panics on error. Use it for rules fixed at
// compile time.
func MustParse(expr string) Builder {
	b, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return b
}

// ParseRules compiles a field → rule string map.
func ParseRules(exprs map[string]string) (Rules, error) {
	rules := make(Rules, len(exprs))
	for _, field := range sortedKeys(exprs) {
		b, err := Parse(exprs[field])
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field, err)
		}
		rules[field] = b
	}
	return rules, nil
}

var inputTypes = map[string]InputType{
	"array":   TypeArray,
	"boolean": TypeBoolean,
	"date":    TypeDate,
	"file":    TypeFile,
	"number":  TypeNumber,
	"string":  TypeString,
}

type ruleBuilder interface {
	*ArrayRule | *BooleanRule | *DateRule | *FileRule | *NumberRule | *StringRule
	Builder
}

// applyFunc applies one type-specific rule. ok is false for unknown names.
type applyFunc[B any] func(b B, name, param string) (ok bool, err error)

func build[B ruleBuilder](b B, segments []string, apply applyFunc[B]) (Builder, error) {
	for _, segment := range segments {
		// Parse rule name and optional parameter: min:3 → name=min, param=3
		name, param, _ := strings.Cut(segment, ":")
		name = strings.TrimSpace(name)

		ok, err := applyCommon(b, name, param)
		if !ok && err == nil {
			ok, err = apply(b, name, param)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", segment, err)
		}
		if !ok {
			return nil, fmt.Errorf("%w: %q for %s", ErrUnknownRule, name, b.Definition().Type)
		}
	}
	return b, nil
}

// common is the part of every builder the shared rules need.
type common interface {
	Definition() *Definition
}

func applyCommon(b common, name, param string) (bool, error) {
	def := b.Definition()
	switch name {
	case "required":
		def.Predicates = append(def.Predicates, presence{op: opRequired, msg: msg("required", nil)})
	case "prohibited":
		def.Predicates = append(def.Predicates, presence{op: opProhibited, msg: msg("prohibited", nil)})
	case "required_with":
		if param == "" {
			return false, fmt.Errorf("%w: %s needs a field", ErrInvalidRule, name)
		}
		def.Predicates = append(def.Predicates, presence{op: opRequiredWhen, when: fieldPresent(param), msg: msg("required", nil)})
	case "prohibited_with":
		if param == "" {
			return false, fmt.Errorf("%w: %s needs a field", ErrInvalidRule, name)
		}
		def.Predicates = append(def.Predicates, presence{op: opProhibitedWhen, when: fieldPresent(param), msg: msg("prohibited", nil)})
	case "bail":
		def.Bail = true
	case "nullable", "sometimes":
		// Every rule already skips absent values.
	default:
		return false, nil
	}
	return true, nil
}

// fieldPresent is the WhenFunc behind the *_with rules.
func fieldPresent(field string) WhenFunc {
	return func(_ context.Context, _ string, _ any, form FormData) (bool, error) {
		return present(formValue(form, field)), nil
	}
}

func applyArray(b *ArrayRule, name, param string) (bool, error) {
	switch name {
	case "required_some":
		b.RequiredSome()
	case "length", "size", "equal":
		n, err := intParam(param)
		if err != nil {
			return false, err
		}
		b.Length(n)
	default:
		return applyComparison(b.comparisonRules, name, param)
	}
	return true, nil
}

func applyBoolean(b *BooleanRule, name, _ string) (bool, error) {
	return applyDecision(b.decisionRules, name)
}

func applyDate(b *DateRule, name, param string) (bool, error) {
	switch name {
	case "equal", "at", "same", "date_equals", "after", "after_or_equal", "on_or_after",
		"before", "before_or_equal", "on_or_before", "between":
		if strings.TrimSpace(param) == "" {
			return false, fmt.Errorf("%w: %s needs a date or field", ErrInvalidRule, name)
		}
		param = strings.TrimSpace(param)
	}

	switch name {
	case "equal", "at", "same", "date_equals":
		b.Equal(param)
	case "after":
		b.After(param)
	case "after_or_equal", "on_or_after":
		b.AfterOrEqual(param)
	case "before":
		b.Before(param)
	case "before_or_equal", "on_or_before":
		b.BeforeOrEqual(param)
	case "between":
		lo, hi, ok := strings.Cut(param, ",")
		if !ok {
			return false, fmt.Errorf("%w: %q needs two values", ErrInvalidRule, param)
		}
		b.Between(strings.TrimSpace(lo), strings.TrimSpace(hi))
	default:
		return false, nil
	}
	return true, nil
}

func applyFile(b *FileRule, name, param string) (bool, error) {
	switch name {
	case "image":
		b.Image()
	case "mimetypes", "mime_types", "mimes":
		list := listParam(param)
		if len(list) == 0 {
			return false, fmt.Errorf("%w: %s needs a list", ErrInvalidRule, name)
		}
		b.MimeTypes(list)
	case "extensions":
		list := listParam(param)
		if len(list) == 0 {
			return false, fmt.Errorf("%w: %s needs a list", ErrInvalidRule, name)
		}
		b.Extensions(list)
	default:
		return false, nil
	}
	return true, nil
}

func applyNumber(b *NumberRule, name, param string) (bool, error) {
	if ok, err := applyComparison(b.comparisonRules, name, param); ok || err != nil {
		return ok, err
	}
	return applyPattern(b.patternRules, name, param)
}

func applyString(b *StringRule, name, param string) (bool, error) {
	if ok, _ := applyDecision(b.decisionRules, name); ok {
		return true, nil
	}
	if ok, err := applyPattern(b.patternRules, name, param); ok || err != nil {
		return ok, err
	}

	switch name {
	case "min_length", "min", "max_length", "max", "length", "size":
		n, err := intParam(param)
		if err != nil {
			return false, err
		}
		switch name {
		case "min_length", "min":
			b.MinLength(n)
		case "max_length", "max":
			b.MaxLength(n)
		default:
			b.Length(n)
		}
	case "length_between", "between":
		a, c, ok := strings.Cut(param, ",")
		if !ok {
			return false, fmt.Errorf("%w: %q needs two values", ErrInvalidRule, param)
		}
		lo, err := intParam(a)
		if err != nil {
			return false, err
		}
		hi, err := intParam(c)
		if err != nil {
			return false, err
		}
		b.LengthBetween(lo, hi)
	case "confirmed":
		b.Confirmed()
	case "in":
		b.In(listParam(param))
	case "not_in":
		b.NotIn(listParam(param))
	case "email":
		b.Email()
	case "username":
		b.Username()
	case "alpha":
		b.Alpha()
	case "alpha_dash":
		b.AlphaDash()
	case "alpha_num", "alpha_numeric":
		b.AlphaNumeric()
	case "ascii":
		b.ASCII()
	case "matches":
		b.Matches(param)
	case "mismatches":
		b.Mismatches(param)
	case "same", "equal":
		b.Same(param)
	case "different", "not_equal":
		b.Different(param)
	default:
		return false, nil
	}
	return true, nil
}

func applyDecision[B any](r decisionRules[B], name string) (bool, error) {
	switch name {
	case "accepted":
		r.Accepted()
	case "declined":
		r.Declined()
	default:
		return false, nil
	}
	return true, nil
}

func applyComparison[B any](r comparisonRules[B], name, param string) (bool, error) {
	switch name {
	case "min", "gt", "max", "lt", "gte", "lte":
		n, err := numberParam(param)
		if err != nil {
			return false, err
		}
		switch name {
		case "min", "gt":
			r.Min(n)
		case "max", "lt":
			r.Max(n)
		case "gte":
			r.Gte(n)
		case "lte":
			r.Lte(n)
		}
	case "between":
		lo, hi, err := pairParam(param)
		if err != nil {
			return false, err
		}
		r.Between(lo, hi)
	default:
		return false, nil
	}
	return true, nil
}

func applyPattern[B any](r patternRules[B], name, param string) (bool, error) {
	switch name {
	case "regex", "not_regex":
		if param == "" {
			return false, fmt.Errorf("%w: %s needs a pattern", ErrInvalidRule, name)
		}
		re, err := regexp.Compile(param)
		if err != nil {
			return false, fmt.Errorf("%w: %w", ErrInvalidRule, err)
		}
		if name == "regex" {
			r.Regex(re)
		} else {
			r.NotRegex(re)
		}
	default:
		return false, nil
	}
	return true, nil
}

func numberParam(param string) (float64, error) {
	n, err := strconv.ParseFloat(strings.TrimSpace(param), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidRule, param)
	}
	return n, nil
}

func intParam(param string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(param))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidRule, param)
	}
	return n, nil
}

func pairParam(param string) (float64, float64, error) {
	a, b, ok := strings.Cut(param, ",")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q needs two values", ErrInvalidRule, param)
	}
	lo, err := numberParam(a)
	if err != nil {
		return 0, 0, err
	}
	hi, err := numberParam(b)
	if err != nil {
		return 0, 0, err
	}
	return lo, hi, nil
}

func listParam(param string) []string {
	var out []string
	for _, s := range strings.Split(param, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
