package validation

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"
)

// Date layouts accepted for date fields and date operands.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02T15:04:05"
)

// typeCheck is the implicit first predicate of every definition.
type typeCheck struct {
	typ InputType
}

func (t typeCheck) Validate(_ context.Context, in *Input) (*Failure, error) {
	if blank(in.Value) {
		return nil, nil
	}

	var ok bool
	switch t.typ {
	case TypeArray:
		_, ok = in.Value.([]any)
	case TypeBoolean:
		ok = isTruthy(in.Value) || isFalsy(in.Value)
	case TypeDate:
		_, ok = parseDateValue(in.Value, in.location())
	case TypeFile:
		_, ok = in.Value.(Blob)
	case TypeNumber:
		_, ok = toFloat(in.Value)
	case TypeString:
		_, ok = in.Value.(string)
	}
	if ok {
		return nil, nil
	}

	return &Failure{
		Key:          "type." + string(t.typ),
		Placeholders: Placeholders{":attribute": in.Attribute, ":type": string(t.typ)},
		Hard:         true,
	}, nil
}

// toFloat converts numeric strings and Go numerics. Booleans, slices and
// blobs are never numbers.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), !math.IsNaN(float64(n))
	case float64:
		return n, !math.IsNaN(n)
	}
	return 0, false
}

// scalarString renders strings, numbers and booleans for comparison
// against literal text.
func scalarString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case bool:
		return strconv.FormatBool(s), true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 32), true
	}
	if f, ok := toFloat(v); ok {
		return strconv.FormatFloat(f, 'f', -1, 64), true
	}
	return "", false
}

// parseDate accepts exactly DateLayout or DateTimeLayout.
func parseDate(s string, loc *time.Location) (time.Time, bool) {
	for _, layout := range []string{DateLayout, DateTimeLayout} {
		if len(s) != len(layout) {
			continue
		}
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseDateValue(v any, loc *time.Location) (time.Time, bool) {
	switch d := v.(type) {
	case time.Time:
		return d, !d.IsZero()
	case string:
		return parseDate(d, loc)
	}
	return time.Time{}, false
}
