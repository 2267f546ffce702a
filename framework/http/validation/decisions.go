package validation

import "context"

type decisionOp int

const (
	opAccepted decisionOp = iota
	opAcceptedWhen
	opDeclined
	opDeclinedWhen
)

// decision checks boolean-like acceptance or refusal.
type decision struct {
	op   decisionOp
	when WhenFunc
	msg  message
}

func (d decision) Validate(ctx context.Context, in *Input) (*Failure, error) {
	if blank(in.Value) {
		return nil, nil
	}

	switch d.op {
	case opAcceptedWhen, opDeclinedWhen:
		ok, err := d.when(ctx, in.Attribute, in.Value, in.Form)
		if err != nil || !ok {
			return nil, err
		}
	}

	var pass bool
	switch d.op {
	case opAccepted, opAcceptedWhen:
		pass = isTruthy(in.Value)
	case opDeclined, opDeclinedWhen:
		pass = isFalsy(in.Value)
	}
	if pass {
		return nil, nil
	}
	return d.msg.fail(attribute(in)), nil
}

func isTruthy(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		switch b {
		case "yes", "on", "1", "true":
			return true
		}
		return false
	}
	f, ok := toFloat(v)
	return ok && f == 1
}

func isFalsy(v any) bool {
	switch b := v.(type) {
	case bool:
		return !b
	case string:
		switch b {
		case "no", "off", "0", "false":
			return true
		}
		return false
	}
	f, ok := toFloat(v)
	return ok && f == 0
}
