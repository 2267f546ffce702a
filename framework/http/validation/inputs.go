package validation

import (
	"context"
	"strings"
)

type inputOp int

const (
	opRequired inputOp = iota
	opRequiredWhen
	opProhibited
	opProhibitedWhen
	opRequiredSome
	opRequiredSomeWhen
	opConfirmed
	opMatches
	opMismatches
	opSame
	opDifferent
)

// presence covers the required/prohibited family and the cross-field
// equality checks. other is the compared field name or literal text.
type presence struct {
	op    inputOp
	when  WhenFunc
	other string
	msg   message
}

func (r presence) Validate(ctx context.Context, in *Input) (*Failure, error) {
	switch r.op {
	case opRequiredWhen, opProhibitedWhen, opRequiredSomeWhen:
		ok, err := r.when(ctx, in.Attribute, in.Value, in.Form)
		if err != nil || !ok {
			return nil, err
		}
	}

	list, isList := in.Value.([]any)

	var pass bool
	switch r.op {
	case opRequired, opRequiredWhen:
		if isList {
			pass = len(list) > 0 && all(list)
		} else {
			pass = present(in.Value)
		}
	case opProhibited, opProhibitedWhen:
		if isList {
			pass = !some(list)
		} else {
			pass = !present(in.Value)
		}
	case opRequiredSome, opRequiredSomeWhen:
		pass = !isList || some(list)
	case opConfirmed:
		pass = equalValues(in.Value, confirmation(in))
	case opMatches:
		pass = equalValues(in.Value, formValue(in.Form, r.other))
	case opMismatches:
		pass = !equalValues(in.Value, formValue(in.Form, r.other))
	case opSame:
		pass = equalValues(in.Value, r.other)
	case opDifferent:
		pass = !equalValues(in.Value, r.other)
	}
	if pass {
		return nil, nil
	}

	p := attribute(in)
	switch r.op {
	case opMatches, opMismatches, opSame, opDifferent:
		p[":$1"] = r.other
	}
	return r.msg.fail(p), nil
}

// present treats nil, empty blobs and whitespace-only strings as absent.
func present(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case Blob:
		return x.Size() > 0
	case string:
		return strings.TrimSpace(x) != ""
	}
	return true
}

func all(list []any) bool {
	for _, v := range list {
		if !present(v) {
			return false
		}
	}
	return true
}

func some(list []any) bool {
	for _, v := range list {
		if present(v) {
			return true
		}
	}
	return false
}

func confirmation(in *Input) any {
	if v := formValue(in.Form, in.Attribute+"_confirmation"); present(v) {
		return v
	}
	return formValue(in.Form, in.Attribute+"Confirmation")
}

func formValue(form FormData, key string) any {
	if form == nil {
		return nil
	}
	return form.Get(key)
}

// equalValues compares scalars by their text. Blobs and lists never
// compare equal.
func equalValues(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	as, aok := scalarString(a)
	bs, bok := scalarString(b)
	return aok && bok && as == bs
}
