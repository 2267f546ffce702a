package validation

import (
	"context"
	"slices"
	"strings"
)

// list checks membership of a scalar value in a fixed allow-list.
type list struct {
	negate bool
	values []string
	msg    message
}

func (l list) Validate(_ context.Context, in *Input) (*Failure, error) {
	if blank(in.Value) {
		return nil, nil
	}

	s, ok := scalarString(in.Value)
	found := ok && slices.Contains(l.values, s)
	if found != l.negate {
		return nil, nil
	}
	return l.msg.fail(attribute(in).With(":array", strings.Join(l.values, ", "))), nil
}
