package validation

import (
	"context"
	"regexp"
	"strings"
)

// Matcher is satisfied by *regexp.Regexp.
type Matcher interface {
	MatchString(s string) bool
}

// MatcherFunc adapts a function to Matcher.
type MatcherFunc func(s string) bool

// MatchString implements Matcher.
func (f MatcherFunc) MatchString(s string) bool { return f(s) }

var (
	emailPattern     = regexp.MustCompile(`^(([^<>()[\]\\.,;:\s@"]+(\.[^<>()[\]\\.,;:\s@"]+)*)|.(".+"))@((\[[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\])|(([a-zA-Z\-0-9]+\.)+[a-zA-Z]{2,}))$`)
	alphaPattern     = regexp.MustCompile(`^[\p{L}\p{M}]+$`)
	alphaDashPattern = regexp.MustCompile(`^[\p{L}\p{M}\p{N}\-_]+$`)
	alphaNumPattern  = regexp.MustCompile(`^[\p{L}\p{M}\p{N}]+$`)
	asciiPattern     = regexp.MustCompile(`^[\x00-\x7F]+$`)

	// 3 to 20 of [a-zA-Z0-9._], no "." or "_" at either end and never two
	// of them in a row.
	usernamePattern = MatcherFunc(func(s string) bool {
		if len(s) < 3 || len(s) > 20 {
			return false
		}
		if strings.Trim(s, "._") != s {
			return false
		}
		prevSep := false
		for i := 0; i < len(s); i++ {
			c := s[i]
			sep := c == '.' || c == '_'
			switch {
			case sep && prevSep:
				return false
			case sep, c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			default:
				return false
			}
			prevSep = sep
		}
		return true
	})
)

// pattern matches the textual form of a value.
type pattern struct {
	negate  bool
	matcher Matcher
	msg     message
}

func (p pattern) Validate(_ context.Context, in *Input) (*Failure, error) {
	if blank(in.Value) {
		return nil, nil
	}

	s, ok := scalarString(in.Value)
	matched := ok && p.matcher.MatchString(s)
	if matched != p.negate {
		return nil, nil
	}
	return p.msg.fail(attribute(in)), nil
}
