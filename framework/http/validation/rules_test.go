package validation_test

import (
	"context"
	"errors"
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-formrules/framework/http/validation"
)

// ── decisions ────────────────────────────────────────────────────────────────

func TestDecisions_Accepted(t *testing.T) {
	r := validation.Rules{"terms": validation.Boolean().Accepted()}
	for _, v := range []any{"yes", "on", "1", "true", true, 1} {
		pass(t, "accepts", formOf("terms", v), r)
	}
	for _, v := range []any{"no", "off", "0", "false", false} {
		fail(t, "rejects", "terms", formOf("terms", v), r)
	}
	pass(t, "absent is left to required", formOf(), r)

	bag := run(t, formOf("terms", "no"), r)
	assert.Equal(t, "The terms field must be accepted", bag.First("terms"))
}

func TestDecisions_Declined(t *testing.T) {
	r := validation.Rules{"marketing": validation.String().Declined()}
	pass(t, "off", formOf("marketing", "off"), r)
	fail(t, "yes", "marketing", formOf("marketing", "yes"), r)
}

func TestDecisions_When(t *testing.T) {
	isAdult := func(_ context.Context, _ string, _ any, form validation.FormData) (bool, error) {
		return form.Get("adult") == "yes", nil
	}
	r := validation.Rules{"waiver": validation.Boolean().AcceptedWhen(isAdult).DeclinedWhen(
		func(context.Context, string, any, validation.FormData) (bool, error) { return false, nil },
	)}

	pass(t, "gate closed", formOf("adult", "no", "waiver", "no"), r)
	fail(t, "gate open", "waiver", formOf("adult", "yes", "waiver", "no"), r)
	pass(t, "gate open and accepted", formOf("adult", "yes", "waiver", "on"), r)
}

// ── dates ────────────────────────────────────────────────────────────────────

func TestDates_Literals(t *testing.T) {
	tests := []struct {
		name  string
		rule  *validation.DateRule
		value string
		want  string
	}{
		{"after pass", validation.Date().After("2024-01-01"), "2024-01-02", ""},
		{"after fail", validation.Date().After("2024-01-01"), "2024-01-01", "The d field must come after 2024-01-01"},
		{"on or after", validation.Date().OnOrAfter("2024-01-01"), "2024-01-01", ""},
		{"before", validation.Date().Before("2024-01-01"), "2024-01-01", "The d field must come before 2024-01-01"},
		{"on or before", validation.Date().OnOrBefore("2024-01-01"), "2023-12-31", ""},
		{"equal", validation.Date().At("2024-01-01"), "2024-01-01", ""},
		{"equal fail", validation.Date().Same("2024-01-01"), "2024-01-02", "The d field must be 2024-01-01"},
		{"time rendering", validation.Date().After("2024-01-01T10:30:00"), "2024-01-01", "The d field must come after 2024-01-01 10:30"},
		{"between inside", validation.Date().Between("2024-01-01", "2024-12-31"), "2024-12-31", ""},
		{"between outside", validation.Date().Between("2024-01-01", "2024-12-31"), "2025-01-01",
			"The d field must come after 2024-01-01 but not later than 2024-12-31"},
		{"time.Time operand", validation.Date().Before(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)), "2024-04-30", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bag := run(t, formOf("d", tt.value), validation.Rules{"d": tt.rule})
			assert.Equal(t, tt.want, bag.First("d"))
		})
	}
}

func TestDates_FieldOperands(t *testing.T) {
	r := validation.Rules{"ends_at": validation.Date().After("starts_at")}

	pass(t, "missing operand field passes", formOf("ends_at", "2024-01-01"), r)
	pass(t, "empty operand field passes", formOf("starts_at", "", "ends_at", "2024-01-01"), r)
	pass(t, "later than field", formOf("starts_at", "2024-01-01", "ends_at", "2024-01-02"), r)

	bag := run(t, formOf("starts_at", "2024-01-03", "ends_at", "2024-01-02"), r)
	assert.Equal(t, "The ends_at field must come after 2024-01-03", bag.First("ends_at"))

	bag = run(t, formOf("starts_at", "tomorrow", "ends_at", "2024-01-02"), r)
	assert.Equal(t, "The ends_at field or the comparison date or field is not a valid date.", bag.First("ends_at"))
}

func TestDates_MisconfiguredBetween(t *testing.T) {
	r := validation.Rules{"d": validation.Date().Between("2024-12-31", "2024-01-01")}

	bag := run(t, formOf("d", "2024-06-01"), r)
	assert.Equal(t, "The d field or the comparison date or field is not a valid date.", bag.First("d"))

	_, err := validation.Make(formOf("d", "2024-06-01"), r, validation.Strict()).Validate(context.Background())
	assert.ErrorIs(t, err, validation.ErrMisconfigured)

	pass(t, "missing max field passes", formOf("d", "2024-06-01"),
		validation.Rules{"d": validation.Date().Between("2024-01-01", "until")})
	fail(t, "zero time operand", "d", formOf("d", "2024-06-01"),
		validation.Rules{"d": validation.Date().After(time.Time{})})
}

func TestDates_UnparseableLiterals(t *testing.T) {
	for _, op := range []string{"2024-02-30", "2024-13-01", "2024-01-01T25:00:00"} {
		t.Run(op, func(t *testing.T) {
			r := validation.Rules{"d": validation.Date().After(op)}

			bag := run(t, formOf("d", "2024-06-01"), r)
			assert.Equal(t, "The d field or the comparison date or field is not a valid date.", bag.First("d"))

			_, err := validation.Make(formOf("d", "2024-06-01"), r, validation.Strict()).Validate(context.Background())
			assert.ErrorIs(t, err, validation.ErrMisconfigured)
		})
	}

	t.Run("between upper bound", func(t *testing.T) {
		bag := run(t, formOf("d", "2024-06-01"), validation.Rules{"d": validation.Date().Between("2024-01-01", "2024-02-30")})
		assert.Equal(t, "The d field or the comparison date or field is not a valid date.", bag.First("d"))
	})

	t.Run("unparseable field value", func(t *testing.T) {
		bag := run(t, formOf("starts_at", "2024-02-30", "d", "2024-06-01"),
			validation.Rules{"d": validation.Date().After("starts_at")})
		assert.Equal(t, "The d field or the comparison date or field is not a valid date.", bag.First("d"))
	})
}

func TestDates_Location(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	deadline := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) // 09:00 in Tokyo

	r := validation.Rules{"d": validation.Date().Before(deadline)}
	bag := run(t, formOf("d", "2024-01-01T10:00:00"), r, validation.WithLocation(tokyo))
	assert.Equal(t, "The d field must come before 2024-01-01 09:00", bag.First("d"))

	bag = run(t, formOf("d", "2024-01-01T08:00:00"), r, validation.WithLocation(tokyo))
	assert.False(t, bag.Any())
}

// ── files ────────────────────────────────────────────────────────────────────

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")

func TestFiles_Image(t *testing.T) {
	r := validation.Rules{"avatar": validation.File().Image()}

	pass(t, "png content", formOf("avatar", validation.BytesBlob("me.txt", pngBytes)), r)
	pass(t, "empty upload is left to required", formOf("avatar", validation.BytesBlob("me.png", nil)), r)

	bag := run(t, formOf("avatar", validation.BytesBlob("me.png", []byte("just some text, not an image"))), r)
	assert.Equal(t, "The avatar field has an invalid file format", bag.First("avatar"))
}

func TestFiles_MimeTypesAndExtensions(t *testing.T) {
	form := formOf("doc", validation.BytesBlob("scan.pdf", pngBytes))

	pass(t, "mime type", form, validation.Rules{"doc": validation.File().MimeType("image/png")})
	pass(t, "extension with dot", form, validation.Rules{"doc": validation.File().Extension(".png")})
	pass(t, "extension list", form, validation.Rules{"doc": validation.File().Extensions([]string{"jpg", "png"})})
	fail(t, "filename is ignored", "doc", form, validation.Rules{"doc": validation.File().MimeTypes([]string{"application/pdf"})})
}

type brokenBlob struct{}

func (brokenBlob) Filename() string { return "broken.bin" }
func (brokenBlob) Size() int64      { return 10 }
func (brokenBlob) Open() (io.ReadCloser, error) {
	return nil, errors.New("disk gone")
}

func TestFiles_OpenErrorPropagates(t *testing.T) {
	_, err := validation.Make(formOf("f", brokenBlob{}), validation.Rules{
		"f": validation.File().Image(),
	}).Validate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk gone")
}

// ── lists ────────────────────────────────────────────────────────────────────

func TestLists(t *testing.T) {
	roles := []string{"admin", "editor"}

	pass(t, "in", formOf("role", "admin"), validation.Rules{"role": validation.String().In(roles)})
	pass(t, "not in", formOf("role", "guest"), validation.Rules{"role": validation.String().NotIn(roles)})

	bag := run(t, formOf("role", "guest"), validation.Rules{"role": validation.String().In(roles)})
	assert.Equal(t, "The role field must be in admin, editor", bag.First("role"))

	bag = run(t, formOf("role", "admin"), validation.Rules{"role": validation.String().NotIn(roles)})
	assert.Equal(t, "The role field must not be in admin, editor", bag.First("role"))
}

// ── patterns ─────────────────────────────────────────────────────────────────

func TestPatterns_Username(t *testing.T) {
	r := validation.Rules{"u": validation.String().Username()}

	for _, ok := range []string{"john", "john.doe", "john_doe99", "abc", "a.b_c"} {
		pass(t, ok, formOf("u", ok), r)
	}
	for _, bad := range []string{"jo", ".john", "john.", "_john", "john__doe", "john._doe", "jöhn", "abcdefghijklmnopqrstu"} {
		fail(t, bad, "u", formOf("u", bad), r)
	}
}

func TestPatterns_Email(t *testing.T) {
	r := validation.Rules{"email": validation.String().Email()}

	pass(t, "simple", formOf("email", "user@example.com"), r)
	pass(t, "subdomain", formOf("email", "user@mail.example.co.uk"), r)
	pass(t, "ip literal", formOf("email", "user@[192.168.0.1]"), r)
	fail(t, "no at sign", "email", formOf("email", "notanemail"), r)
	fail(t, "no domain", "email", formOf("email", "user@"), r)
	fail(t, "short tld", "email", formOf("email", "user@example.c"), r)
}

func TestPatterns_CharacterClasses(t *testing.T) {
	tests := []struct {
		name  string
		rule  *validation.StringRule
		ok    []string
		notOK []string
	}{
		{"alpha", validation.String().Alpha(), []string{"abc", "Zoë", "日本"}, []string{"abc1", "a b"}},
		{"alpha dash", validation.String().AlphaDash(), []string{"a-b_c1"}, []string{"a.b", "a b"}},
		{"alpha num", validation.String().AlphaNum(), []string{"abc123", "é1"}, []string{"a-1"}},
		{"ascii", validation.String().ASCII(), []string{"hello!~"}, []string{"héllo"}},
	}
	for _, tt := range tests {
		for _, v := range tt.ok {
			pass(t, tt.name+" "+v, formOf("f", v), validation.Rules{"f": tt.rule})
		}
		for _, v := range tt.notOK {
			fail(t, tt.name+" "+v, "f", formOf("f", v), validation.Rules{"f": tt.rule})
		}
	}
}

func TestPatterns_Regex(t *testing.T) {
	zip := regexp.MustCompile(`^\d{5}$`)

	pass(t, "number matches", formOf("zip", "12345"), validation.Rules{"zip": validation.Number().Regex(zip)})
	fail(t, "number does not match", "zip", formOf("zip", "1234"), validation.Rules{"zip": validation.Number().Regex(zip)})
	fail(t, "not regex", "code", formOf("code", "12345"), validation.Rules{"code": validation.String().NotRegex(zip)})

	upper := validation.MatcherFunc(func(s string) bool { return s == "OK" })
	pass(t, "matcher func", formOf("s", "OK"), validation.Rules{"s": validation.String().Regex(upper)})

	bag := run(t, formOf("zip", "1"), validation.Rules{"zip": validation.String().Regex(zip)})
	assert.Equal(t, "The zip field has an invalid format", bag.First("zip"))
}
