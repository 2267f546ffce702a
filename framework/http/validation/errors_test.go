package validation_test

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-formrules/framework/http/validation"
)

func TestErrors_Bag(t *testing.T) {
	e := validation.NewErrors()
	assert.False(t, e.Any())
	assert.Equal(t, "", e.First("name"))
	assert.Nil(t, e.Get("name"))

	e.Add("name", "first")
	e.Add("name", "first")
	e.Add("email", "bad")

	assert.True(t, e.Any())
	assert.True(t, e.Has("name"))
	assert.Equal(t, []string{"first", "first"}, e.Get("name"), "no de-duplication")
	assert.Equal(t, "first", e.First("name"))
	assert.Equal(t, []string{"email", "name"}, e.Fields())
	assert.Equal(t, 3, e.Count())
	assert.Equal(t, "email: bad; name: first; name: first", e.Error())

	all := e.All()
	all["name"][0] = "mutated"
	assert.Equal(t, "first", e.First("name"), "All returns a copy")

	e.Clear("missing")
	e.Clear("name")
	assert.False(t, e.Has("name"))
	assert.True(t, e.Has("email"))

	e.Clear()
	assert.False(t, e.Any())
}

func TestErrors_JSON(t *testing.T) {
	e := validation.NewErrors()
	e.Add("email", "The email field is required")

	b, err := json.Marshal(e)
	require.NoError(t, err)
	assert.JSONEq(t, `{"errors":{"email":["The email field is required"]}}`, string(b))
}

func TestFormat(t *testing.T) {
	got := validation.Format("The :attribute field must be between :$1 and :$2 (:$1)", validation.Placeholders{
		":attribute": "age",
		":$1":        "1",
		":$2":        "10",
	})
	assert.Equal(t, "The age field must be between 1 and 10 (1)", got)

	assert.Equal(t, "untouched :x", validation.Format("untouched :x", nil))
	assert.Equal(t, "v10", validation.Format(":$10", validation.Placeholders{":$1": "x", ":$10": "v10"}))
}

func TestForm(t *testing.T) {
	f := validation.NewForm().Add("b", "1").Add("a", "2").Add("b", "3")

	assert.Equal(t, []string{"b", "a"}, f.Keys())
	assert.Equal(t, "1", f.Get("b"))
	assert.Equal(t, []any{"1", "3"}, f.GetAll("b"))
	assert.Nil(t, f.Get("missing"))
	assert.NotNil(t, f.GetAll("missing"))
	assert.Empty(t, f.GetAll("missing"))

	f.Set("b", "x")
	assert.Equal(t, []any{"x"}, f.GetAll("b"))
	f.Del("a")
	assert.False(t, f.Has("a"))

	fromValues := validation.FromValues(url.Values{"tags[]": {"go", "rust"}, "name": {"Ann"}})
	assert.Equal(t, []string{"name", "tags[]"}, fromValues.Keys())
	assert.Equal(t, []any{"go", "rust"}, fromValues.GetAll("tags[]"))
}
