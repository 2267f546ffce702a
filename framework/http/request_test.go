package http_test

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	gohttp "github.com/km-arc/go-formrules/framework/http"
	"github.com/km-arc/go-formrules/framework/http/validation"
)

// ── helpers ──────────────────────────────────────────────────────────────────

func newJSONRequest(t *testing.T, body string) *gohttp.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	return gohttp.NewRequest(req)
}

func newFormRequest(t *testing.T, target string, values url.Values) *gohttp.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return gohttp.NewRequest(req)
}

func multipartBody(t *testing.T, fields map[string]string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for name, data := range files {
		fw, err := mw.CreateFormFile(name, name+".bin")
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

// ── Form: JSON ───────────────────────────────────────────────────────────────

func TestRequest_Form_JSON(t *testing.T) {
	req := newJSONRequest(t, `{
		"name": "Alice",
		"age": 30,
		"ratio": 1.50,
		"terms": true,
		"nickname": null,
		"tags": ["go", 7],
		"address": {"city": "Oslo", "zip": "0150"},
		"items": [{"sku": "A1"}]
	}`)

	form, err := req.Form()
	require.NoError(t, err)

	assert.Equal(t, "Alice", form.Get("name"))
	assert.Equal(t, "30", form.Get("age"))
	assert.Equal(t, "1.50", form.Get("ratio"), "numbers keep their literal text")
	assert.Equal(t, "true", form.Get("terms"))
	assert.Nil(t, form.Get("nickname"))
	assert.Equal(t, []any{"go", "7"}, form.GetAll("tags[]"))
	assert.Equal(t, "Oslo", form.Get("address[city]"))
	assert.Equal(t, "A1", form.Get("items[0][sku]"))

	again, err := req.Form()
	require.NoError(t, err)
	assert.Same(t, form, again, "form is cached")
}

func TestRequest_Form_JSONErrors(t *testing.T) {
	_, err := newJSONRequest(t, "  ").Form()
	assert.ErrorIs(t, err, gohttp.ErrEmptyBody)

	_, err = newJSONRequest(t, `{bad json}`).Form()
	assert.ErrorIs(t, err, gohttp.ErrInvalidJSON)

	_, err = newJSONRequest(t, `["not", "an", "object"]`).Form()
	assert.ErrorIs(t, err, gohttp.ErrInvalidJSON)
}

// ── Form: urlencoded and multipart ───────────────────────────────────────────

func TestRequest_Form_URLEncoded(t *testing.T) {
	req := newFormRequest(t, "/?page=2", url.Values{
		"name":   {"Bob"},
		"tags[]": {"a", "b"},
	})

	form, err := req.Form()
	require.NoError(t, err)
	assert.Equal(t, "Bob", form.Get("name"))
	assert.Equal(t, "2", form.Get("page"))
	assert.Equal(t, []any{"a", "b"}, form.GetAll("tags[]"))
}

func TestRequest_Form_Multipart(t *testing.T) {
	body, ct := multipartBody(t, map[string]string{"title": "Report"}, map[string][]byte{"doc": []byte("%PDF-1.4")})
	raw := httptest.NewRequest(http.MethodPost, "/upload?draft=1", body)
	raw.Header.Set("Content-Type", ct)
	req := gohttp.NewRequest(raw).WithMaxMemory(1 << 20)

	form, err := req.Form()
	require.NoError(t, err)
	assert.Equal(t, "Report", form.Get("title"))
	assert.Equal(t, "1", form.Get("draft"))

	blob, ok := form.Get("doc").(validation.Blob)
	require.True(t, ok)
	assert.Equal(t, "doc.bin", blob.Filename())

	rc, err := blob.Open()
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))
}

// ── Validate ─────────────────────────────────────────────────────────────────

func TestRequest_Validate(t *testing.T) {
	catalog := validation.NewCatalog(language.English)
	catalog.Add(language.German, validation.Messages{"required": "Das Feld :attribute ist erforderlich"})
	factory := validation.NewFactory(validation.WithCatalog(catalog))

	rules := validation.Rules{
		"email": validation.String().Required().Email(),
		"tags[]": validation.Array().Required(),
	}

	raw := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"tags": ["x"]}`))
	raw.Header.Set("Content-Type", "application/json")
	raw.Header.Set("Accept-Language", "de-CH, en;q=0.5")

	bag, err := gohttp.NewRequest(raw).Validate(context.Background(), factory, rules)
	require.NoError(t, err)
	assert.Equal(t, []string{"email"}, bag.Fields())
	assert.Equal(t, "Das Feld email ist erforderlich", bag.First("email"))
}

func TestRequest_Validate_LanguageQuery(t *testing.T) {
	catalog := validation.NewCatalog(language.English)
	catalog.Add(language.German, validation.Messages{"required": "Das Feld :attribute ist erforderlich"})
	factory := validation.NewFactory(validation.WithCatalog(catalog))
	rules := validation.Rules{"email": validation.String().Required()}

	tests := []struct {
		name, target, acceptLanguage, want string
	}{
		{"query wins", "/?lang=de", "en", "Das Feld email ist erforderlich"},
		{"query over missing header", "/?lang=de", "", "Das Feld email ist erforderlich"},
		{"header without query", "/", "de", "Das Feld email ist erforderlich"},
		{"query back to default", "/?lang=en", "de", "The email field is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := httptest.NewRequest(http.MethodPost, tt.target, strings.NewReader(`{}`))
			raw.Header.Set("Content-Type", "application/json")
			if tt.acceptLanguage != "" {
				raw.Header.Set("Accept-Language", tt.acceptLanguage)
			}
			bag, err := gohttp.NewRequest(raw).Validate(context.Background(), factory, rules)
			require.NoError(t, err)
			assert.Equal(t, tt.want, bag.First("email"))
		})
	}
}

func TestRequest_Validate_BodyError(t *testing.T) {
	_, err := newJSONRequest(t, `{`).Validate(context.Background(), validation.NewFactory(), validation.Rules{})
	assert.ErrorIs(t, err, gohttp.ErrInvalidJSON)
}

// ── Input helpers ────────────────────────────────────────────────────────────

func TestRequest_Query(t *testing.T) {
	req := newFormRequest(t, "/?q=go", url.Values{"name": {"Carol"}})

	assert.Equal(t, "go", req.Query("q"))
	assert.Equal(t, "", req.Query("name"), "body values are not query values")
	assert.Equal(t, "1", req.Query("page", "1"))
}

func TestRequest_Headers(t *testing.T) {
	raw := httptest.NewRequest(http.MethodGet, "/", nil)
	raw.Header.Set("Accept", "application/json")
	raw.Header.Set("X-Custom", "value")
	req := gohttp.NewRequest(raw)

	assert.Equal(t, "value", req.Header("X-Custom"))
	assert.Equal(t, "", req.Header("X-Missing"))
	assert.Equal(t, "", req.ContentType())
	assert.Equal(t, "application/json; charset=utf-8", newJSONRequest(t, `{}`).ContentType())
}

func TestRequest_RouteParam(t *testing.T) {
	var got string
	r := chi.NewRouter()
	r.Get("/forms/{set}", func(w http.ResponseWriter, r *http.Request) {
		got = gohttp.NewRequest(r).RouteParam("set")
	})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/forms/signup", nil))

	assert.Equal(t, "signup", got)
}
