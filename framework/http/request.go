package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"mime"
	"net/http"
	"slices"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/km-arc/go-formrules/framework/http/validation"
)

const defaultMaxMemory = 32 << 20 // 32 MB

var (
	// ErrEmptyBody is returned for a JSON request without a body.
	ErrEmptyBody = errors.New("http: empty request body")

	// ErrInvalidJSON is returned when a JSON body is malformed or not an object.
	ErrInvalidJSON = errors.New("http: invalid JSON body")
)

// Request wraps *http.Request with form helpers for validation.
type Request struct {
	raw       *http.Request
	maxMemory int64
	form      *validation.Form
}

// NewRequest wraps a standard *http.Request.
func NewRequest(r *http.Request) *Request {
	return &Request{raw: r, maxMemory: defaultMaxMemory}
}

// WithMaxMemory sets how many bytes of a multipart body are kept in memory;
// the remainder spills to temporary files.
func (req *Request) WithMaxMemory(n int64) *Request {
	if n > 0 {
		req.maxMemory = n
	}
	return req
}

// ── Form extraction ──────────────────────────────────────────────────────────

// Form returns the request input as validation.FormData. The result is
// cached, so the body is read once.
//
//   - application/json: scalars become strings, arrays are exposed under
//     "key[]" and nested objects under "parent[child]"
//   - multipart/form-data: values plus uploaded files as blobs
//   - anything else: query string and urlencoded body
func (req *Request) Form() (validation.FormData, error) {
	if req.form != nil {
		return req.form, nil
	}

	var (
		form *validation.Form
		err  error
	)
	switch mediaType(req.ContentType()) {
	case "application/json":
		form, err = req.jsonForm()
	case "multipart/form-data":
		form, err = req.multipartForm()
	default:
		if err = req.raw.ParseForm(); err == nil {
			form = validation.FromValues(req.raw.Form)
		}
	}
	if err != nil {
		return nil, err
	}

	req.form = form
	return form, nil
}

func (req *Request) jsonForm() (*validation.Form, error) {
	defer req.raw.Body.Close()
	body, err := io.ReadAll(req.raw.Body)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, ErrEmptyBody
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}

	form := validation.FromValues(req.raw.URL.Query())
	for _, key := range slices.Sorted(maps.Keys(doc)) {
		form.Del(key)
		flatten(form, key, doc[key])
	}
	return form, nil
}

// flatten adds v under name using bracket notation for nested values.
func flatten(form *validation.Form, name string, v any) {
	switch t := v.(type) {
	case map[string]any:
		for _, k := range slices.Sorted(maps.Keys(t)) {
			flatten(form, name+"["+k+"]", t[k])
		}
	case []any:
		key := name + "[]"
		for i, elem := range t {
			switch elem.(type) {
			case map[string]any, []any:
				flatten(form, name+"["+strconv.Itoa(i)+"]", elem)
			default:
				form.Add(key, scalar(elem))
			}
		}
	default:
		form.Add(name, scalar(v))
	}
}

func scalar(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

func (req *Request) multipartForm() (*validation.Form, error) {
	if err := req.raw.ParseMultipartForm(req.maxMemory); err != nil {
		return nil, err
	}
	form := validation.FromMultipart(req.raw.MultipartForm)
	for key, values := range req.raw.URL.Query() {
		if form.Has(key) {
			continue
		}
		for _, v := range values {
			form.Add(key, v)
		}
	}
	return form, nil
}

// ── Validation ───────────────────────────────────────────────────────────────

// Validate runs rules against the request input. Messages are rendered in
// the catalog language that best matches the "lang" query parameter, or
// Accept-Language when it is absent.
//
//	bag, err := request.Validate(ctx, factory, validation.Rules{
//		"email": validation.String().Required().Email(),
//	})
func (req *Request) Validate(ctx context.Context, factory *validation.Factory, rules validation.Rules) (*validation.Errors, error) {
	form, err := req.Form()
	if err != nil {
		return nil, err
	}
	lang := factory.Catalog().Match(req.Query("lang", req.Header("Accept-Language")))
	return factory.Make(form, rules, validation.WithLanguage(lang)).Validate(ctx)
}

// ── Input helpers ────────────────────────────────────────────────────────────

// Query returns a query-string value.
func (req *Request) Query(key string, fallback ...string) string {
	v := req.raw.URL.Query().Get(key)
	if v == "" && len(fallback) > 0 {
		return fallback[0]
	}
	return v
}

// RouteParam returns a URL route parameter (chi).
func (req *Request) RouteParam(key string) string {
	return chi.URLParam(req.raw, key)
}

// Header returns a request header value.
func (req *Request) Header(key string) string {
	return req.raw.Header.Get(key)
}

// ContentType returns the Content-Type header value.
func (req *Request) ContentType() string {
	return req.raw.Header.Get("Content-Type")
}

func mediaType(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return mt
}
