package http

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/km-arc/go-formrules/framework/http/validation"
)

type contextKey string

const formKey contextKey = "validatedForm"

// ValidateForm rejects requests whose input fails rules.
//
//   - malformed body: 400
//   - predicate error: 500, logged
//   - failed rules: 422 with the error bag
//
// maxMemory bounds the in-memory part of multipart bodies, as in
// Request.WithMaxMemory; zero keeps the 32 MB default. On success the parsed
// form is stored in the request context; handlers read it with
// FormFromContext.
func ValidateForm(factory *validation.Factory, rules validation.Rules, maxMemory int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			req := NewRequest(r).WithMaxMemory(maxMemory)
			res := NewResponse(w)

			form, err := req.Form()
			if err != nil {
				res.BadRequest(err.Error())
				return
			}

			bag, err := req.Validate(r.Context(), factory, rules)
			if err != nil {
				zerolog.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("validation error")
				res.ServerError()
				return
			}
			if bag.Any() {
				res.ValidationError(bag)
				return
			}

			ctx := context.WithValue(r.Context(), formKey, form)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FormFromContext returns the form stored by ValidateForm.
func FormFromContext(ctx context.Context) (validation.FormData, bool) {
	form, ok := ctx.Value(formKey).(validation.FormData)
	return form, ok
}
