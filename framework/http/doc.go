// Package http adapts net/http requests to the validation package.
//
// # Request
//
// Request turns a request body into validation.FormData:
//
//	req := gohttp.NewRequest(r).WithMaxMemory(8 << 20)
//
//	form, err := req.Form()           // JSON, multipart or urlencoded
//	bag, err := req.Validate(ctx, factory, rules)
//
//	id   := req.RouteParam("id")     // requires the chi router
//
// Validate picks the message language from ?lang= and falls back to
// Accept-Language.
//
// JSON bodies are flattened the way HTML forms name their fields:
//
//	{"tags": ["a", "b"], "address": {"city": "Oslo"}, "age": 30}
//
// becomes "tags[]" → ["a", "b"], "address[city]" → "Oslo" and "age" → "30".
//
// # Response
//
//	res := gohttp.NewResponse(w)
//	res.Success(v)                  // 200 {"data": v}
//	res.ValidationError(bag)        // 422 {"errors": {"field": ["..."]}}
//	res.NotFound()                  // 404 {"message": "Not Found."}
//	res.NoContent()                 // 204
//
// # Middleware
//
// ValidateForm rejects invalid requests before they reach a handler:
//
//	router.With(gohttp.ValidateForm(factory, rules, 8<<20)).Post("/signup", signup)
//
//	func signup(w http.ResponseWriter, r *http.Request) {
//		form, _ := gohttp.FormFromContext(r.Context())
//		...
//	}
package http
