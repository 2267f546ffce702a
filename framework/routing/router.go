package routing

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	gohttp "github.com/km-arc/go-formrules/framework/http"
	"github.com/km-arc/go-formrules/framework/http/validation"
)

// Router wraps chi.Router and binds validation rules to routes.
type Router struct {
	mux       chi.Router
	factory   *validation.Factory
	maxMemory int64
}

// Option configures a Router.
type Option func(*Router)

// WithMaxMemory bounds the in-memory part of multipart bodies on Form routes.
func WithMaxMemory(n int64) Option {
	return func(r *Router) { r.maxMemory = n }
}

// New creates a Router with access logging and panic recovery.
// Every request carries logger in its context.
func New(factory *validation.Factory, logger zerolog.Logger, opts ...Option) *Router {
	mx := chi.NewRouter()
	mx.Use(middleware.RealIP)
	mx.Use(hlog.NewHandler(logger))
	mx.Use(hlog.RequestIDHandler("request_id", "X-Request-ID"))
	mx.Use(hlog.AccessHandler(accessLog))
	mx.Use(middleware.Recoverer)

	r := &Router{mux: mx, factory: factory}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Router) derive(mx chi.Router) *Router {
	return &Router{mux: mx, factory: r.factory, maxMemory: r.maxMemory}
}

func accessLog(r *http.Request, status, size int, duration time.Duration) {
	hlog.FromRequest(r).Info().
		Str("method", r.Method).
		Stringer("url", r.URL).
		Int("status", status).
		Int("size", size).
		Dur("duration", duration).
		Msg("request")
}

// ── HTTP verbs ───────────────────────────────────────────────────────────────

func (r *Router) Get(pattern string, h http.HandlerFunc)  { r.mux.Get(pattern, h) }
func (r *Router) Post(pattern string, h http.HandlerFunc) { r.mux.Post(pattern, h) }

// Form registers a POST handler that only runs when the request input
// passes rules. Failures are answered with 422 and the error bag.
//
//	router.Form("/signup", validation.Rules{
//		"email": validation.String().Required().Email(),
//	}, signup)
func (r *Router) Form(pattern string, rules validation.Rules, h http.HandlerFunc) {
	r.With(gohttp.ValidateForm(r.factory, rules, r.maxMemory)).Post(pattern, h)
}

// ── Groups & Prefixes ────────────────────────────────────────────────────────

// Group creates an inline group sharing middleware.
func (r *Router) Group(fn func(r *Router)) {
	r.mux.Group(func(mx chi.Router) {
		fn(r.derive(mx))
	})
}

// Prefix creates a sub-router mounted at pattern.
func (r *Router) Prefix(pattern string, fn func(r *Router)) {
	r.mux.Route(pattern, func(mx chi.Router) {
		fn(r.derive(mx))
	})
}

// ── Middleware ───────────────────────────────────────────────────────────────

// Middleware adds one or more middleware to the router.
func (r *Router) Middleware(mw ...func(http.Handler) http.Handler) {
	r.mux.Use(mw...)
}

// With returns a router whose routes run the extra middleware.
func (r *Router) With(mw ...func(http.Handler) http.Handler) *Router {
	return r.derive(r.mux.With(mw...))
}

// ── Serve ────────────────────────────────────────────────────────────────────

// Factory returns the validator factory routes are bound with.
func (r *Router) Factory() *validation.Factory { return r.factory }

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Handler returns the underlying http.Handler.
func (r *Router) Handler() http.Handler {
	return r.mux
}
