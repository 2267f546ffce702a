package app

import (
	"net/http"

	"github.com/rs/zerolog"

	gohttp "github.com/km-arc/go-formrules/framework/http"
	"github.com/km-arc/go-formrules/framework/routing"
)

// Mount registers the rule set endpoints:
//
//	GET  /sets            names of the loaded rule sets
//	POST /validate/{set}  validate the request body against a rule set
//	POST /forms/{set}     same check, 204 on success
//
// Validation answers depend on ?lang= and Accept-Language.
func (a *Application) Mount() {
	a.router.Get("/sets", a.listSets)
	a.router.Group(func(r *routing.Router) {
		r.Middleware(varyLanguage)
		r.Post("/validate/{set}", a.validateSet)
		if len(a.names) == 0 {
			return
		}
		r.Prefix("/forms", func(r *routing.Router) {
			for _, name := range a.names {
				r.Form("/"+name, a.sets[name], accepted)
			}
		})
	})
}

func varyLanguage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Accept-Language")
		next.ServeHTTP(w, r)
	})
}

func (a *Application) listSets(w http.ResponseWriter, r *http.Request) {
	names := a.names
	if names == nil {
		names = []string{}
	}
	gohttp.NewResponse(w).Success(map[string]any{
		"version": Version,
		"sets":    names,
	})
}

func (a *Application) validateSet(w http.ResponseWriter, r *http.Request) {
	res := gohttp.NewResponse(w)
	req := gohttp.NewRequest(r).WithMaxMemory(a.cfg.Validation.MaxMemory)
	name := req.RouteParam("set")

	rules, ok := a.Rules(name)
	if !ok {
		res.NotFound("Unknown rule set.")
		return
	}

	if _, err := req.Form(); err != nil {
		res.BadRequest(err.Error())
		return
	}

	bag, err := req.Validate(r.Context(), a.factory, rules)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("set", name).Msg("validation error")
		res.ServerError()
		return
	}
	if bag.Any() {
		res.ValidationError(bag)
		return
	}
	res.Success(map[string]any{"set": name, "valid": true})
}

func accepted(w http.ResponseWriter, _ *http.Request) {
	gohttp.NewResponse(w).NoContent()
}
