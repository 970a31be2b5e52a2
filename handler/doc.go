// Package handler adapts typed handler functions to net/http.
//
// A HandlerFunc receives a Context and a request value filled by binders, and
// returns a Response. The API returns envelope.Envelope everywhere:
//
//	type countryRequest struct {
//		ISO string `path:"ciso"`
//	}
//
//	func (h *handlers) country(ctx handler.Context, req countryRequest) handler.Response {
//		return h.svc.CountryByISO(ctx, req.ISO)
//	}
//
//	r.Get("/countries/{ciso}", handler.Wrap(h.country,
//		handler.WithBinders[countryRequest](binder.Path(chi.URLParam)),
//	))
//
// Binding and rendering failures go to an ErrorHandler. The default one,
// built by NewErrorHandler, logs the error and answers with a 400 envelope
// for binding problems or a generic 500 envelope otherwise. Decorators wrap
// a HandlerFunc for cross-cutting behaviour such as caching.
//
// Context.Route is the path reported on envelopes. RouteMiddleware also
// stores it in the request context so services that only see a
// context.Context can name the failing route in logs and alerts.
//
// Recoverer is middleware that turns panics into the same 500 envelope.
package handler
