package location

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/geoapi/handler"
	"github.com/dmitrymomot/geoapi/pkg/binder"
	"github.com/dmitrymomot/geoapi/pkg/cache"
	"github.com/dmitrymomot/geoapi/pkg/envelope"
)

type countryPath struct {
	CountryISO string `path:"ciso"`
}

type statePath struct {
	CountryISO string `path:"ciso"`
	StateISO   string `path:"siso"`
}

// Router exposes a Service over HTTP.
type Router struct {
	svc    *Service
	cache  *cache.ResponseCache
	logger *slog.Logger
}

// RouterOption configures a Router.
type RouterOption func(*Router)

// WithResponseCache memoizes GET responses in c.
func WithResponseCache(c *cache.ResponseCache) RouterOption {
	return func(rt *Router) {
		rt.cache = c
	}
}

func WithRouterLogger(l *slog.Logger) RouterOption {
	return func(rt *Router) {
		if l != nil {
			rt.logger = l
		}
	}
}

// NewRouter returns the read-only location API, ready to be mounted under
// a version prefix. Other verbs on known routes answer 405 and unknown
// routes 404, both as envelopes.
func NewRouter(svc *Service, opts ...RouterOption) chi.Router {
	rt := &Router{svc: svc, logger: slog.Default()}
	for _, opt := range opts {
		opt(rt)
	}

	r := chi.NewRouter()
	r.Use(handler.RouteMiddleware)
	r.MethodNotAllowed(staticEnvelope(envelope.MethodNotSupported))
	r.NotFound(staticEnvelope(envelope.RouteNotFound))

	r.Route("/countries", func(r chi.Router) {
		r.Get("/", endpoint(rt, rt.countries))
		r.Get("/{ciso}", endpoint(rt, rt.country))
		r.Get("/{ciso}/states", endpoint(rt, rt.countryStates))
		r.Get("/{ciso}/states/{siso}", endpoint(rt, rt.state))
		r.Get("/{ciso}/states/{siso}/cities", endpoint(rt, rt.stateCities))
		r.Get("/{ciso}/cities", endpoint(rt, rt.countryCities))
	})
	r.Route("/states", func(r chi.Router) {
		r.Get("/", endpoint(rt, rt.states))
		r.Get("/{ciso}", endpoint(rt, rt.countryStates))
	})
	r.Route("/cities", func(r chi.Router) {
		r.Get("/", endpoint(rt, rt.cities))
		r.Get("/{ciso}", endpoint(rt, rt.countryCities))
	})

	return r
}

func (rt *Router) countries(ctx handler.Context, _ struct{}) handler.Response {
	return rt.svc.Countries(ctx, ctx.Query())
}

func (rt *Router) country(ctx handler.Context, req countryPath) handler.Response {
	return rt.svc.CountryByISO(ctx, req.CountryISO)
}

func (rt *Router) countryStates(ctx handler.Context, req countryPath) handler.Response {
	return rt.svc.StatesByCountry(ctx, req.CountryISO)
}

func (rt *Router) state(ctx handler.Context, req statePath) handler.Response {
	return rt.svc.StateByISO(ctx, req.CountryISO, req.StateISO)
}

func (rt *Router) stateCities(ctx handler.Context, req statePath) handler.Response {
	return rt.svc.CitiesByState(ctx, req.CountryISO, req.StateISO)
}

func (rt *Router) countryCities(ctx handler.Context, req countryPath) handler.Response {
	return rt.svc.CitiesByCountry(ctx, req.CountryISO)
}

func (rt *Router) states(ctx handler.Context, _ struct{}) handler.Response {
	return rt.svc.States(ctx, ctx.Query())
}

func (rt *Router) cities(ctx handler.Context, _ struct{}) handler.Response {
	return rt.svc.Cities(ctx, ctx.Query())
}

func endpoint[R any](rt *Router, h handler.HandlerFunc[R]) http.HandlerFunc {
	return handler.Wrap(h,
		handler.WithBinders[R](binder.Path(chi.URLParam)),
		handler.WithErrorHandler[R](handler.NewErrorHandler(rt.logger)),
		handler.WithDecorators(attachRoute[R](), cacheResponse[R](rt.cache)),
	)
}

// attachRoute sets the request path on envelope responses.
func attachRoute[R any]() handler.Decorator[R] {
	return func(next handler.HandlerFunc[R]) handler.HandlerFunc[R] {
		return func(ctx handler.Context, req R) handler.Response {
			resp := next(ctx, req)
			if env, ok := resp.(envelope.Envelope); ok {
				return env.WithRoute(ctx.Route())
			}
			return resp
		}
	}
}

// cacheResponse serves GET envelopes from c, filling misses from next and
// marking the outcome in the X-Cache header. A nil cache disables it.
func cacheResponse[R any](c *cache.ResponseCache) handler.Decorator[R] {
	return func(next handler.HandlerFunc[R]) handler.HandlerFunc[R] {
		if c == nil {
			return next
		}
		return func(ctx handler.Context, req R) handler.Response {
			r := ctx.Request()
			if r.Method != http.MethodGet {
				return next(ctx, req)
			}

			env, hit := c.Fetch(ctx, cache.Key(r), func(fillCtx context.Context) envelope.Envelope {
				if env, ok := next(handler.WithBase(ctx, fillCtx), req).(envelope.Envelope); ok {
					return env
				}
				return envelope.InternalError()
			})

			status := cache.Miss
			if hit {
				status = cache.Hit
			}
			ctx.ResponseWriter().Header().Set(cache.HeaderCache, status)
			return env
		}
	}
}

func staticEnvelope(build func() envelope.Envelope) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = build().WithRoute(r.URL.Path).Render(w, r)
	}
}
