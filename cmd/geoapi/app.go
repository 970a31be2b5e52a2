package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/dmitrymomot/geoapi/handler"
	"github.com/dmitrymomot/geoapi/internal/location"
	"github.com/dmitrymomot/geoapi/pkg/cache"
	"github.com/dmitrymomot/geoapi/pkg/clientip"
	"github.com/dmitrymomot/geoapi/pkg/envelope"
	"github.com/dmitrymomot/geoapi/pkg/hpp"
	"github.com/dmitrymomot/geoapi/pkg/httpserver"
	"github.com/dmitrymomot/geoapi/pkg/logger"
	"github.com/dmitrymomot/geoapi/pkg/metrics"
	"github.com/dmitrymomot/geoapi/pkg/ratelimiter"
	"github.com/dmitrymomot/geoapi/pkg/requestid"
	"github.com/dmitrymomot/geoapi/pkg/sanitizer"
)

// app holds everything the HTTP handler depends on.
type app struct {
	cfg          appConfig
	logger       *slog.Logger
	clientIP     *clientip.Resolver
	service      *location.Service
	cache        *cache.ResponseCache
	limiter      ratelimiter.RateLimiter
	metrics      *metrics.Metrics
	checks       []httpserver.Check
	checkTimeout time.Duration
}

// handler builds the root router.
//
// CORS answers preflight requests before anything else runs, so they are
// neither rate limited nor logged. Sanitization and the pollution guard run before routing so that route
// parameters are matched against cleaned paths. Operational endpoints are not
// rate limited.
func (a *app) handler() http.Handler {
	prefix := a.cfg.apiPrefix()

	r := chi.NewRouter()
	r.Use(
		cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: a.cfg.CORSMethods,
			AllowedHeaders: []string{"Accept", "Content-Type", requestid.Header},
			ExposedHeaders: []string{requestid.Header, "X-Cache", "Retry-After"},
			MaxAge:         300,
		}),
		requestid.Middleware,
		a.clientIP.Middleware,
		logger.AccessLog(a.logger),
		a.metrics.Middleware,
		handler.Recoverer(a.logger),
		ratelimiter.Middleware(a.limiter,
			ratelimiter.WithKeyFunc(ratelimiter.UnderPrefix(prefix, ratelimiter.ByClientIP)),
			ratelimiter.WithLogger(a.logger),
			ratelimiter.WithRecorder(a.metrics),
		),
		hpp.Middleware(hpp.WithLogger(a.logger)),
		sanitizer.Middleware(sanitizer.NewDeep(),
			sanitizer.WithLogger(a.logger),
			sanitizer.WithMaxBodySize(a.cfg.JSONPayloadLimit),
		),
	)
	r.NotFound(renderEnvelope(envelope.RouteNotFound))
	r.MethodNotAllowed(renderEnvelope(envelope.MethodNotSupported))

	r.Get("/healthz", httpserver.LivenessHandler())
	r.Get("/readyz", httpserver.ReadinessHandler(a.logger, a.checkTimeout, a.checks...))
	r.Method(http.MethodGet, "/metrics", a.metrics.Handler())

	api := chi.NewRouter()
	api.Use(handler.Deadline(a.cfg.RequestTimeout))
	api.Mount("/", location.NewRouter(a.service,
		location.WithResponseCache(a.cache),
		location.WithRouterLogger(a.logger),
	))
	r.Mount(prefix, api)

	return r
}

func renderEnvelope(build func() envelope.Envelope) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = build().WithRoute(r.URL.Path).Render(w, r)
	}
}
