package ratelimiter

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrymomot/geoapi/pkg/envelope"
	"github.com/dmitrymomot/geoapi/pkg/logger"
)

// Response headers set on every limited request.
const (
	HeaderLimit      = "X-RateLimit-Limit"
	HeaderRemaining  = "X-RateLimit-Remaining"
	HeaderReset      = "X-RateLimit-Reset"
	HeaderRetryAfter = "Retry-After"
)

// Recorder is notified about rejected requests.
type Recorder interface {
	RateLimited()
}

// MiddlewareOption configures Middleware.
type MiddlewareOption func(*guard)

// WithKeyFunc overrides the default ByClientIP key.
func WithKeyFunc(fn KeyFunc) MiddlewareOption {
	return func(g *guard) {
		if fn != nil {
			g.key = fn
		}
	}
}

// WithLogger sets the logger for limiter store failures.
func WithLogger(l *slog.Logger) MiddlewareOption {
	return func(g *guard) {
		if l != nil {
			g.log = l
		}
	}
}

// WithRecorder counts rejected requests.
func WithRecorder(r Recorder) MiddlewareOption {
	return func(g *guard) { g.recorder = r }
}

// WithDeniedHandler replaces the 429 envelope response.
func WithDeniedHandler(h http.Handler) MiddlewareOption {
	return func(g *guard) {
		if h != nil {
			g.denied = h
		}
	}
}

type guard struct {
	limiter  RateLimiter
	key      KeyFunc
	log      *slog.Logger
	recorder Recorder
	denied   http.Handler
	next     http.Handler
}

// Middleware limits requests per key. Denied requests get the 429 envelope
// with X-RateLimit-* and Retry-After headers. Requests with an empty key pass
// untouched, and so does every request while the store is failing.
func Middleware(limiter RateLimiter, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	base := guard{
		limiter: limiter,
		key:     ByClientIP,
		log:     slog.Default(),
		denied:  http.HandlerFunc(tooManyRequests),
	}
	for _, opt := range opts {
		opt(&base)
	}
	return func(next http.Handler) http.Handler {
		g := base
		g.next = next
		return &g
	}
}

func (g *guard) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := g.key(r)
	if key == "" {
		g.next.ServeHTTP(w, r)
		return
	}

	res, err := g.limiter.Allow(r.Context(), key)
	if err != nil {
		g.log.ErrorContext(r.Context(), "rate limiter unavailable",
			logger.Component("ratelimiter"),
			logger.Error(err),
		)
		g.next.ServeHTTP(w, r)
		return
	}

	setHeaders(w.Header(), res, time.Now())
	if res.Allowed {
		g.next.ServeHTTP(w, r)
		return
	}
	if g.recorder != nil {
		g.recorder.RateLimited()
	}
	g.denied.ServeHTTP(w, r)
}

func setHeaders(h http.Header, res Result, now time.Time) {
	h.Set(HeaderLimit, strconv.Itoa(res.Limit))
	h.Set(HeaderRemaining, strconv.Itoa(res.Remaining))
	h.Set(HeaderReset, strconv.FormatInt(res.ResetAt.Unix(), 10))
	if wait := res.RetryAfter(now); wait > 0 {
		h.Set(HeaderRetryAfter, strconv.FormatInt(int64(wait/time.Second), 10))
	}
}

func tooManyRequests(w http.ResponseWriter, r *http.Request) {
	_ = envelope.TooManyRequests().WithRoute(r.URL.Path).Render(w, r)
}
