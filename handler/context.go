package handler

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// Context is the request context handed to every HandlerFunc. Cancellation
// and values come from the request's context.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	// Route is the request path reported on envelopes.
	Route() string
	// Query is the request's query string, already cleaned by the
	// sanitizer and parameter-pollution middlewares.
	Query() url.Values
}

type httpContext struct {
	context.Context
	w http.ResponseWriter
	r *http.Request
}

// NewContext wraps a request and its response writer.
func NewContext(w http.ResponseWriter, r *http.Request) Context {
	return &httpContext{Context: r.Context(), w: w, r: r}
}

func (c *httpContext) Request() *http.Request              { return c.r }
func (c *httpContext) ResponseWriter() http.ResponseWriter { return c.w }
func (c *httpContext) Query() url.Values                   { return c.r.URL.Query() }

func (c *httpContext) Route() string {
	if route := RouteFromContext(c.Context); route != "" {
		return route
	}
	return c.r.URL.Path
}

// WithBase returns a copy of c whose deadline, cancellation and values come
// from base. The request and response writer are unchanged.
func WithBase(c Context, base context.Context) Context {
	return rebased{Context: c, base: base}
}

type rebased struct {
	Context
	base context.Context
}

func (c rebased) Deadline() (time.Time, bool) { return c.base.Deadline() }
func (c rebased) Done() <-chan struct{}       { return c.base.Done() }
func (c rebased) Err() error                  { return c.base.Err() }
func (c rebased) Value(key any) any           { return c.base.Value(key) }

func (c rebased) Route() string {
	if route := RouteFromContext(c.base); route != "" {
		return route
	}
	return c.Context.Route()
}

type routeKey struct{}

// WithRoute stores the request path for code that only receives a
// context.Context, such as services logging or alerting on a failure.
func WithRoute(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, routeKey{}, path)
}

// RouteFromContext returns the path stored by WithRoute or "".
func RouteFromContext(ctx context.Context) string {
	route, _ := ctx.Value(routeKey{}).(string)
	return route
}

// RouteMiddleware stores r.URL.Path with WithRoute.
func RouteMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithRoute(r.Context(), r.URL.Path)))
	})
}
