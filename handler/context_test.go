package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/geoapi/handler"
)

func TestContext(t *testing.T) {
	t.Parallel()

	base, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/countries?name=France", nil).WithContext(base)
	rec := httptest.NewRecorder()

	ctx := handler.NewContext(rec, req)
	assert.Same(t, req, ctx.Request())
	assert.Equal(t, rec, ctx.ResponseWriter())
	assert.Equal(t, "France", ctx.Query().Get("name"))
	assert.Equal(t, "/api/v1/countries", ctx.Route(), "falls back to the URL path")

	assert.NoError(t, ctx.Err())
	cancel()
	<-ctx.Done()
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

func TestRouteMiddleware(t *testing.T) {
	t.Parallel()

	var (
		fromCtx string
		route   string
	)
	h := handler.RouteMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromCtx = handler.RouteFromContext(r.Context())
		// A later rewrite of the URL does not change the reported route.
		r.URL.Path = "/rewritten"
		route = handler.NewContext(w, r).Route()
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/states/US", nil))

	assert.Equal(t, "/api/v1/states/US", fromCtx)
	assert.Equal(t, "/api/v1/states/US", route)
	assert.Empty(t, handler.RouteFromContext(context.Background()))
}

func TestWithBase(t *testing.T) {
	t.Parallel()

	reqCtx, cancelReq := context.WithCancel(handler.WithRoute(context.Background(), "/api/v1/countries/US"))
	req := httptest.NewRequest(http.MethodGet, "/api/v1/countries/US", nil).WithContext(reqCtx)
	rec := httptest.NewRecorder()
	ctx := handler.NewContext(rec, req)

	detached := handler.WithBase(ctx, context.WithoutCancel(ctx))
	cancelReq()
	<-ctx.Done()

	assert.NoError(t, detached.Err(), "request cancellation does not reach the new base")
	assert.Same(t, req, detached.Request())
	assert.Equal(t, rec, detached.ResponseWriter())
	assert.Equal(t, "/api/v1/countries/US", detached.Route())
	assert.Equal(t, "/api/v1/countries/US", handler.RouteFromContext(detached))

	bounded, cancel := context.WithCancel(context.Background())
	rebased := handler.WithBase(ctx, bounded)
	cancel()
	assert.ErrorIs(t, rebased.Err(), context.Canceled)
}
