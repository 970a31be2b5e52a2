package ratelimiter_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/geoapi/pkg/clientip"
	"github.com/dmitrymomot/geoapi/pkg/envelope"
	"github.com/dmitrymomot/geoapi/pkg/ratelimiter"
)

type countingRecorder struct {
	n atomic.Int32
}

func (r *countingRecorder) RateLimited() { r.n.Add(1) }

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (ratelimiter.Result, error) {
	return ratelimiter.Result{}, errors.New("store down")
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}

func TestMiddleware_RateLimitEnforcement(t *testing.T) {
	t.Parallel()

	config := ratelimiter.Config{Max: 3, Window: time.Minute}

	store := ratelimiter.NewMemoryStore()
	defer store.Close()

	limiter, err := ratelimiter.New(store, config)
	require.NoError(t, err)

	rec := &countingRecorder{}
	resolver, err := clientip.NewResolver(clientip.Config{})
	require.NoError(t, err)
	handler := resolver.Middleware(ratelimiter.Middleware(limiter, ratelimiter.WithRecorder(rec))(okHandler()))

	t.Run("allows requests within limit", func(t *testing.T) {
		for i := range config.Max {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/countries", nil)
			req.RemoteAddr = "192.168.1.1:1234"
			res := httptest.NewRecorder()

			handler.ServeHTTP(res, req)

			assert.Equal(t, http.StatusOK, res.Code)
			assert.Equal(t, strconv.Itoa(config.Max), res.Header().Get("X-RateLimit-Limit"))
			assert.Equal(t, strconv.Itoa(config.Max-i-1), res.Header().Get("X-RateLimit-Remaining"))
			assert.NotEmpty(t, res.Header().Get("X-RateLimit-Reset"))
		}
	})

	t.Run("blocks requests over limit with envelope", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/countries", nil)
		req.RemoteAddr = "192.168.1.1:1234"
		res := httptest.NewRecorder()

		handler.ServeHTTP(res, req)

		assert.Equal(t, http.StatusTooManyRequests, res.Code)
		assert.Equal(t, "0", res.Header().Get("X-RateLimit-Remaining"))
		assert.Contains(t, []string{"59", "60"}, res.Header().Get("Retry-After"))

		env, err := envelope.Decode(res.Body.Bytes())
		require.NoError(t, err)
		assert.False(t, env.Success)
		assert.Equal(t, http.StatusTooManyRequests, env.StatusCode)
		assert.Equal(t, envelope.MessageTooManyRequests, env.Message)
		assert.Equal(t, "/api/v1/countries", env.Route)
		assert.EqualValues(t, 1, rec.n.Load())
	})

	t.Run("different clients have independent limits", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/countries", nil)
		req.RemoteAddr = "192.168.1.2:5678"
		res := httptest.NewRecorder()

		handler.ServeHTTP(res, req)

		assert.Equal(t, http.StatusOK, res.Code)
		assert.Equal(t, strconv.Itoa(config.Max-1), res.Header().Get("X-RateLimit-Remaining"))
	})
}

func TestMiddleware_CustomKeyAndDeniedHandler(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore()
	defer store.Close()

	limiter, err := ratelimiter.New(store, ratelimiter.Config{Max: 1, Window: time.Minute})
	require.NoError(t, err)

	handler := ratelimiter.Middleware(limiter,
		ratelimiter.WithKeyFunc(func(r *http.Request) string { return r.Header.Get("X-Client") }),
		ratelimiter.WithDeniedHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		})),
	)(okHandler())

	for _, want := range []int{http.StatusOK, http.StatusTeapot} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Client", "a")
		res := httptest.NewRecorder()
		handler.ServeHTTP(res, req)
		assert.Equal(t, want, res.Code)
	}

	t.Run("empty key is not limited", func(t *testing.T) {
		for range 3 {
			res := httptest.NewRecorder()
			handler.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, http.StatusOK, res.Code)
			assert.Empty(t, res.Header().Get("X-RateLimit-Limit"))
		}
	})
}

func TestMiddleware_StoreFailureAllowsRequest(t *testing.T) {
	t.Parallel()

	handler := ratelimiter.Middleware(failingLimiter{})(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1"
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	assert.Equal(t, http.StatusOK, res.Code)
}

func TestComposite(t *testing.T) {
	t.Parallel()

	byHeader := func(name string) ratelimiter.KeyFunc {
		return func(r *http.Request) string { return r.Header.Get(name) }
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("A", "one")
	req.Header.Set("B", "two")
	req.Header.Set("Long", strings.Repeat("x", 80))

	tests := []struct {
		name string
		keys []ratelimiter.KeyFunc
		want string
	}{
		{"joined", []ratelimiter.KeyFunc{byHeader("A"), byHeader("B")}, "one:two"},
		{"empty parts skipped", []ratelimiter.KeyFunc{byHeader("missing"), byHeader("A")}, "one"},
		{"all empty", []ratelimiter.KeyFunc{byHeader("missing")}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ratelimiter.Composite(tt.keys...)(req))
		})
	}

	t.Run("long keys are hashed", func(t *testing.T) {
		t.Parallel()
		key := ratelimiter.Composite(byHeader("Long"), byHeader("A"))
		got := key(req)
		assert.True(t, strings.HasPrefix(got, "h:"))
		assert.Len(t, got, 34)
		assert.Equal(t, got, key(req), "stable")
	})
}

func TestUnderPrefix(t *testing.T) {
	t.Parallel()

	key := ratelimiter.UnderPrefix("/api/v1/", ratelimiter.ByClientIP)
	tests := []struct {
		path string
		want string
	}{
		{"/api/v1", "10.0.0.1"},
		{"/api/v1/countries", "10.0.0.1"},
		{"/api/v10/countries", ""},
		{"/healthz", ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			req.RemoteAddr = "10.0.0.1:5000"
			assert.Equal(t, tt.want, key(req))
		})
	}
}
