package httpserver_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/geoapi/pkg/httpserver"
)

type healthBody struct {
	Success    bool              `json:"success"`
	StatusCode int               `json:"statusCode"`
	Message    string            `json:"message"`
	Data       map[string]string `json:"data"`
	Route      string            `json:"route"`
}

func serveHealth(t *testing.T, h http.Handler, path string) (*httptest.ResponseRecorder, healthBody) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	var body healthBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestLivenessHandler(t *testing.T) {
	t.Parallel()

	rec, body := serveHealth(t, httpserver.LivenessHandler(), "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, body.Success)
	assert.Equal(t, httpserver.MessageAlive, body.Message)
	assert.Equal(t, "/healthz", body.Route)
}

func TestReadinessHandler(t *testing.T) {
	t.Parallel()

	ok := func(context.Context) error { return nil }
	fail := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name       string
		checks     []httpserver.Check
		wantStatus int
		wantData   map[string]string
	}{
		{
			name:       "no checks",
			wantStatus: http.StatusOK,
			wantData:   map[string]string{},
		},
		{
			name:       "all healthy",
			checks:     []httpserver.Check{{Name: "mongodb", Fn: ok}, {Name: "redis", Fn: ok}},
			wantStatus: http.StatusOK,
			wantData:   map[string]string{"mongodb": "ok", "redis": "ok"},
		},
		{
			name:       "one failing",
			checks:     []httpserver.Check{{Name: "mongodb", Fn: fail}, {Name: "redis", Fn: ok}},
			wantStatus: http.StatusServiceUnavailable,
			wantData:   map[string]string{"mongodb": "fail", "redis": "ok"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := httpserver.ReadinessHandler(nil, time.Second, tt.checks...)
			rec, body := serveHealth(t, h, "/readyz")

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantStatus, body.StatusCode)
			assert.Equal(t, tt.wantStatus == http.StatusOK, body.Success)
			assert.Equal(t, tt.wantData, body.Data)
		})
	}
}

func TestReadinessHandlerTimeout(t *testing.T) {
	t.Parallel()

	slow := func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}
	h := httpserver.ReadinessHandler(nil, 20*time.Millisecond, httpserver.Check{Name: "mongodb", Fn: slow})

	rec, body := serveHealth(t, h, "/readyz")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, httpserver.MessageNotReady, body.Message)
	assert.Equal(t, "fail", body.Data["mongodb"])
}
