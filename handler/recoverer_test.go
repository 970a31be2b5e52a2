package handler_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/geoapi/handler"
	"github.com/dmitrymomot/geoapi/pkg/envelope"
)

func TestRecoverer(t *testing.T) {
	t.Parallel()

	t.Run("panic becomes 500 envelope", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := slog.New(slog.NewJSONHandler(&buf, nil))

		h := handler.Recoverer(log)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic("kaboom")
		}))

		rec := httptest.NewRecorder()
		require.NotPanics(t, func() {
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/countries", nil))
		})

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		env := decode(t, rec)
		assert.False(t, env.Success)
		assert.Equal(t, envelope.MessageInternalError, env.Message)
		assert.Equal(t, "/api/v1/countries", env.Route)
		assert.Contains(t, buf.String(), "panic recovered")
		assert.Contains(t, buf.String(), "kaboom")
	})

	t.Run("passes through without panic", func(t *testing.T) {
		t.Parallel()

		h := handler.Recoverer(nil)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("re-panics abort handler", func(t *testing.T) {
		t.Parallel()

		h := handler.Recoverer(nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic(http.ErrAbortHandler)
		}))

		assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		})
	})
}
