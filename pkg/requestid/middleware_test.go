package requestid_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/geoapi/pkg/requestid"
)

func capture(mw func(http.Handler) http.Handler, incoming string) (ctxID, headerID string) {
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = requestid.FromContext(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/api/v1/countries", nil)
	if incoming != "" {
		req.Header.Set(requestid.Header, incoming)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return ctxID, rec.Header().Get(requestid.Header)
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		incoming string
		reused   bool
	}{
		{"missing", "", false},
		{"valid", "req-123_abc", true},
		{"uuid", "0190d0c0-9a47-7c3e-8f1e-2b3c4d5e6f70", true},
		{"spaces", "req 123", false},
		{"markup", "<script>", false},
		{"newline", "abc\ndef", false},
		{"too long", strings.Repeat("a", 129), false},
		{"max length", strings.Repeat("a", 128), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctxID, headerID := capture(requestid.Middleware, tt.incoming)

			require.NotEmpty(t, ctxID)
			assert.Equal(t, ctxID, headerID)
			if tt.reused {
				assert.Equal(t, tt.incoming, ctxID)
				return
			}
			parsed, err := uuid.Parse(ctxID)
			require.NoError(t, err)
			assert.Equal(t, uuid.Version(7), parsed.Version())
		})
	}
}

func TestNewOptions(t *testing.T) {
	t.Parallel()

	t.Run("incoming ignored", func(t *testing.T) {
		t.Parallel()
		mw := requestid.New(requestid.WithIncoming(false), requestid.WithGenerator(func() string { return "generated" }))
		ctxID, headerID := capture(mw, "client-chosen")
		assert.Equal(t, "generated", ctxID)
		assert.Equal(t, "generated", headerID)
	})

	t.Run("custom header", func(t *testing.T) {
		t.Parallel()
		var got string
		h := requestid.New(requestid.WithHeader("x-correlation-id"))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = requestid.FromContext(r.Context())
		}))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Correlation-ID", "corr-1")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, "corr-1", got)
		assert.Equal(t, "corr-1", rec.Header().Get("X-Correlation-ID"))
		assert.Empty(t, rec.Header().Get(requestid.Header))
	})
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	extract := requestid.LoggerExtractor()

	_, ok := extract(context.Background())
	assert.False(t, ok)

	attr, ok := extract(requestid.WithContext(context.Background(), "req-1"))
	require.True(t, ok)
	assert.Equal(t, "request_id", attr.Key)
	assert.Equal(t, "req-1", attr.Value.String())
}
