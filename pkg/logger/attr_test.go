package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/geoapi/pkg/logger"
)

func TestAttrs(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	tests := []struct {
		name string
		attr slog.Attr
		key  string
		want any
	}{
		{"error", logger.Error(boom), logger.KeyError, boom},
		{"request id", logger.RequestID("req-1"), logger.KeyRequestID, "req-1"},
		{"client ip", logger.ClientIP("198.51.100.1"), logger.KeyClientIP, "198.51.100.1"},
		{"duration", logger.Duration(1500 * time.Millisecond), logger.KeyDuration, 1500 * time.Millisecond},
		{"component", logger.Component("cache"), logger.KeyComponent, "cache"},
		{"entity", logger.Entity("country"), logger.KeyEntity, "country"},
		{"operation", logger.Operation("CountryByISO"), logger.KeyOperation, "CountryByISO"},
		{"cache key", logger.CacheKey("GET /countries"), logger.KeyCacheKey, "GET /countries"},
		{"route", logger.Route("/api/v1/countries"), logger.KeyRoute, "/api/v1/countries"},
		{"status", logger.Status(404), logger.KeyStatus, int64(404)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.key, tt.attr.Key)
			assert.Equal(t, tt.want, tt.attr.Value.Any())
		})
	}
}

func TestEmptyAttrs(t *testing.T) {
	t.Parallel()

	for name, attr := range map[string]slog.Attr{
		"nil error":        logger.Error(nil),
		"empty request id": logger.RequestID(""),
		"empty client ip":  logger.ClientIP(""),
	} {
		assert.True(t, attr.Equal(slog.Attr{}), name)
	}
}

func TestFilter(t *testing.T) {
	t.Parallel()

	attr := logger.Filter(map[string]string{"region": "Europe", "name": "Spain"})
	require.Equal(t, logger.KeyFilter, attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())

	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "name", g[0].Key)
	assert.Equal(t, "region", g[1].Key)

	assert.Empty(t, logger.Filter(nil).Value.Group())
}
