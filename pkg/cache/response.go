package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/geoapi/pkg/envelope"
	"github.com/dmitrymomot/geoapi/pkg/logger"
)

// DefaultTTL is used when no TTL is configured.
const DefaultTTL = 60 * time.Second

// DefaultFillTimeout bounds a shared fill when no timeout is configured.
const DefaultFillTimeout = 30 * time.Second

// HeaderCache reports whether a response was served from cache.
const HeaderCache = "X-Cache"

// Values of HeaderCache.
const (
	Hit  = "HIT"
	Miss = "MISS"
)

// Recorder receives cache outcome events. The metrics package implements it.
type Recorder interface {
	CacheHit()
	CacheMiss()
	CacheError()
}

type nopRecorder struct{}

func (nopRecorder) CacheHit()   {}
func (nopRecorder) CacheMiss()  {}
func (nopRecorder) CacheError() {}

// FillFunc computes the envelope for a cache miss.
type FillFunc func(ctx context.Context) envelope.Envelope

// ResponseCache stores JSON-encoded envelopes in a Store.
type ResponseCache struct {
	store       Store
	ttl         time.Duration
	fillTimeout time.Duration
	logger      *slog.Logger
	recorder    Recorder
	group       singleflight.Group
}

// ResponseOption configures ResponseCache.
type ResponseOption func(*ResponseCache)

// WithTTL sets the lifetime of stored envelopes.
func WithTTL(ttl time.Duration) ResponseOption {
	return func(c *ResponseCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithFillTimeout bounds each shared fill. Fills are detached from the
// cancellation of the request that started them, so this is their only limit.
func WithFillTimeout(d time.Duration) ResponseOption {
	return func(c *ResponseCache) {
		if d > 0 {
			c.fillTimeout = d
		}
	}
}

// WithLogger sets the logger for store failures.
func WithLogger(l *slog.Logger) ResponseOption {
	return func(c *ResponseCache) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRecorder reports hits, misses and store errors.
func WithRecorder(r Recorder) ResponseOption {
	return func(c *ResponseCache) {
		if r != nil {
			c.recorder = r
		}
	}
}

// NewResponseCache creates a response cache over store.
func NewResponseCache(store Store, opts ...ResponseOption) *ResponseCache {
	c := &ResponseCache{
		store:       store,
		ttl:         DefaultTTL,
		fillTimeout: DefaultFillTimeout,
		logger:      slog.Default(),
		recorder:    nopRecorder{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TTL returns the configured lifetime of entries.
func (c *ResponseCache) TTL() time.Duration {
	return c.ttl
}

// Cacheable reports whether env may be stored: 2xx and 404 responses only.
func Cacheable(env envelope.Envelope) bool {
	status := env.StatusCode
	return (status >= http.StatusOK && status < http.StatusMultipleChoices) || status == http.StatusNotFound
}

// Get returns the stored envelope for key. Store failures and undecodable
// entries are logged and reported as a miss.
func (c *ResponseCache) Get(ctx context.Context, key string) (envelope.Envelope, bool) {
	if ValidateKey(key) != nil {
		return envelope.Envelope{}, false
	}

	raw, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.recorder.CacheError()
		c.logger.WarnContext(ctx, "cache read failed",
			logger.Component("cache"),
			logger.CacheKey(key),
			logger.Error(err),
		)
		return envelope.Envelope{}, false
	}
	if !ok {
		c.recorder.CacheMiss()
		return envelope.Envelope{}, false
	}

	env, err := envelope.Decode(raw)
	if err != nil {
		c.recorder.CacheError()
		c.logger.WarnContext(ctx, "cache entry is corrupted",
			logger.Component("cache"),
			logger.CacheKey(key),
			logger.Error(err),
		)
		_ = c.store.Delete(ctx, key)
		return envelope.Envelope{}, false
	}

	c.recorder.CacheHit()
	return env, true
}

// Put stores env for ttl if it is cacheable. The route is not stored; callers
// attach it per request. It reports whether the envelope was stored.
func (c *ResponseCache) Put(ctx context.Context, key string, env envelope.Envelope, ttl time.Duration) bool {
	if !Cacheable(env) || ttl <= 0 || ValidateKey(key) != nil {
		return false
	}

	raw, err := json.Marshal(env.WithRoute(""))
	if err != nil {
		c.logger.ErrorContext(ctx, "cache entry encoding failed",
			logger.Component("cache"),
			logger.CacheKey(key),
			logger.Error(err),
		)
		return false
	}

	if err := c.store.Set(ctx, key, raw, ttl); err != nil {
		c.recorder.CacheError()
		c.logger.WarnContext(ctx, "cache write failed",
			logger.Component("cache"),
			logger.CacheKey(key),
			logger.Error(err),
		)
		return false
	}
	return true
}

// Fetch returns the cached envelope for key or computes it with fill and
// stores the result. The boolean reports a hit.
//
// Concurrent misses for one key share a single fill. It keeps the values of
// the first caller's context but not its cancellation, and is bounded by the
// fill timeout instead, so one client going away cannot fail the others. A
// caller that joined a fill whose result is not cacheable runs fill again
// with its own context rather than take another request's failure.
func (c *ResponseCache) Fetch(ctx context.Context, key string, fill FillFunc) (envelope.Envelope, bool) {
	if ValidateKey(key) != nil {
		return fill(ctx), false
	}

	if env, ok := c.Get(ctx, key); ok {
		return env, true
	}

	led := false
	v, _, _ := c.group.Do(key, func() (any, error) {
		led = true
		fillCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.fillTimeout)
		defer cancel()

		env := fill(fillCtx)
		c.Put(fillCtx, key, env, c.ttl)
		return env, nil
	})

	env := v.(envelope.Envelope)
	if !led && !Cacheable(env) {
		return fill(ctx), false
	}
	return env, false
}
