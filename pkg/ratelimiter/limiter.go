package ratelimiter

import (
	"context"
	"time"
)

// RateLimiter decides whether the request identified by key may proceed.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}

// Result describes the state of a key's window after a request was counted.
type Result struct {
	Limit     int       // Limit is the number of requests allowed per window.
	Remaining int       // Remaining is how many requests are left, never negative.
	ResetAt   time.Time // ResetAt is when the current window closes.
	Allowed   bool
}

// RetryAfter returns how long a denied client should wait, rounded up to
// whole seconds. It is zero for allowed results.
func (r Result) RetryAfter(now time.Time) time.Duration {
	d := r.ResetAt.Sub(now)
	if r.Allowed || d <= 0 {
		return 0
	}
	if whole := d.Truncate(time.Second); whole < d {
		return whole + time.Second
	}
	return d
}

// FixedWindow allows Max requests per key in each window. The window for a
// key starts with its first request.
type FixedWindow struct {
	store  Store
	max    int
	window time.Duration
}

// New validates cfg and returns a limiter counting in store.
func New(store Store, cfg Config) (*FixedWindow, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &FixedWindow{store: store, max: cfg.Max, window: cfg.Window}, nil
}

// Allow counts the request and reports whether it fits in the window.
func (l *FixedWindow) Allow(ctx context.Context, key string) (Result, error) {
	hits, resetAt, err := l.store.Hit(ctx, key, l.window)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Limit:     l.max,
		Remaining: max(0, l.max-hits),
		ResetAt:   resetAt,
		Allowed:   hits <= l.max,
	}, nil
}

// Reset forgets the window for key.
func (l *FixedWindow) Reset(ctx context.Context, key string) error {
	return l.store.Reset(ctx, key)
}
