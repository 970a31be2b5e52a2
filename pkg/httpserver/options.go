package httpserver

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Option configures a Server. Empty or non-positive values leave the
// current setting untouched, so zero fields of Config keep the defaults.
type Option func(*config)

// StartHook runs once the listener address is known, before serving.
type StartHook func(ctx context.Context, addr string)

// StopHook runs after graceful shutdown completes.
type StopHook func(ctx context.Context)

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(c *config) {
		if addr != "" {
			c.addr = addr
		}
	}
}

func withDuration(field func(*config) *time.Duration, d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			*field(c) = d
		}
	}
}

// WithReadTimeout bounds reading the entire request.
func WithReadTimeout(d time.Duration) Option {
	return withDuration(func(c *config) *time.Duration { return &c.readTimeout }, d)
}

// WithReadHeaderTimeout bounds reading the request headers.
func WithReadHeaderTimeout(d time.Duration) Option {
	return withDuration(func(c *config) *time.Duration { return &c.readHeaderTimeout }, d)
}

// WithWriteTimeout bounds writing the response.
func WithWriteTimeout(d time.Duration) Option {
	return withDuration(func(c *config) *time.Duration { return &c.writeTimeout }, d)
}

// WithIdleTimeout bounds keep-alive idle time.
func WithIdleTimeout(d time.Duration) Option {
	return withDuration(func(c *config) *time.Duration { return &c.idleTimeout }, d)
}

// WithShutdownTimeout bounds graceful shutdown.
func WithShutdownTimeout(d time.Duration) Option {
	return withDuration(func(c *config) *time.Duration { return &c.shutdownTimeout }, d)
}

// WithServer serves with srv instead of a fresh http.Server. Fields already
// set on srv win over the configured values; Handler is always replaced.
func WithServer(srv *http.Server) Option {
	return func(c *config) {
		if srv != nil {
			c.server = srv
		}
	}
}

// WithLogger sets the server logger. Without it the server logs nothing.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// OnStart appends a start hook.
func OnStart(h StartHook) Option {
	return func(c *config) {
		if h != nil {
			c.startHooks = append(c.startHooks, h)
		}
	}
}

// OnStop appends a stop hook.
func OnStop(h StopHook) Option {
	return func(c *config) {
		if h != nil {
			c.stopHooks = append(c.stopHooks, h)
		}
	}
}
