package breaker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sony/gobreaker"

	"github.com/dmitrymomot/geoapi/pkg/logger"
)

// StateListener is notified on every state transition.
type StateListener func(name string, from, to gobreaker.State)

// Breaker guards calls to a failing dependency.
type Breaker struct {
	cb *gobreaker.CircuitBreaker
}

type options struct {
	logger    *slog.Logger
	ignored   []error
	listeners []StateListener
}

// Option configures a Breaker.
type Option func(*options)

// WithLogger logs state transitions.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithIgnoredErrors lists errors that are returned to the caller without
// counting as failures, such as a not-found result.
func WithIgnoredErrors(errs ...error) Option {
	return func(o *options) {
		o.ignored = append(o.ignored, errs...)
	}
}

// WithStateListener registers a callback for state transitions.
func WithStateListener(fn StateListener) Option {
	return func(o *options) {
		if fn != nil {
			o.listeners = append(o.listeners, fn)
		}
	}
}

// New creates a circuit breaker named name.
func New(name string, cfg Config, opts ...Option) *Breaker {
	o := &options{logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}

	maxFailures := cfg.MaxFailures
	if maxFailures == 0 {
		maxFailures = 1
	}

	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		IsSuccessful: func(err error) bool {
			if err == nil || errors.Is(err, context.Canceled) {
				return true
			}
			for _, target := range o.ignored {
				if errors.Is(err, target) {
					return true
				}
			}
			return false
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			o.logger.Warn("circuit breaker state changed",
				logger.Component("breaker"),
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
			for _, fn := range o.listeners {
				fn(name, from, to)
			}
		},
	}

	return &Breaker{cb: gobreaker.NewCircuitBreaker(settings)}
}

// Name returns the breaker name.
func (b *Breaker) Name() string {
	return b.cb.Name()
}

// State returns the current state.
func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}

// Execute runs fn through the breaker. Rejected calls return an error
// wrapping ErrOpen; errors from fn are returned unchanged.
func (b *Breaker) Execute(fn func() error) error {
	_, err := Do(b, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

// Do runs fn through the breaker and returns its result.
func Do[T any](b *Breaker, fn func() (T, error)) (T, error) {
	var result T
	_, err := b.cb.Execute(func() (any, error) {
		var err error
		result, err = fn()
		return nil, err
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		var zero T
		return zero, fmt.Errorf("%w (%s): %w", ErrOpen, b.cb.Name(), err)
	}
	return result, err
}
