package httpserver

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/geoapi/pkg/envelope"
	"github.com/dmitrymomot/geoapi/pkg/logger"
)

// Health messages.
const (
	MessageAlive    = "Service is alive."
	MessageReady    = "Service is ready."
	MessageNotReady = "Service is not ready."
)

// Check is a named dependency check, such as mongo.Healthcheck.
type Check struct {
	Name string
	Fn   func(context.Context) error
}

// LivenessHandler always answers 200 with the success envelope.
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = envelope.Success(map[string]string{"status": "alive"}, MessageAlive, http.StatusOK).
			WithRoute(r.URL.Path).
			Render(w, r)
	}
}

// ReadinessHandler runs every check with the request context, each bounded by
// timeout when it is positive. All checks run even after a failure, and the
// data field reports "ok" or "fail" per check name. Any failure answers 503.
func ReadinessHandler(log *slog.Logger, timeout time.Duration, checks ...Check) http.HandlerFunc {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		status := make(map[string]string, len(checks))
		ready := true

		for _, c := range checks {
			if err := runCheck(ctx, timeout, c.Fn); err != nil {
				log.ErrorContext(ctx, "readiness check failed",
					logger.Component(c.Name),
					logger.Error(err),
				)
				status[c.Name] = "fail"
				ready = false
				continue
			}
			status[c.Name] = "ok"
		}

		env := envelope.Success(status, MessageReady, http.StatusOK)
		if !ready {
			env = envelope.Failure(MessageNotReady, http.StatusServiceUnavailable)
			env.Data = status
		}
		_ = env.WithRoute(r.URL.Path).Render(w, r)
	}
}

func runCheck(ctx context.Context, timeout time.Duration, fn func(context.Context) error) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return fn(ctx)
}
