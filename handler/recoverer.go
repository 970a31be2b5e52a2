package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/dmitrymomot/geoapi/pkg/envelope"
	"github.com/dmitrymomot/geoapi/pkg/logger"
)

// Recoverer converts a panic anywhere below it into a logged 500 envelope.
// http.ErrAbortHandler is re-panicked so net/http can abort the connection.
func Recoverer(log *slog.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				log.ErrorContext(r.Context(), "panic recovered",
					logger.Component("recoverer"),
					logger.Error(fmt.Errorf("%w: %v", ErrPanic, rec)),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("stack", string(debug.Stack())),
				)

				if r.Header.Get("Connection") == "Upgrade" {
					return
				}
				_ = envelope.InternalError().WithRoute(r.URL.Path).Render(w, r)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
