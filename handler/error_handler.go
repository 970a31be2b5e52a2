package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/geoapi/pkg/binder"
	"github.com/dmitrymomot/geoapi/pkg/envelope"
	"github.com/dmitrymomot/geoapi/pkg/logger"
)

// ErrorEnvelope maps err to the envelope returned to the client.
// Binding failures are client errors; everything else is hidden behind a
// generic 500.
func ErrorEnvelope(err error) envelope.Envelope {
	if errors.Is(err, binder.ErrFailedToParsePath) {
		return envelope.BadRequest()
	}
	return envelope.InternalError()
}

// NewErrorHandler returns an ErrorHandler that logs err once and answers
// with the matching envelope, route attached. A nil logger means slog.Default
// at the time of the error.
func NewErrorHandler(log *slog.Logger) ErrorHandler {
	return func(ctx Context, err error) {
		log := log
		if log == nil {
			log = slog.Default()
		}
		r := ctx.Request()
		env := ErrorEnvelope(err).WithRoute(ctx.Route())

		level := slog.LevelError
		if env.StatusCode < http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		log.LogAttrs(r.Context(), level, "request error",
			logger.Component("handler"),
			logger.Error(err),
			slog.Int("status_code", env.StatusCode),
			slog.String("method", r.Method),
			slog.String("path", ctx.Route()),
		)

		if renderErr := env.Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.ErrorContext(r.Context(), "failed to render error envelope",
				logger.Component("handler"),
				logger.Error(renderErr),
			)
		}
	}
}
