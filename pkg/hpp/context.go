package hpp

import (
	"context"
	"log/slog"
	"maps"
	"net/url"
	"slices"

	"github.com/dmitrymomot/geoapi/pkg/logger"
)

type contextKey struct{}

func withPolluted(ctx context.Context, values url.Values) context.Context {
	return context.WithValue(ctx, contextKey{}, values)
}

// Polluted returns the values removed from repeated query parameters, keyed by
// parameter name. It returns nil when the request carried no repeated parameters.
func Polluted(ctx context.Context) url.Values {
	if ctx == nil {
		return nil
	}
	values, ok := ctx.Value(contextKey{}).(url.Values)
	if !ok {
		return nil
	}
	return values
}

// LoggerExtractor tags records logged with a request context with the sorted
// names of the query parameters that arrived more than once.
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		polluted := Polluted(ctx)
		if len(polluted) == 0 {
			return slog.Attr{}, false
		}
		return slog.Any("polluted_params", slices.Sorted(maps.Keys(polluted))), true
	}
}
