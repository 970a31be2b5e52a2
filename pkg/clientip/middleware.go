package clientip

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/geoapi/pkg/logger"
)

type ipKey struct{}

// WithContext stores ip in ctx.
func WithContext(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, ipKey{}, ip)
}

// FromContext returns the address stored by Middleware, or "".
func FromContext(ctx context.Context) string {
	if ip, ok := ctx.Value(ipKey{}).(string); ok {
		return ip
	}
	return ""
}

// Middleware resolves the client address once per request and stores it in
// the request context.
func (r *Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ctx := WithContext(req.Context(), r.IP(req))
		next.ServeHTTP(w, req.WithContext(ctx))
	})
}

// LoggerExtractor tags records logged with a request context with the
// client_ip stored by Middleware.
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		attr := logger.ClientIP(FromContext(ctx))
		return attr, attr.Key != ""
	}
}
