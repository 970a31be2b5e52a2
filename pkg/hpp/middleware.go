package hpp

import (
	"log/slog"
	"net/http"
	"net/url"
	"slices"

	"github.com/dmitrymomot/geoapi/pkg/logger"
)

// DefaultSensitiveParams are the parameters whose repetition is reported.
var DefaultSensitiveParams = []string{"user", "auth", "token"}

type config struct {
	logger    *slog.Logger
	sensitive []string
	whitelist []string
}

// Option configures Middleware.
type Option func(*config)

// WithLogger sets the logger for pollution warnings.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithSensitiveParams replaces the list of parameters reported when repeated.
func WithSensitiveParams(names ...string) Option {
	return func(c *config) {
		c.sensitive = names
	}
}

// WithWhitelist lists parameters that may legitimately repeat.
func WithWhitelist(names ...string) Option {
	return func(c *config) {
		c.whitelist = names
	}
}

// Middleware collapses repeated query parameters to their last value.
func Middleware(opts ...Option) func(http.Handler) http.Handler {
	cfg := &config{
		logger:    slog.Default(),
		sensitive: DefaultSensitiveParams,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.RawQuery == "" {
				next.ServeHTTP(w, r)
				return
			}

			query := r.URL.Query()
			var polluted url.Values
			for name, values := range query {
				if len(values) < 2 || slices.Contains(cfg.whitelist, name) {
					continue
				}
				if slices.Contains(cfg.sensitive, name) {
					cfg.logger.WarnContext(r.Context(), "parameter pollution detected",
						logger.Component("hpp"),
						slog.String("param", name),
						slog.Any("values", values),
					)
				}
				if polluted == nil {
					polluted = make(url.Values)
				}
				polluted[name] = values[:len(values)-1]
				query[name] = values[len(values)-1:]
			}

			if polluted == nil {
				next.ServeHTTP(w, r)
				return
			}

			r.URL.RawQuery = query.Encode()
			next.ServeHTTP(w, r.WithContext(withPolluted(r.Context(), polluted)))
		})
	}
}
