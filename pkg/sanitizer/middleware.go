package sanitizer

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrymomot/geoapi/pkg/envelope"
	"github.com/dmitrymomot/geoapi/pkg/logger"
)

// DefaultMaxBodySize matches the default JSON_PAYLOAD_LIMIT.
const DefaultMaxBodySize int64 = 1_000_000

type middlewareConfig struct {
	logger      *slog.Logger
	maxBodySize int64
}

// MiddlewareOption configures Middleware.
type MiddlewareOption func(*middlewareConfig)

// WithLogger sets the logger used to report rejected requests.
func WithLogger(l *slog.Logger) MiddlewareOption {
	return func(c *middlewareConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMaxBodySize limits the JSON body size accepted by the middleware.
func WithMaxBodySize(n int64) MiddlewareOption {
	return func(c *middlewareConfig) {
		if n > 0 {
			c.maxBodySize = n
		}
	}
}

// Middleware cleans the query string, the path segments and any JSON body of
// a request before it reaches the router. Route parameters are resolved from
// the cleaned path.
//
// A request that cannot be sanitized is logged and answered with the 500
// processing-error envelope; the next handler is not called.
func Middleware(d *Deep, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := &middlewareConfig{
		logger:      slog.Default(),
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := sanitizeRequest(d, r, cfg.maxBodySize); err != nil {
				cfg.logger.ErrorContext(r.Context(), "request sanitization failed",
					logger.Component("sanitizer"),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					logger.Error(err),
				)
				_ = envelope.ProcessingError().WithRoute(r.URL.Path).Render(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func sanitizeRequest(d *Deep, r *http.Request, maxBodySize int64) error {
	if r.URL.RawQuery != "" {
		out, err := d.Clean(r.URL.Query())
		if err != nil {
			return err
		}
		r.URL.RawQuery = out.(url.Values).Encode()
	}

	segments := strings.Split(r.URL.Path, "/")
	out, err := d.Clean(segments)
	if err != nil {
		return err
	}
	r.URL.Path = strings.Join(out.([]string), "/")
	r.URL.RawPath = ""

	if isJSON(r) {
		return sanitizeBody(d, r, maxBodySize)
	}
	return nil
}

func sanitizeBody(d *Deep, r *http.Request, maxBodySize int64) error {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize+1))
	if err != nil {
		return errors.Join(ErrMalformedBody, err)
	}
	_ = r.Body.Close()
	if int64(len(raw)) > maxBodySize {
		return ErrBodyTooLarge
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		r.Body = io.NopCloser(bytes.NewReader(raw))
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var payload any
	if err := dec.Decode(&payload); err != nil {
		return errors.Join(ErrMalformedBody, err)
	}
	if dec.More() {
		return ErrMalformedBody
	}

	cleaned, err := d.Clean(payload)
	if err != nil {
		return err
	}
	body, err := json.Marshal(cleaned)
	if err != nil {
		return errors.Join(ErrSanitizationFailed, err)
	}

	r.Body = io.NopCloser(bytes.NewReader(body))
	r.ContentLength = int64(len(body))
	r.Header.Set("Content-Length", strconv.Itoa(len(body)))
	return nil
}

func isJSON(r *http.Request) bool {
	if r.Body == nil || r.Body == http.NoBody {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}
