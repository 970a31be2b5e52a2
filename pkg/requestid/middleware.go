package requestid

import (
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

// Header is the default request id header.
const Header = "X-Request-ID"

const maxIDLength = 128

var validID = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

type config struct {
	header   string
	generate func() string
	trust    bool
}

// Option configures New.
type Option func(*config)

// WithHeader reads and echoes the id in header instead of X-Request-ID.
func WithHeader(header string) Option {
	return func(c *config) {
		if header != "" {
			c.header = http.CanonicalHeaderKey(header)
		}
	}
}

// WithGenerator replaces the UUIDv7 generator.
func WithGenerator(fn func() string) Option {
	return func(c *config) {
		if fn != nil {
			c.generate = fn
		}
	}
}

// WithIncoming controls whether a well-formed id sent by the client is
// reused. It is on by default.
func WithIncoming(trust bool) Option {
	return func(c *config) {
		c.trust = trust
	}
}

// New returns middleware that assigns every request an id, stores it in the
// request context and echoes it in the response header. Client ids longer
// than 128 bytes or containing characters other than letters, digits, '-'
// and '_' are replaced.
func New(opts ...Option) func(http.Handler) http.Handler {
	cfg := &config{header: Header, generate: newID, trust: true}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ""
			if cfg.trust {
				id = r.Header.Get(cfg.header)
			}
			if !valid(id) {
				id = cfg.generate()
			}
			w.Header().Set(cfg.header, id)
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), id)))
		})
	}
}

// Middleware is New with the defaults.
func Middleware(next http.Handler) http.Handler {
	return New()(next)
}

// newID returns a time-ordered UUIDv7, which sorts log lines of one instance
// by arrival. It falls back to a random UUID if the clock source fails.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func valid(id string) bool {
	return id != "" && len(id) <= maxIDLength && validID.MatchString(id)
}
