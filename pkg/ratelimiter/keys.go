package ratelimiter

import (
	"crypto/sha256"
	"encoding/hex"
	"net"
	"net/http"
	"strings"

	"github.com/dmitrymomot/geoapi/pkg/clientip"
)

// maxKeyLength caps composite keys; longer ones are replaced by a digest.
const maxKeyLength = 64

// KeyFunc derives the limiter key for a request. An empty key means the
// request is not limited.
type KeyFunc func(r *http.Request) string

// ByClientIP keys by the address resolved by clientip's middleware, or by the
// TCP peer when the middleware did not run.
func ByClientIP(r *http.Request) string {
	if ip := clientip.FromContext(r.Context()); ip != "" {
		return ip
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// UnderPrefix applies key only to prefix and the paths below it.
func UnderPrefix(prefix string, key KeyFunc) KeyFunc {
	prefix = strings.TrimSuffix(prefix, "/")
	return func(r *http.Request) string {
		p := r.URL.Path
		if p == prefix || strings.HasPrefix(p, prefix+"/") {
			return key(r)
		}
		return ""
	}
}

// Composite joins the non-empty keys with ":". Results longer than 64 bytes
// become "h:" followed by the first 16 bytes of their SHA-256 in hex.
func Composite(keys ...KeyFunc) KeyFunc {
	return func(r *http.Request) string {
		var b strings.Builder
		for _, fn := range keys {
			k := fn(r)
			if k == "" {
				continue
			}
			if b.Len() > 0 {
				b.WriteByte(':')
			}
			b.WriteString(k)
		}
		if b.Len() <= maxKeyLength {
			return b.String()
		}
		sum := sha256.Sum256([]byte(b.String()))
		return "h:" + hex.EncodeToString(sum[:16])
	}
}
