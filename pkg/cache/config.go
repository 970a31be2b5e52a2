package cache

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Backend names accepted by CACHE_BACKEND.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

type Config struct {
	TTL           time.Duration `env:"CACHE_TTL" envDefault:"60s"`                   // TTL is the lifetime of cached responses.
	Backend       string        `env:"CACHE_BACKEND" envDefault:"memory"`            // Backend is either "memory" or "redis".
	SweepInterval time.Duration `env:"CACHE_SWEEP_INTERVAL" envDefault:"1m"`         // SweepInterval is how often the memory backend drops expired entries.
	KeyPrefix     string        `env:"CACHE_KEY_PREFIX" envDefault:"geoapi:cache:"` // KeyPrefix namespaces keys in the redis backend.
}

// NewStore builds the store selected by cfg.Backend. The redis client is only
// used, and required, for the redis backend.
func NewStore(cfg Config, client redis.UniversalClient) (Store, error) {
	switch cfg.Backend {
	case "", BackendMemory:
		return NewMemoryStore(WithSweepInterval(cfg.SweepInterval)), nil
	case BackendRedis:
		if client == nil {
			return nil, fmt.Errorf("%w: redis backend requires a client", ErrUnknownBackend)
		}
		return NewRedisStore(client, cfg.KeyPrefix), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
