package ratelimiter

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Backend names accepted by RATE_LIMIT_BACKEND.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config is a fixed window policy: Max requests per Window for each key.
type Config struct {
	Max       int           `env:"RATE_LIMIT_MAX" envDefault:"100"`
	Window    time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`
	Backend   string        `env:"RATE_LIMIT_BACKEND" envDefault:"memory"`
	KeyPrefix string        `env:"RATE_LIMIT_KEY_PREFIX" envDefault:"geoapi:ratelimit:"`
}

func (c Config) validate() error {
	if c.Max <= 0 {
		return fmt.Errorf("%w: max must be positive, got %d", ErrInvalidConfig, c.Max)
	}
	if c.Window < time.Millisecond {
		return fmt.Errorf("%w: window must be at least 1ms, got %v", ErrInvalidConfig, c.Window)
	}
	return nil
}

// NewStore builds the store selected by cfg.Backend. The redis client is
// required only for the redis backend and is owned by the caller.
func NewStore(cfg Config, client redis.UniversalClient) (Store, error) {
	switch cfg.Backend {
	case "", BackendMemory:
		return NewMemoryStore(), nil
	case BackendRedis:
		if client == nil {
			return nil, fmt.Errorf("%w: redis backend requires a client", ErrUnknownBackend)
		}
		return NewRedisStore(client, cfg.KeyPrefix), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
