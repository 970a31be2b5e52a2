package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
)

// registry caches parsed configs by their Go type.
type registry struct {
	mu     sync.Mutex
	values map[reflect.Type]any
}

var (
	configs        = &registry{values: make(map[reflect.Type]any)}
	defaultEnvOnce sync.Once
)

// Load parses environment variables into v using its `env` struct tags.
//
// The first call loads .env.<APP_ENV> and then .env from the working
// directory, without overriding variables that are already set. Each config
// type is parsed once; later calls copy the cached value. A failed parse is
// not cached.
//
//	var cfg mongo.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	defaultEnvOnce.Do(func() {
		// Missing files are expected outside development.
		_ = LoadEnvFor(".", os.Getenv("APP_ENV"))
	})
	if v == nil {
		return ErrNilPointer
	}

	key := reflect.TypeFor[T]()

	configs.mu.Lock()
	defer configs.mu.Unlock()

	if cached, ok := configs.values[key]; ok {
		*v = cached.(T)
		return nil
	}

	var parsed T
	if err := env.Parse(&parsed); err != nil {
		return errors.Join(ErrParsingConfig, fmt.Errorf("%s: %w", key, err))
	}
	configs.values[key] = parsed
	*v = parsed
	return nil
}

// MustLoad works like Load but panics on failure.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// ForceReloadConfig parses the environment into v regardless of the cache
// and replaces the cached value for its type.
func ForceReloadConfig[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	var parsed T
	if err := env.Parse(&parsed); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}

	configs.mu.Lock()
	configs.values[reflect.TypeFor[T]()] = parsed
	configs.mu.Unlock()

	*v = parsed
	return nil
}

// ResetCache drops all cached configs so the next Load parses the environment again.
func ResetCache() {
	configs.mu.Lock()
	configs.values = make(map[reflect.Type]any)
	configs.mu.Unlock()
}
