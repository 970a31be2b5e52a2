package breaker

import "time"

type Config struct {
	MaxRequests uint32        `env:"BREAKER_MAX_REQUESTS" envDefault:"5"`  // MaxRequests is the number of trial calls allowed while half-open.
	Interval    time.Duration `env:"BREAKER_INTERVAL" envDefault:"60s"`    // Interval is the cyclic period of the closed state for clearing counts.
	Timeout     time.Duration `env:"BREAKER_TIMEOUT" envDefault:"30s"`     // Timeout is how long the breaker stays open before probing again.
	MaxFailures uint32        `env:"BREAKER_MAX_FAILURES" envDefault:"5"`  // MaxFailures is the number of consecutive failures that opens the breaker.
}
