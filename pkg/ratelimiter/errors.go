package ratelimiter

import "errors"

var (
	ErrInvalidConfig  = errors.New("ratelimiter: invalid configuration")
	ErrUnknownBackend = errors.New("ratelimiter: unknown backend")
)
