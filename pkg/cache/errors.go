package cache

import "errors"

var (
	ErrInvalidKey     = errors.New("cache: key is invalid")
	ErrKeyTooLong     = errors.New("cache: key exceeds max length")
	ErrUnknownBackend = errors.New("cache: unknown backend")
)
