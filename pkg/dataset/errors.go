package dataset

import "errors"

var (
	ErrNotFound           = errors.New("dataset: file not found")
	ErrInvalidConfig      = errors.New("dataset: invalid configuration")
	ErrFailedToLoadConfig = errors.New("dataset: failed to load AWS config")
	ErrInvalidFormat      = errors.New("dataset: file is not a JSON array")
	ErrReadFailed         = errors.New("dataset: failed to read file")
)
