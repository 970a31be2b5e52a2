package config

import "errors"

var (
	ErrParsingConfig = errors.New("config: parse environment")
	// ErrLoadingEnvFile means a dotenv file exists but could not be read.
	ErrLoadingEnvFile = errors.New("config: load env file")
	ErrNilPointer     = errors.New("config: nil target")
)
