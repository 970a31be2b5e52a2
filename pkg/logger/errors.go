package logger

import "errors"

var ErrInvalidConfig = errors.New("logger: invalid config")
