package binder

import "errors"

// ErrFailedToParsePath is wrapped by every Path binding failure. It maps to
// a 400 response.
var ErrFailedToParsePath = errors.New("binder: invalid path parameters")
