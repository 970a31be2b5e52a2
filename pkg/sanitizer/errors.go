package sanitizer

import "errors"

var (
	ErrSanitizationFailed = errors.New("sanitizer: sanitization failed")
	ErrMalformedBody      = errors.New("sanitizer: malformed JSON body")
	ErrBodyTooLarge       = errors.New("sanitizer: request body too large")
)
