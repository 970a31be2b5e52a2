package handler

import "errors"

var (
	ErrNilResponse = errors.New("handler: nil response")
	ErrPanic       = errors.New("handler: panic")
)
