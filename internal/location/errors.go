package location

import "errors"

var (
	// ErrNotFound is returned by single-document lookups that match nothing.
	ErrNotFound = errors.New("location: not found")
	// ErrStore wraps every failure of the underlying document store.
	ErrStore = errors.New("location: store failure")
)
