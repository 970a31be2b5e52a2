package filter

import (
	"errors"
	"fmt"
)

// ErrUnknownField is returned when a filter references a field that is not whitelisted.
var ErrUnknownField = errors.New("filter references unknown field")

func unknownField(name string) error {
	return fmt.Errorf("%w: %q", ErrUnknownField, name)
}
