package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Decode streams a JSON array from r, calling fn for every element in
// order. It returns the number of elements passed to fn. Decoding stops at
// the first error from fn, which is returned unchanged.
func Decode[T any](r io.Reader, fn func(T) error) (int, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, fmt.Errorf("%w: empty input", ErrInvalidFormat)
		}
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return 0, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
		}
		return 0, errors.Join(ErrReadFailed, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return 0, ErrInvalidFormat
	}

	n := 0
	for dec.More() {
		var item T
		if err := dec.Decode(&item); err != nil {
			return n, fmt.Errorf("%w: element %d: %w", ErrInvalidFormat, n, err)
		}
		if err := fn(item); err != nil {
			return n, err
		}
		n++
	}

	if _, err := dec.Token(); err != nil {
		return n, fmt.Errorf("%w: unterminated array: %w", ErrInvalidFormat, err)
	}
	return n, nil
}
