package filter

import "maps"

// Kind is the stored type of a filterable field.
type Kind uint8

const (
	// String fields are matched as-is.
	String Kind = iota
	// Int fields are converted to integers by the store before matching.
	Int
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	default:
		return "string"
	}
}

// Fields is an immutable whitelist of field names and their kinds.
// The zero value is an empty whitelist that accepts nothing.
type Fields struct {
	kinds map[string]Kind
}

// NewFields creates a whitelist. The input map is copied.
func NewFields(kinds map[string]Kind) Fields {
	return Fields{kinds: maps.Clone(kinds)}
}

// Has reports whether name is whitelisted.
func (f Fields) Has(name string) bool {
	_, ok := f.kinds[name]
	return ok
}

// Kind returns the kind of a whitelisted field.
func (f Fields) Kind(name string) (Kind, bool) {
	k, ok := f.kinds[name]
	return k, ok
}

func (f Fields) Len() int {
	return len(f.kinds)
}

// Validate returns ErrUnknownField if spec references a field outside the whitelist.
func (f Fields) Validate(spec Spec) error {
	for key := range spec {
		if !f.Has(key) {
			return unknownField(key)
		}
	}
	return nil
}
