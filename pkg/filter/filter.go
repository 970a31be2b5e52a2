package filter

import (
	"maps"
	"net/url"
	"slices"
)

// Spec maps a field name to the value it must equal.
type Spec map[string]string

// Keys returns the field names in sorted order.
func (s Spec) Keys() []string {
	return slices.Sorted(maps.Keys(s))
}

// Build keeps the parameters whose keys are whitelisted. Unknown keys are dropped
// without error. The result is never nil.
func Build(fields Fields, params map[string]string) Spec {
	spec := make(Spec, len(params))
	for key, value := range params {
		if fields.Has(key) {
			spec[key] = value
		}
	}
	return spec
}

// FromValues is Build for query strings. When a parameter repeats, the last value wins.
func FromValues(fields Fields, values url.Values) Spec {
	params := make(map[string]string, len(values))
	for key, vals := range values {
		if len(vals) == 0 {
			continue
		}
		params[key] = vals[len(vals)-1]
	}
	return Build(fields, params)
}
