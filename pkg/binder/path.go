package binder

import (
	"fmt"
	"net/http"
	"reflect"
)

// Path creates a path parameter binder. The extractor is called once per
// bindable field with the parameter name, chi.URLParam being the usual one.
// Empty values leave the field untouched.
func Path(extractor func(r *http.Request, name string) string) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if extractor == nil {
			return fmt.Errorf("%w: extractor function is nil", ErrFailedToParsePath)
		}

		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Pointer || rv.IsNil() {
			return fmt.Errorf("%w: target must be a non-nil pointer", ErrFailedToParsePath)
		}
		rv = rv.Elem()
		if rv.Kind() != reflect.Struct {
			return fmt.Errorf("%w: target must be a pointer to struct", ErrFailedToParsePath)
		}

		for _, f := range fieldsOf(rv.Type()) {
			raw := extractor(r, f.param)
			if raw == "" {
				continue
			}
			if err := assign(rv.Field(f.index), raw); err != nil {
				return fmt.Errorf("%w: %s: %v", ErrFailedToParsePath, f.param, err)
			}
		}
		return nil
	}
}
