// Package binder fills request structs from URL path parameters.
//
// Path takes an extractor so it works with any router. With chi:
//
//	type stateRequest struct {
//	    CountryISO string `path:"ciso"`
//	    StateISO   string `path:"siso"`
//	}
//
//	r.Get("/countries/{ciso}/states/{siso}", handler.Wrap(h,
//	    handler.WithBinders[stateRequest](binder.Path(chi.URLParam)),
//	))
//
// Fields are matched by the `path` tag, or by the lowercased field name when
// the tag is missing; `path:"-"` skips a field. Strings, integers, floats,
// bools and pointers to them are supported. Conversion failures wrap
// ErrFailedToParsePath.
package binder
