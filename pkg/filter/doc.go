// Package filter turns untrusted client query parameters into equality filters that
// only reference whitelisted document fields.
//
// Each entity declares its queryable fields once, at package initialization, as a
// Fields value. Build and FromValues keep only the parameters whose names are members
// of that whitelist; everything else is dropped silently. The whitelist is the only
// thing standing between a client and arbitrary internal fields, so values are always
// passed through as plain strings and never interpreted as operators.
//
//	var countryFields = filter.NewFields(map[string]filter.Kind{
//		"id":   filter.Int,
//		"name": filter.String,
//		"iso2": filter.String,
//	})
//
//	spec := filter.FromValues(countryFields, r.URL.Query())
//	// ?name=France&$where=1 -> filter.Spec{"name": "France"}
//
// An empty Spec matches every document.
package filter
