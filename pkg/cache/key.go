package cache

import (
	"maps"
	"net/http"
	"net/url"
	"slices"
	"strings"
)

// Key builds the cache key for a request: the method, the resolved path and
// the query with keys sorted and the values of each key sorted.
//
//	GET /countries/US/states?a=1&b=2
func Key(r *http.Request) string {
	var b strings.Builder
	b.WriteString(r.Method)
	b.WriteByte(' ')
	b.WriteString(r.URL.Path)

	query := r.URL.Query()
	if len(query) == 0 {
		return b.String()
	}

	b.WriteByte('?')
	for i, name := range slices.Sorted(maps.Keys(query)) {
		values := slices.Clone(query[name])
		slices.Sort(values)
		for j, value := range values {
			if i > 0 || j > 0 {
				b.WriteByte('&')
			}
			b.WriteString(url.QueryEscape(name))
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(value))
		}
	}
	return b.String()
}
