package sanitizer

import (
	"errors"
	"fmt"
	"maps"
	"net/url"
	"reflect"
	"slices"
)

// Deep cleans every string reachable from a nested value.
//
// Supported containers are map[string]any, []any, url.Values,
// map[string][]string, map[string]string and []string. Other values are
// returned unchanged. The input is never modified: Sanitize returns a clone in
// which every string, including map keys, has been passed through the string
// cleaner.
//
// Traversal uses an explicit work-list, so nesting depth does not grow the call
// stack. Each distinct container is cloned once; shared references and cycles
// in the input are reproduced in the clone.
type Deep struct {
	clean func(string) string
}

// Option configures Deep.
type Option func(*Deep)

// WithStringCleaner replaces the default StripMarkup cleaner.
func WithStringCleaner(fn func(string) string) Option {
	return func(d *Deep) {
		if fn != nil {
			d.clean = fn
		}
	}
}

// NewDeep creates a deep sanitizer.
func NewDeep(opts ...Option) *Deep {
	d := &Deep{clean: StripMarkup}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Sanitize returns a cleaned clone of v.
func (d *Deep) Sanitize(v any) any {
	w := &walker{
		clean: d.clean,
		seen:  make(map[nodeKey]any),
	}
	return w.run(v)
}

// Clean is Sanitize with panics converted into ErrSanitizationFailed.
func (d *Deep) Clean(v any) (out any, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = errors.Join(ErrSanitizationFailed, fmt.Errorf("panic: %v", r))
		}
	}()
	return d.Sanitize(v), nil
}

// nodeKey identifies a container. Slices are keyed by backing array and
// length so that distinct sub-slices of one array stay distinct.
type nodeKey struct {
	kind reflect.Kind
	ptr  uintptr
	n    int
}

type walker struct {
	clean func(string) string
	seen  map[nodeKey]any
	tasks []func()
}

func (w *walker) run(root any) any {
	out := w.enter(root)
	for len(w.tasks) > 0 {
		last := len(w.tasks) - 1
		task := w.tasks[last]
		w.tasks[last] = nil
		w.tasks = w.tasks[:last]
		task()
	}
	return out
}

// enter returns the clone for v. Containers get an empty clone immediately and
// a task that fills it later, which is what lets cycles resolve to the clone.
func (w *walker) enter(v any) any {
	switch src := v.(type) {
	case string:
		return w.clean(src)
	case map[string]any:
		if src == nil {
			return src
		}
		if c, ok := w.lookup(src); ok {
			return c
		}
		dst := make(map[string]any, len(src))
		w.remember(src, dst)
		w.push(func() {
			for _, k := range sortedKeys(src) {
				dst[w.clean(k)] = w.enter(src[k])
			}
		})
		return dst
	case []any:
		if src == nil {
			return src
		}
		if c, ok := w.lookup(src); ok {
			return c
		}
		dst := make([]any, len(src))
		w.remember(src, dst)
		w.push(func() {
			for i, item := range src {
				dst[i] = w.enter(item)
			}
		})
		return dst
	case url.Values:
		if src == nil {
			return src
		}
		if c, ok := w.lookup(src); ok {
			return c
		}
		dst := make(url.Values, len(src))
		w.remember(src, dst)
		w.push(func() {
			for _, k := range sortedKeys(src) {
				dst[w.clean(k)] = w.stringSlice(src[k])
			}
		})
		return dst
	case map[string][]string:
		if src == nil {
			return src
		}
		if c, ok := w.lookup(src); ok {
			return c
		}
		dst := make(map[string][]string, len(src))
		w.remember(src, dst)
		w.push(func() {
			for _, k := range sortedKeys(src) {
				dst[w.clean(k)] = w.stringSlice(src[k])
			}
		})
		return dst
	case map[string]string:
		if src == nil {
			return src
		}
		if c, ok := w.lookup(src); ok {
			return c
		}
		dst := make(map[string]string, len(src))
		w.remember(src, dst)
		for _, k := range sortedKeys(src) {
			dst[w.clean(k)] = w.clean(src[k])
		}
		return dst
	case []string:
		return w.stringSlice(src)
	default:
		return v
	}
}

// stringSlice clones a string slice. Its elements are leaves, so it is filled in place.
func (w *walker) stringSlice(src []string) []string {
	if src == nil {
		return nil
	}
	if c, ok := w.lookup(src); ok {
		return c.([]string)
	}
	dst := make([]string, len(src))
	w.remember(src, dst)
	for i, s := range src {
		dst[i] = w.clean(s)
	}
	return dst
}

func (w *walker) push(task func()) {
	w.tasks = append(w.tasks, task)
}

func (w *walker) lookup(v any) (any, bool) {
	key, ok := identity(v)
	if !ok {
		return nil, false
	}
	c, found := w.seen[key]
	return c, found
}

func (w *walker) remember(src, dst any) {
	if key, ok := identity(src); ok {
		w.seen[key] = dst
	}
}

// identity reports false for containers without addressable storage, such as
// empty slices, which cannot take part in a cycle.
func identity(v any) (nodeKey, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		return nodeKey{kind: reflect.Map, ptr: rv.Pointer()}, true
	case reflect.Slice:
		if rv.Len() == 0 {
			return nodeKey{}, false
		}
		return nodeKey{kind: reflect.Slice, ptr: rv.Pointer(), n: rv.Len()}, true
	default:
		return nodeKey{}, false
	}
}

// sortedKeys makes key collisions after cleaning deterministic: the last key in
// sort order wins.
func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
