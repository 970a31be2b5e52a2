// Package sanitizer neutralizes markup in untrusted request data.
//
// StripMarkup cleans a single string: it normalizes to NFC, drops null bytes
// and control sequences, removes script-like elements together with their
// content, strips the remaining tags and unescapes entities. Passes repeat
// until the output stops changing, so cleaning already clean text is a no-op.
//
//	sanitizer.StripMarkup(`<script>alert(1)</script>Paris`) // "Paris"
//
// Deep applies the string cleaner to every string inside a nested value and
// returns a clone. It walks with an explicit work-list and remembers each
// container it has cloned, so cyclic input terminates and keeps its shape.
//
//	d := sanitizer.NewDeep()
//	clean := d.Sanitize(map[string]any{"name": "<b>Rome</b>"})
//
// Middleware runs Deep over the query string, path segments and JSON body of
// each request and answers with the processing-error envelope when a request
// cannot be cleaned.
//
// Chain builds a custom cleaner from the individual passes, for use with
// WithStringCleaner:
//
//	clean := sanitizer.Chain{sanitizer.RemoveNullBytes, sanitizer.StripTags}
//	d := sanitizer.NewDeep(sanitizer.WithStringCleaner(clean.Clean))
package sanitizer
