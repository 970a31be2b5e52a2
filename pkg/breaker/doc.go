// Package breaker wraps github.com/sony/gobreaker with environment-driven
// configuration, state-change logging and a generic call helper.
//
//	b := breaker.New("mongo", cfg, breaker.WithLogger(log), breaker.WithIgnoredErrors(store.ErrNotFound))
//	docs, err := breaker.Do(b, func() ([]Doc, error) { return find(ctx) })
//	if errors.Is(err, breaker.ErrOpen) {
//		// dependency is failing, request rejected without calling it
//	}
//
// Cancelled contexts and ignored errors are reported to the caller but do not
// count as failures.
package breaker
