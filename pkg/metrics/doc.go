// Package metrics exposes service metrics in the Prometheus format.
//
// Metrics owns a private registry with the Go runtime and process collectors.
// Its methods match the small recorder interfaces of the cache, breaker,
// ratelimiter and alert packages, so components depend on those interfaces
// rather than on Prometheus types.
package metrics
