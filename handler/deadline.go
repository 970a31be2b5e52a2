package handler

import (
	"context"
	"net/http"
	"time"
)

// Deadline bounds each request context by d. Unlike chi's Timeout it never
// writes a response of its own: handlers see the expired context and answer
// with their own envelope. A non-positive d leaves requests unbounded.
func Deadline(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
