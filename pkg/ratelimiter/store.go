package ratelimiter

import (
	"context"
	"time"
)

// Store counts hits per key in fixed windows.
//
// Hit records one request for key. The first hit opens a window of the given
// length; hits returns the count inside the current window including this one,
// and resetAt is when the window closes. Implementations must be safe for
// concurrent use.
type Store interface {
	Hit(ctx context.Context, key string, window time.Duration) (hits int, resetAt time.Time, err error)
	Reset(ctx context.Context, key string) error
}
