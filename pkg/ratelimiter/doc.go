// Package ratelimiter limits requests per key with a fixed window counter.
//
// Each key may make Config.Max requests per Config.Window. The window opens on
// the key's first request and the counter starts over once it closes.
// Counters live in a Store: MemoryStore for a single instance or RedisStore
// to share limits between instances.
//
//	var cfg ratelimiter.Config
//	config.MustLoad(&cfg)
//
//	store, err := ratelimiter.NewStore(cfg, redisClient)
//	if err != nil {
//		return err
//	}
//	limiter, err := ratelimiter.New(store, cfg)
//	if err != nil {
//		return err
//	}
//
// # HTTP Middleware
//
// Middleware keys requests by client IP unless WithKeyFunc is given; an empty
// key bypasses the limiter. Counted responses carry X-RateLimit-Limit,
// X-RateLimit-Remaining and X-RateLimit-Reset. Denied requests get the 429
// response envelope and a Retry-After header in seconds.
//
// If the store fails the request is let through and the failure is logged.
//
// UnderPrefix restricts a key function to one path prefix. Composite joins
// several key functions; keys longer than 64 characters are replaced by a
// SHA-256 digest.
package ratelimiter
