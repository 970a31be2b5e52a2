// Package cache memoizes response envelopes for a fixed time-to-live.
//
// A Store keeps raw bytes with an expiry. Two implementations are provided:
// MemoryStore, a process-local map with lazy expiry and a background sweep,
// and RedisStore, which shares entries between instances through Redis.
//
// ResponseCache sits on top of a Store and works with envelope.Envelope
// values:
//
//	rc := cache.NewResponseCache(store, cache.WithTTL(time.Minute))
//	env, hit := rc.Fetch(ctx, cache.Key(r), func(ctx context.Context) envelope.Envelope {
//		return svc.Countries(ctx, params)
//	})
//
// Only successful and not-found envelopes are stored; server errors are never
// cached. Concurrent misses for the same key run the fill function once.
// Store errors degrade to a miss and are logged, they never reach the client.
package cache
