// Package redis connects to the Redis server used as the shared response
// cache backend.
//
// Connect parses REDIS_URL, retries until the server answers PING and
// returns a go-redis client. Healthcheck wraps PING for the readiness
// endpoint:
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	store := cache.NewRedisStore(client, "geoapi:cache:")
//
// Errors wrap the go-redis error with errors.Join so both can be matched
// with errors.Is.
package redis
