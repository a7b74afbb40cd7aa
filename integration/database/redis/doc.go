// Package redis connects to Redis for the search result cache.
//
// Connect validates the URL, retries the first ping with exponential
// backoff and returns a ready *redis.Client. Healthcheck adapts the client
// to the readiness probe.
//
//	cfg := redis.Config{ConnectionURL: "redis://localhost:6379/0"}
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	cached, err := search.NewCached(static, client, search.WithTTL(cfg.CacheTTL))
//
// Configuration is read from the environment:
//
//	REDIS_URL             redis:// or rediss:// URL (required)
//	REDIS_RETRY_ATTEMPTS  connection attempts, default 3
//	REDIS_RETRY_INTERVAL  base backoff between attempts, default 1s
//	REDIS_CONNECT_TIMEOUT bound on the whole connect, default 30s
//	REDIS_CACHE_TTL       lifetime of cached search results, default 5m
//
// Errors can be checked with errors.Is: ErrEmptyConnectionURL,
// ErrFailedToParseRedisConnString, ErrRedisNotReady and
// ErrHealthcheckFailed.
package redis
