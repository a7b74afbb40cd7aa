package search

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/ssrkit/core/logger"
)

const (
	DefaultCacheTTL    = 5 * time.Minute
	DefaultCachePrefix = "search:"
)

// Cached serves repeated queries from Redis. Cache failures are logged and
// the query goes to the wrapped Searcher.
type Cached struct {
	next   Searcher
	client redis.Cmdable
	ttl    time.Duration
	prefix string
	logger *slog.Logger
}

// CacheOption configures Cached.
type CacheOption func(*Cached)

// WithTTL sets how long results stay cached.
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *Cached) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithKeyPrefix sets the Redis key prefix.
func WithKeyPrefix(prefix string) CacheOption {
	return func(c *Cached) { c.prefix = prefix }
}

// WithCacheLogger sets the logger used for cache failures.
func WithCacheLogger(l *slog.Logger) CacheOption {
	return func(c *Cached) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewCached wraps next with a cache stored in client.
func NewCached(next Searcher, client redis.Cmdable, opts ...CacheOption) (*Cached, error) {
	if next == nil {
		return nil, ErrNilSearcher
	}
	if client == nil {
		return nil, ErrNilCache
	}
	c := &Cached{
		next:   next,
		client: client,
		ttl:    DefaultCacheTTL,
		prefix: DefaultCachePrefix,
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Key returns the cache key for q.
func (c *Cached) Key(q Query) string {
	return c.prefix + q.Values().Encode()
}

func (c *Cached) Search(ctx context.Context, q Query) (Result, error) {
	q = q.Normalize()
	key := c.Key(q)

	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var res Result
		if err := json.Unmarshal(data, &res); err == nil {
			return res, nil
		}
		c.logger.WarnContext(ctx, "discarding malformed cache entry",
			logger.Component("search"), slog.String("key", key))
	case !errors.Is(err, redis.Nil):
		c.logger.WarnContext(ctx, "search cache read failed",
			logger.Component("search"), slog.String("key", key), logger.Error(err))
	}

	res, err := c.next.Search(ctx, q)
	if err != nil {
		return Result{}, err
	}

	if data, err := json.Marshal(res); err == nil {
		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.logger.WarnContext(ctx, "search cache write failed",
				logger.Component("search"), slog.String("key", key), logger.Error(err))
		}
	}

	return res, nil
}
