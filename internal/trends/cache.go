package trends

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"reditrend/internal/model"
)

// Cache stores fetched post lists keyed by their query, so repeated
// pipeline runs within the TTL skip the Reddit round trip. Filtering
// and ranking happen per request; only the raw fetch is cached.
type Cache interface {
	Get(ctx context.Context, key string) ([]model.Post, bool)
	Set(ctx context.Context, key string, posts []model.Post)
}

// RedisCache backs the trend cache with Redis. All operations are best
// effort: a Redis failure means a cache miss, never a request failure.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisCache connects to Redis at addr.
func NewRedisCache(addr string, ttl time.Duration, logger *slog.Logger) *RedisCache {
	client := redis.NewClient(&redis.Options{Addr: addr})
	return &RedisCache{client: client, ttl: ttl, logger: logger}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]model.Post, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("trend cache read failed", "key", key, "error", err)
		}
		return nil, false
	}

	var posts []model.Post
	if err := json.Unmarshal(data, &posts); err != nil {
		c.logger.Warn("trend cache entry corrupt", "key", key, "error", err)
		return nil, false
	}
	return posts, true
}

func (c *RedisCache) Set(ctx context.Context, key string, posts []model.Post) {
	data, err := json.Marshal(posts)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("trend cache write failed", "key", key, "error", err)
	}
}

// NoopCache is used when no Redis address is configured.
type NoopCache struct{}

func (NoopCache) Get(ctx context.Context, key string) ([]model.Post, bool) { return nil, false }
func (NoopCache) Set(ctx context.Context, key string, posts []model.Post) {}

// CacheKey derives a stable key from the query. Subreddit order must
// not matter, so the list is sorted before joining.
func CacheKey(subreddits []string, dateRange model.DateRange, searchType string) string {
	sorted := append([]string(nil), subreddits...)
	sort.Strings(sorted)
	return strings.Join([]string{
		"trends",
		strings.Join(sorted, ","),
		searchType,
		dateRange.From,
		dateRange.To,
	}, ":")
}
