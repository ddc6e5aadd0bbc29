package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"mflix-catalog/internal/catalog/domain/model"
	"mflix-catalog/internal/catalog/domain/repository"
	apperrors "mflix-catalog/internal/shared/errors"
	"mflix-catalog/internal/shared/logger"

	"github.com/redis/go-redis/v9"
)

// RedisPageCache stores result pages as JSON strings with a TTL
type RedisPageCache struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
	logger logger.Logger
}

var _ repository.PageCache = (*RedisPageCache)(nil)

// NewRedisPageCache creates a page cache over any redis.Cmdable (client, cluster, pipeline)
func NewRedisPageCache(client redis.Cmdable, prefix string, ttl time.Duration, log logger.Logger) *RedisPageCache {
	return &RedisPageCache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		logger: log.WithComponent("page_cache"),
	}
}

// Key returns the Redis key for a cache key
func (c *RedisPageCache) Key(key string) string {
	return c.prefix + key
}

// Get returns the cached page or apperrors.ErrCacheMiss
func (c *RedisPageCache) Get(ctx context.Context, key string) (*model.Page, error) {
	raw, err := c.client.Get(ctx, c.Key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apperrors.ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}

	var page model.Page
	if err := json.Unmarshal(raw, &page); err != nil {
		// A corrupt entry is treated as a miss and evicted.
		c.logger.WithContext(ctx).WithFields(map[string]interface{}{"key": key}).Warnf("discarding unreadable cache entry: %v", err)
		c.client.Del(ctx, c.Key(key))
		return nil, apperrors.ErrCacheMiss
	}
	return &page, nil
}

// Set stores page under key for the configured TTL
func (c *RedisPageCache) Set(ctx context.Context, key string, page *model.Page) error {
	raw, err := json.Marshal(page)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.Key(key), raw, c.ttl).Err()
}

// Ping checks the Redis connection
func (c *RedisPageCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
