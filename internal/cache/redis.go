package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/zsiec/timecode/internal/logger"
	"github.com/zsiec/timecode/pkg/timecode"
)

// DefaultPrefix namespaces conversion entries.
const DefaultPrefix = "timecode:convert:"

// RedisCache keeps conversions in Redis as JSON with a TTL.
type RedisCache struct {
	client redis.UniversalClient
	logger logger.Logger
	prefix string
	ttl    time.Duration
}

// NewRedisCache returns a cache on client. A zero ttl means one hour and
// an empty prefix means DefaultPrefix.
func NewRedisCache(client redis.UniversalClient, log logger.Logger, prefix string, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if log == nil {
		log = logger.NewNullLogger()
	}
	return &RedisCache{
		client: client,
		logger: log.WithField("component", "cache"),
		prefix: prefix,
		ttl:    ttl,
	}
}

func (c *RedisCache) Get(ctx context.Context, key string) (timecode.Time, bool, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return timecode.Time{}, false, nil
	}
	if err != nil {
		return timecode.Time{}, false, fmt.Errorf("failed to read conversion: %w", err)
	}

	var t timecode.Time
	if err := json.Unmarshal(data, &t); err != nil {
		// a corrupt entry is dropped and recomputed
		c.logger.WithError(err).WithField("key", key).Warn("Discarding undecodable cache entry")
		if err := c.client.Del(ctx, c.prefix+key).Err(); err != nil {
			c.logger.WithError(err).WithField("key", key).Warn("Failed to delete undecodable cache entry")
		}
		return timecode.Time{}, false, nil
	}
	return t, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, t timecode.Time) error {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to marshal conversion: %w", err)
	}
	if err := c.client.Set(ctx, c.prefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store conversion: %w", err)
	}
	c.logger.WithField("key", key).Debug("Conversion cached")
	return nil
}

// Flush removes every entry under the cache prefix and returns how many
// were deleted.
func (c *RedisCache) Flush(ctx context.Context) (int64, error) {
	var deleted int64
	iter := c.client.Scan(ctx, 0, c.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		n, err := c.client.Del(ctx, iter.Val()).Result()
		if err != nil {
			return deleted, fmt.Errorf("failed to delete %s: %w", iter.Val(), err)
		}
		deleted += n
	}
	if err := iter.Err(); err != nil {
		return deleted, fmt.Errorf("failed to scan cache: %w", err)
	}
	return deleted, nil
}
