package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/feral-file/ff-raffle/internal/adapter"
	"github.com/feral-file/ff-raffle/internal/logger"
)

// KeyPrefix namespaces every key written by the cache
const KeyPrefix = "ff-raffle:"

// Cache defines a JSON key-value cache
//
//go:generate mockgen -source=cache.go -destination=../mocks/cache.go -package=mocks -mock_names=Cache=MockCache
type Cache interface {
	// Get decodes the value at key into dest. It reports false on a miss.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set encodes value and stores it at key. A zero ttl keeps the key forever.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Del removes the given keys
	Del(ctx context.Context, keys ...string) error
}

type redisCache struct {
	client adapter.RedisClient
	json   adapter.JSON
}

// NewCache creates a cache backed by redis
func NewCache(client adapter.RedisClient, jsonAdapter adapter.JSON) Cache {
	return &redisCache{
		client: client,
		json:   jsonAdapter,
	}
}

func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := c.client.Get(ctx, KeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get %s: %w", key, err)
	}

	if err := c.json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}

	return true, nil
}

func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := c.json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	if err := c.client.Set(ctx, KeyPrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	return nil
}

func (c *redisCache) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = KeyPrefix + k
	}

	if err := c.client.Del(ctx, prefixed...).Err(); err != nil {
		return fmt.Errorf("failed to delete keys: %w", err)
	}

	return nil
}

// Remember returns the cached value at key, or computes it with fn and caches it for ttl.
// Cache failures are logged and fall through to fn, so an unavailable redis only costs latency.
func Remember[T any](ctx context.Context, c Cache, key string, ttl time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	var cached T
	hit, err := c.Get(ctx, key, &cached)
	if err != nil {
		logger.WarnCtx(ctx, "Cache read failed", zap.String("key", key), zap.Error(err))
	}
	if hit {
		return cached, nil
	}

	value, err := fn(ctx)
	if err != nil {
		return value, err
	}

	if err := c.Set(ctx, key, value, ttl); err != nil {
		logger.WarnCtx(ctx, "Cache write failed", zap.String("key", key), zap.Error(err))
	}

	return value, nil
}
