package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"prompt-server/internal/interfaces"
	"prompt-server/internal/models"
)

// Compile-time check to ensure redisContentCache implements ContentCache
var _ interfaces.ContentCache = (*redisContentCache)(nil)

type redisContentCache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisContentCache creates a new Redis-backed ContentCache.
func NewRedisContentCache(client *redis.Client, logger *zap.Logger) interfaces.ContentCache {
	return &redisContentCache{
		client: client,
		logger: logger.Named("RedisContentCache"),
	}
}

func (c *redisContentCache) Get(ctx context.Context, key string) (string, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", models.ErrCacheMiss
		}
		c.logger.Error("Failed to get cache key from redis", zap.Error(err), zap.String("key", key))
		return "", fmt.Errorf("failed to get cache key from redis: %w", err)
	}
	return val, nil
}

func (c *redisContentCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		c.logger.Error("Failed to set cache key in redis", zap.Error(err), zap.String("key", key))
		return fmt.Errorf("failed to set cache key in redis: %w", err)
	}
	c.logger.Debug("Cache key set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (c *redisContentCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.logger.Error("Failed to delete cache key from redis", zap.Error(err), zap.String("key", key))
		return fmt.Errorf("failed to delete cache key from redis: %w", err)
	}
	c.logger.Debug("Cache key deleted", zap.String("key", key))
	return nil
}
