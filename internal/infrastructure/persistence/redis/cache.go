// Package redis provides the Redis client and cache repository
package redis

import (
	"context"
	"errors"
	"time"

	"github.com/recipehub/api/internal/infrastructure/config"
	"github.com/recipehub/api/internal/ports/outbound"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewClient connects to Redis. Returns nil when Redis is not
// configured; callers treat a nil client as cache-disabled.
func NewClient(cfg *config.Config, log *zap.Logger) *redis.Client {
	addr := cfg.RedisAddr()
	if addr == "" {
		log.Info("Redis not configured, caching disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.Database,
		PoolSize: cfg.Redis.PoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("Redis unreachable, caching disabled", zap.Error(err))
		return nil
	}

	log.Info("Connected to Redis", zap.String("addr", addr))
	return client
}

// CacheRepository implements the cache repository on Redis. A nil
// client turns every operation into a miss or no-op.
type CacheRepository struct {
	client *redis.Client
}

// NewCacheRepository creates a new cache repository
func NewCacheRepository(client *redis.Client) outbound.CacheRepository {
	return &CacheRepository{client: client}
}

// Get returns the cached value, or nil on a miss
func (c *CacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	if c.client == nil {
		return nil, nil
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return raw, nil
}

// Set stores a value with the given TTL
func (c *CacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}
	return c.client.Set(ctx, key, value, ttl).Err()
}

// Delete removes a key
func (c *CacheRepository) Delete(ctx context.Context, key string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, key).Err()
}

// Exists reports whether a key is present
func (c *CacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	if c.client == nil {
		return false, nil
	}
	n, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
