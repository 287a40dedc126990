package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "suratjalan:pdf:"

// RedisRenderCache implements RenderCache using Redis.
// This is suitable for deployments where multiple instances share rendered output.
type RedisRenderCache struct {
	client    *redis.Client
	keyPrefix string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisRenderCache connects to Redis and verifies the connection
func NewRedisRenderCache(ctx context.Context, cfg RedisConfig) (*RedisRenderCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisRenderCacheWithClient(client, ""), nil
}

// NewRedisRenderCacheWithClient creates a cache with an existing Redis client
func NewRedisRenderCacheWithClient(client *redis.Client, keyPrefix string) *RedisRenderCache {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &RedisRenderCache{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Get returns the value stored under key; redis.Nil is reported as a miss
func (c *RedisRenderCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, ErrEmptyKey
	}
	value, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached PDF: %w", err)
	}
	return value, true, nil
}

// Set stores value with ttl
func (c *RedisRenderCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return ErrEmptyKey
	}
	if err := c.client.Set(ctx, c.keyPrefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache PDF: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisRenderCache) Close() error {
	return c.client.Close()
}

// KeyPrefix returns the prefix applied to every key
func (c *RedisRenderCache) KeyPrefix() string {
	return c.keyPrefix
}

var _ RenderCache = (*RedisRenderCache)(nil)
