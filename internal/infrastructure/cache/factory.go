package cache

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/erp/suratjalan/internal/infrastructure/config"
)

// NewRenderCache creates the cache selected by cfg.Driver.
// It returns nil when caching is disabled. A redis driver falls back to the
// in-memory cache when Redis is unreachable, unless cfg.RequireRedis is set.
func NewRenderCache(ctx context.Context, cfg config.CacheConfig, logger *zap.Logger) (RenderCache, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !cfg.Enabled {
		return nil, nil
	}

	switch cfg.Driver {
	case "", config.CacheDriverMemory:
		logger.Info("Using in-memory render cache", zap.Int("max_entries", cfg.MaxEntries))
		return NewInMemoryRenderCache(cfg.MaxEntries), nil
	case config.CacheDriverRedis:
	default:
		return nil, fmt.Errorf("unknown cache driver %q", cfg.Driver)
	}

	store, err := NewRedisRenderCache(ctx, RedisConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err == nil {
		logger.Info("Using Redis render cache",
			zap.String("host", cfg.Redis.Host),
			zap.Int("port", cfg.Redis.Port))
		return store, nil
	}

	if cfg.RequireRedis {
		return nil, fmt.Errorf("Redis required for render cache but unavailable: %w", err)
	}

	logger.Warn("Redis unavailable, falling back to in-memory render cache", zap.Error(err))
	return NewInMemoryRenderCache(cfg.MaxEntries), nil
}
