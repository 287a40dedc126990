// Package cache stores rendered delivery notes so identical requests skip the
// PDF engine. Both stores are best-effort: callers treat errors as misses.
package cache

import (
	"context"
	"errors"
	"time"
)

// RenderCache stores rendered PDFs under a content key
type RenderCache interface {
	// Get returns the cached value and whether it was found
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value for ttl; a zero ttl never expires
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Close releases the store
	Close() error
}

// ErrEmptyKey is returned when a cache key is empty
var ErrEmptyKey = errors.New("cache: key cannot be empty")
