package cache

import (
	"context"
	"sync"
	"time"
)

const defaultMaxEntries = 256

// entry represents a stored value with expiration
type entry struct {
	value     []byte
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// InMemoryRenderCache implements RenderCache using an in-memory map.
// This is suitable for single-instance deployments and testing.
type InMemoryRenderCache struct {
	mu         sync.RWMutex
	entries    map[string]entry
	maxEntries int
	stopChan   chan struct{}
	wg         sync.WaitGroup
	closeOnce  sync.Once
}

// NewInMemoryRenderCache creates a new in-memory cache holding at most
// maxEntries values. It starts a background goroutine to clean up expired entries.
func NewInMemoryRenderCache(maxEntries int) *InMemoryRenderCache {
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}
	c := &InMemoryRenderCache{
		entries:    make(map[string]entry),
		maxEntries: maxEntries,
		stopChan:   make(chan struct{}),
	}

	c.wg.Add(1)
	go c.cleanupLoop()

	return c
}

// Get returns a copy of the value stored under key
func (c *InMemoryRenderCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, ErrEmptyKey
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, exists := c.entries[key]
	if !exists || e.expired(time.Now()) {
		return nil, false, nil
	}
	return append([]byte(nil), e.value...), true, nil
}

// Set stores a copy of value. When the cache is full the entry closest to
// expiry is evicted first.
func (c *InMemoryRenderCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return ErrEmptyKey
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.evictLocked(now)
	}

	e := entry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expiresAt = now.Add(ttl)
	}
	c.entries[key] = e
	return nil
}

// evictLocked drops expired entries, or the one expiring first when none has
// expired. Entries without expiry go last.
func (c *InMemoryRenderCache) evictLocked(now time.Time) {
	victim := ""
	var victimExpiry time.Time
	for key, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, key)
			continue
		}
		if victim == "" || earlier(e.expiresAt, victimExpiry) {
			victim, victimExpiry = key, e.expiresAt
		}
	}
	if len(c.entries) >= c.maxEntries && victim != "" {
		delete(c.entries, victim)
	}
}

// earlier orders expiry times with the zero time (no expiry) last
func earlier(a, b time.Time) bool {
	switch {
	case a.IsZero():
		return false
	case b.IsZero():
		return true
	}
	return a.Before(b)
}

// Close stops the cleanup goroutine and releases resources.
// Safe to call multiple times.
func (c *InMemoryRenderCache) Close() error {
	c.closeOnce.Do(func() {
		close(c.stopChan)
		c.wg.Wait()
	})
	return nil
}

// cleanupLoop periodically removes expired entries
func (c *InMemoryRenderCache) cleanupLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopChan:
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

// cleanup removes expired entries from the cache
func (c *InMemoryRenderCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, key)
		}
	}
}

// Size returns the number of entries in the cache (for testing/monitoring)
func (c *InMemoryRenderCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

var _ RenderCache = (*InMemoryRenderCache)(nil)
