// Package cache provides a small in-memory TTL cache used to memoize
// rendered output.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/cuh4/codefield/internal/log"
)

const (
	DefaultExpiration      = 10 * time.Minute
	DefaultCleanupInterval = 30 * time.Minute
)

// Memory is a typed wrapper around go-cache. The useCase tag only
// serves log attribution when several caches coexist.
type Memory[V any] struct {
	useCase string
	cache   *gocache.Cache
}

// NewMemory initializes an in-memory cache.
func NewMemory[V any](useCase string, defaultExpiration, cleanupInterval time.Duration) *Memory[V] {
	return &Memory[V]{
		useCase: useCase,
		cache:   gocache.New(defaultExpiration, cleanupInterval),
	}
}

// Get retrieves an item from the cache by its key.
func (c *Memory[V]) Get(key string) (V, bool) {
	var zero V

	value, found := c.cache.Get(key)
	if !found {
		return zero, false
	}

	v, ok := value.(V)
	if !ok {
		log.Error(log.CatCache, "wrong type assertion when getting value", "useCase", c.useCase, "key", key)
		return zero, false
	}

	log.Debug(log.CatCache, "cache hit", "useCase", c.useCase, "key", key)
	return v, true
}

// Set stores a value with the given TTL.
func (c *Memory[V]) Set(key string, value V, ttl time.Duration) {
	c.cache.Set(key, value, ttl)
}

// GetOrFill returns the cached value for key, computing and storing it
// via fill on a miss. Fill errors are returned without caching.
func (c *Memory[V]) GetOrFill(key string, ttl time.Duration, fill func() (V, error)) (V, error) {
	if value, ok := c.Get(key); ok {
		return value, nil
	}

	value, err := fill()
	if err != nil {
		return value, err
	}

	c.Set(key, value, ttl)
	return value, nil
}

// Delete removes values by key.
func (c *Memory[V]) Delete(keys ...string) {
	for _, key := range keys {
		c.cache.Delete(key)
	}
}

// Flush drops every cached value.
func (c *Memory[V]) Flush() {
	c.cache.Flush()
}

// ItemCount returns the number of cached items, expired ones included.
func (c *Memory[V]) ItemCount() int {
	return c.cache.ItemCount()
}
