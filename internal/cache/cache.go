package cache

import "sync"

// Cache stores computed values keyed by string. Used to memoize per-origin
// lookups (robots.txt) across pages of one audit run.
type Cache[T any] struct {
	mu    sync.Mutex
	items map[string]T
}

// New creates an empty Cache.
func New[T any]() *Cache[T] {
	return &Cache[T]{
		items: make(map[string]T),
	}
}

// Get returns a cached value and whether it exists.
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	value, ok := c.items[key]

	return value, ok
}

// Set stores a value in the cache.
func (c *Cache[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = value
}

// GetOrCompute returns the cached value for key, computing and storing it on
// first use. The compute function runs outside the lock; concurrent callers
// for a missing key may compute more than once, last write wins.
func (c *Cache[T]) GetOrCompute(key string, compute func() T) T {
	if value, ok := c.Get(key); ok {
		return value
	}

	value := compute()
	c.Set(key, value)

	return value
}
