// Package registry provides a keyed cache with at-most-one materialization
// per key, generalizing the lazy connection-pool pattern the retrieved
// mini-rpc client used to hand out one transport per address: check, create
// if absent, and keep only the first result stored for a key.
package registry

import "sync"

// Cache is a concurrency-safe map from string keys to values of type V,
// where at most one value is ever stored per key, and every caller gets that
// stored value, even under concurrent GetOrCreate calls racing on the same
// key.
type Cache[V any] struct {
	mu      sync.RWMutex
	entries map[string]V
}

// New returns an empty Cache.
func New[V any]() *Cache[V] {
	return &Cache[V]{entries: make(map[string]V)}
}

// Get returns the value for key and whether it was present.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

// GetOrCreate returns the cached value for key, or calls create and caches
// its result if no value is cached yet. If two goroutines race on the same
// absent key, create may run more than once, but only one result is kept.
func (c *Cache[V]) GetOrCreate(key string, create func() (V, error)) (V, error) {
	c.mu.RLock()
	v, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return v, nil
	}

	v, err := create()
	if err != nil {
		var zero V
		return zero, err
	}

	c.mu.Lock()
	if existing, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return existing, nil
	}
	c.entries[key] = v
	c.mu.Unlock()
	return v, nil
}

// Set installs v for key unconditionally, overwriting any previous entry.
// Used only during bootstrap registration, before concurrent lookups begin.
func (c *Cache[V]) Set(key string, v V) {
	c.mu.Lock()
	c.entries[key] = v
	c.mu.Unlock()
}

// Keys returns a snapshot of the cache's current keys.
func (c *Cache[V]) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	return keys
}

// Len reports the number of cached entries.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
