// Package cache provides a small bounded cache keyed by string,
// used to reuse per-variable copy plans across tiles and timesteps.
package cache

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache is a bounded LRU map. The zero value is not usable; create one
// with New.
type Cache[V any] struct {
	c *lru.Cache[string, V]
}

// New creates a cache holding at most size entries.
func New[V any](size int) (*Cache[V], error) {
	c, err := lru.New[string, V](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}
	return &Cache[V]{c: c}, nil
}

// Get returns the cached value for key, if present.
func (c *Cache[V]) Get(key string) (V, bool) {
	return c.c.Get(key)
}

// Add stores a value under key, evicting the least recently used entry
// if the cache is full.
func (c *Cache[V]) Add(key string, v V) {
	c.c.Add(key, v)
}

// Len returns the number of cached entries.
func (c *Cache[V]) Len() int {
	return c.c.Len()
}
