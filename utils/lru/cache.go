// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package lru

import "github.com/luxfi/turbine/utils/linked"

// Cache is a bounded cache that evicts the least recently used entry once
// its size limit is reached. Both Get and Put touch the entry.
//
// Cache is not safe for concurrent use; callers hold their own lock. The
// retransmit filter relies on that: it must clear the cache and rekey its
// hasher inside one critical section.
type Cache[K comparable, V any] struct {
	size     int
	elements *linked.Hashmap[K, V]
}

// NewCache returns a cache holding at most size entries. size must be
// positive.
func NewCache[K comparable, V any](size int) *Cache[K, V] {
	if size <= 0 {
		panic("lru cache size must be positive")
	}
	return &Cache[K, V]{
		size:     size,
		elements: linked.NewHashmap[K, V](),
	}
}

// Put inserts or updates the value for key and marks it most recently used,
// evicting the oldest entry if the cache is over capacity.
func (c *Cache[K, V]) Put(key K, value V) {
	if c.elements.Len() >= c.size {
		if _, ok := c.elements.Get(key); !ok {
			oldest, _, _ := c.elements.Oldest()
			c.elements.Delete(oldest)
		}
	}
	c.elements.Put(key, value)
	c.elements.MoveToBack(key)
}

// Get returns the value for key and marks it most recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	value, ok := c.elements.Get(key)
	if ok {
		c.elements.MoveToBack(key)
	}
	return value, ok
}

// Evict removes key from the cache.
func (c *Cache[K, V]) Evict(key K) {
	c.elements.Delete(key)
}

// Len returns the number of cached entries.
func (c *Cache[K, V]) Len() int {
	return c.elements.Len()
}

// Clear drops every entry.
func (c *Cache[K, V]) Clear() {
	c.elements.Clear()
}
