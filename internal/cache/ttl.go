// Package cache provides the in-process caches used by the vocabulary
// services. Entries expire lazily: staleness is checked on read and there is
// no background sweep.
package cache

import (
	"sync"
	"time"
)

type item[V any] struct {
	value     V
	timestamp time.Time
	ttl       time.Duration
}

// TTL is a mutex-guarded map whose entries expire after a per-entry duration.
type TTL[K comparable, V any] struct {
	mu    sync.Mutex
	items map[K]item[V]
	now   func() time.Time
}

// NewTTL creates an empty TTL map using the wall clock.
func NewTTL[K comparable, V any]() *TTL[K, V] {
	return NewTTLWithClock[K, V](time.Now)
}

// NewTTLWithClock creates an empty TTL map with a custom clock (for tests).
func NewTTLWithClock[K comparable, V any](now func() time.Time) *TTL[K, V] {
	return &TTL[K, V]{
		items: make(map[K]item[V]),
		now:   now,
	}
}

// Get returns the value for key if present and not expired.
// Expired entries are removed.
func (c *TTL[K, V]) Get(key K) (V, bool) {
	v, _, ok := c.GetWithTimestamp(key)
	return v, ok
}

// GetWithTimestamp is Get that also reports when the entry was stored.
func (c *TTL[K, V]) GetWithTimestamp(key K) (V, time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	it, ok := c.items[key]
	if !ok {
		return zero, time.Time{}, false
	}
	if c.now().Sub(it.timestamp) > it.ttl {
		delete(c.items, key)
		return zero, time.Time{}, false
	}
	return it.value, it.timestamp, true
}

// Set stores value under key for ttl.
func (c *TTL[K, V]) Set(key K, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = item[V]{value: value, timestamp: c.now(), ttl: ttl}
}

// Delete removes the given keys.
func (c *TTL[K, V]) Delete(keys ...K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, k := range keys {
		delete(c.items, k)
	}
}

// DeleteFunc removes every key for which match returns true.
func (c *TTL[K, V]) DeleteFunc(match func(K) bool) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for k := range c.items {
		if match(k) {
			delete(c.items, k)
			removed++
		}
	}
	return removed
}
