// Package cache provides a small in-memory get-or-compute cache with
// per-entry expiry, used to memoize expensive aggregate computations.
package cache

import (
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache memoizes computed values per key until their TTL elapses.
//
// Reads and writes of a single entry are atomic and entries for different
// keys never block each other. Concurrent misses for the same key are
// coalesced into one in-flight computation; every waiting caller receives
// the same value or the same error. A failed computation stores nothing, so
// an error can never poison the cache.
type Cache[V any] struct {
	mu      sync.RWMutex
	entries map[string]entry[V]
	group   singleflight.Group
	now     func() time.Time
}

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// New creates an empty cache using the wall clock.
func New[V any]() *Cache[V] {
	return NewWithClock[V](time.Now)
}

// NewWithClock creates an empty cache with an injected clock, for
// deterministic expiry in tests.
func NewWithClock[V any](now func() time.Time) *Cache[V] {
	return &Cache[V]{
		entries: make(map[string]entry[V]),
		now:     now,
	}
}

// GetOrCompute returns the cached value for key if an unexpired entry
// exists, otherwise runs compute, stores the result for ttl, and returns
// it. If compute fails the error propagates unchanged and nothing is
// cached.
func (c *Cache[V]) GetOrCompute(key string, ttl time.Duration, compute func() (V, error)) (V, error) {
	if value, ok := c.lookup(key); ok {
		return value, nil
	}

	result, err, _ := c.group.Do(key, func() (interface{}, error) {
		// A coalesced caller may arrive just after the winner stored the
		// entry; re-check before computing again.
		if value, ok := c.lookup(key); ok {
			return value, nil
		}
		value, err := compute()
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[key] = entry[V]{value: value, expiresAt: c.now().Add(ttl)}
		c.mu.Unlock()
		return value, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return result.(V), nil
}

func (c *Cache[V]) lookup(key string) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok || c.now().After(e.expiresAt) {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Invalidate removes one entry; used when the underlying data changes.
func (c *Cache[V]) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// InvalidateAll removes every entry.
func (c *Cache[V]) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry[V])
}

// Len returns the number of stored entries, expired or not.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// BuildKey derives the canonical cache key for an endpoint and its
// parameters: the endpoint name followed by the sorted key=value pairs.
// Parameter order never affects the key, so differently ordered but equal
// parameter sets collide to the same entry.
func BuildKey(endpoint string, params map[string]string) string {
	if len(params) == 0 {
		return endpoint
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(endpoint)
	for i, k := range keys {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(params[k])
	}
	return b.String()
}
