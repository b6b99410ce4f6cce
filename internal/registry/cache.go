package registry

import (
	"sync"
	"time"
)

// cacheEntry is one cached result with its absolute expiry.
type cacheEntry struct {
	value     Result
	expiresAt time.Time
}

// cache is the per-process result cache. Keys are independent, so a
// single RWMutex over the map is enough; there is no cross-key locking.
//
// Entries are never served past expiry and never written for failed
// executions; expiry always triggers a fresh computation, no
// stale-while-revalidate.
type cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

func newCache() *cache {
	return &cache{entries: make(map[string]cacheEntry)}
}

// get returns the live entry for key, expiring lazily.
func (c *cache) get(key string, now time.Time) (Result, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return Result{}, false
	}
	if now.After(entry.expiresAt) {
		c.mu.Lock()
		// Re-check: a fresh write may have raced the expiry.
		if current, still := c.entries[key]; still && now.After(current.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return Result{}, false
	}
	return entry.value, true
}

// put stores value under key for ttl from now.
func (c *cache) put(key string, value Result, ttl time.Duration, now time.Time) {
	c.mu.Lock()
	c.entries[key] = cacheEntry{value: value, expiresAt: now.Add(ttl)}
	c.mu.Unlock()
}

// len reports the number of entries, expired or not. For tests.
func (c *cache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
