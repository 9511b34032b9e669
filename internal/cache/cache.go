package cache

import (
	"sync"
	"time"
)

// entry is an immutable verdict: which identity owned the token at
// resolvedAt. Re-resolution replaces the entry, it never mutates it.
type entry struct {
	identity   string
	resolvedAt time.Time
}

// TokenCache memoizes token→identity resolutions with a TTL and a hard
// capacity bound. Expiry is lazy: liveness is checked on read, there is no
// background sweep. Only successful resolutions are ever stored.
type TokenCache struct {
	mu      sync.RWMutex
	entries map[string]entry

	ttl      time.Duration
	capacity int

	// now is swappable for tests
	now func() time.Time
}

func NewTokenCache(ttl time.Duration, capacity int) *TokenCache {
	return &TokenCache{
		entries:  make(map[string]entry),
		ttl:      ttl,
		capacity: capacity,
		now:      time.Now,
	}
}

// Get returns the cached identity for the token and when it was resolved.
// An expired entry reports a miss; with ttl<=0 every lookup is a miss,
// effectively forcing re-resolution on every attempt.
func (c *TokenCache) Get(token string) (string, time.Time, bool) {
	c.mu.RLock()
	e, ok := c.entries[token]
	c.mu.RUnlock()

	if !ok || !c.live(e, c.now()) {
		return "", time.Time{}, false
	}
	return e.identity, e.resolvedAt, true
}

// Put stores a freshly resolved identity for the token. When the cache is
// at capacity it first drops every expired entry; if that is not enough it
// clears the whole cache. Bulk clear over LRU keeps the worst case bounded
// and the implementation simple, at the cost of a burst of misses.
func (c *TokenCache) Put(token, identity string) {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	// capacity<=0 disables caching: nothing may ever be stored
	if c.capacity <= 0 {
		if len(c.entries) > 0 {
			c.entries = make(map[string]entry)
		}
		return
	}

	if len(c.entries) >= c.capacity {
		for k, e := range c.entries {
			if !c.live(e, now) {
				delete(c.entries, k)
			}
		}
		if len(c.entries) >= c.capacity {
			c.entries = make(map[string]entry)
		}
	}

	c.entries[token] = entry{identity: identity, resolvedAt: now}
}

// Len returns the number of stored entries, live or not.
func (c *TokenCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// TTL returns the configured time-to-live.
func (c *TokenCache) TTL() time.Duration {
	return c.ttl
}

// Capacity returns the configured maximum number of entries.
func (c *TokenCache) Capacity() int {
	return c.capacity
}

func (c *TokenCache) live(e entry, now time.Time) bool {
	return now.Sub(e.resolvedAt) < c.ttl
}
