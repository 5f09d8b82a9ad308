// Package cache provides time-bounded response memoization for responders.
//
// Entries are keyed by the exact prompt string: paraphrases are cache misses
// by design, so a cached answer is only ever replayed for the identical
// question. Expired entries are treated as absent on lookup and overwritten
// in place; there is no background eviction.
package cache

import (
	"sync"
	"time"
)

// DefaultTTL is how long a cached response stays valid.
const DefaultTTL = time.Hour

type entry struct {
	response string
	storedAt time.Time
}

// Cache is a TTL-bounded prompt-response store. The zero value is not
// usable; construct with New. Safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

// New creates a cache with the given TTL. A non-positive ttl falls back to
// DefaultTTL.
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached response for prompt if present and unexpired.
func (c *Cache) Get(prompt string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[prompt]
	if !ok {
		return "", false
	}
	if c.now().Sub(e.storedAt) >= c.ttl {
		return "", false
	}
	return e.response, true
}

// Put stores a response for prompt, restarting its TTL.
func (c *Cache) Put(prompt, response string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[prompt] = entry{response: response, storedAt: c.now()}
}

// Len returns the number of stored entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// SetClock overrides the cache's time source. Tests use this to step the
// clock past the TTL without sleeping.
func (c *Cache) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}
