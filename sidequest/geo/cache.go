package geo

import (
	"time"

	lru "github.com/hashicorp/golang-lru"
)

// ttlCache wraps an LRU cache with per-entry timestamps. Entries past the
// expiry are treated as misses; the LRU bound keeps memory flat.
type ttlCache struct {
	cache  *lru.Cache
	expiry time.Duration
}

type cachedEntry struct {
	value     interface{}
	timestamp time.Time
}

func newTTLCache(size int, expiry time.Duration) *ttlCache {
	cache, _ := lru.New(size)
	return &ttlCache{cache: cache, expiry: expiry}
}

func (c *ttlCache) get(key string) (interface{}, bool) {
	raw, ok := c.cache.Get(key)
	if !ok {
		return nil, false
	}

	entry := raw.(cachedEntry)
	if time.Since(entry.timestamp) > c.expiry {
		c.cache.Remove(key)
		return nil, false
	}

	return entry.value, true
}

func (c *ttlCache) set(key string, value interface{}) {
	c.cache.Add(key, cachedEntry{value: value, timestamp: time.Now()})
}
