package geo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTLCache(t *testing.T) {
	t.Run("hit within ttl", func(t *testing.T) {
		cache := newTTLCache(8, time.Minute)
		cache.set("k", "v")

		got, ok := cache.get("k")
		require.True(t, ok)
		assert.Equal(t, "v", got)
	})

	t.Run("expired entry misses and is evicted", func(t *testing.T) {
		cache := newTTLCache(8, time.Nanosecond)
		cache.set("k", "v")
		time.Sleep(time.Millisecond)

		_, ok := cache.get("k")
		assert.False(t, ok)
		assert.Zero(t, cache.cache.Len())
	})

	t.Run("unknown key misses", func(t *testing.T) {
		cache := newTTLCache(8, time.Minute)
		_, ok := cache.get("missing")
		assert.False(t, ok)
	})

	t.Run("lru bound evicts oldest", func(t *testing.T) {
		cache := newTTLCache(2, time.Minute)
		cache.set("a", 1)
		cache.set("b", 2)
		cache.set("c", 3)

		_, ok := cache.get("a")
		assert.False(t, ok)
	})
}
