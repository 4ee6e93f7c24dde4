package services

import (
	"time"

	"github.com/coocood/freecache"
)

// LookupCache holds encoded upstream responses keyed by lookup id.
type LookupCache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
}

type freeCache struct {
	cache *freecache.Cache
	ttl   int
}

// NewLookupCache returns a no-op cache when sizeMB or ttl is not positive.
func NewLookupCache(sizeMB int, ttl time.Duration) LookupCache {
	if sizeMB <= 0 || ttl <= 0 {
		return noopCache{}
	}
	return &freeCache{
		cache: freecache.NewCache(sizeMB * 1024 * 1024),
		ttl:   max(int(ttl.Seconds()), 1),
	}
}

func (c *freeCache) Get(key string) ([]byte, bool) {
	val, err := c.cache.Get([]byte(key))
	if err != nil {
		return nil, false
	}
	return val, true
}

func (c *freeCache) Set(key string, value []byte) {
	_ = c.cache.Set([]byte(key), value, c.ttl)
}

type noopCache struct{}

func (noopCache) Get(string) ([]byte, bool) { return nil, false }
func (noopCache) Set(string, []byte)        {}
