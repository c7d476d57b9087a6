package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rbastos/kdpipe/internal/model"
)

// NoExpiration keeps entries for the lifetime of the process
const NoExpiration = gocache.NoExpiration

// MemoryCache implements in-memory classification caching
type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache creates a new memory cache
func NewMemoryCache(defaultTTL time.Duration, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get retrieves a classification from the cache
func (c *MemoryCache) Get(key string) (model.ClassificationResult, bool) {
	if val, found := c.cache.Get(key); found {
		return val.(model.ClassificationResult), true
	}
	return model.ClassificationResult{}, false
}

// Set stores a classification with the default TTL
func (c *MemoryCache) Set(key string, result model.ClassificationResult) {
	c.cache.Set(key, result, gocache.DefaultExpiration)
}
