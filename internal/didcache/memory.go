package didcache

import (
	"sync"
	"time"

	"github.com/ParichayaHQ/credence/internal/did"
)

// CacheStats mirrors the hit/miss accounting the teacher's status-list
// cache keeps, generalized to resolution results.
type CacheStats struct {
	Hits     int64
	Misses   int64
	Evictions int64
	Size     int
	MaxSize  int
	HitRatio float64
}

type memoryEntry struct {
	result   *did.DIDResolutionResult
	expiry   time.Time
	lastUsed time.Time
}

// InMemoryCache is an LRU, TTL-bounded cache of DID resolution results,
// keyed by the resolved DID string. Grounded on the same Get/Set/evict
// shape as the teacher's InMemoryStatusListCache, generalized from
// status lists to resolution results.
type InMemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*memoryEntry
	maxSize int
	stats   CacheStats
}

// NewInMemoryCache creates a cache holding at most maxSize entries,
// evicting the least-recently-used entry once full. maxSize <= 0
// defaults to 256.
func NewInMemoryCache(maxSize int) *InMemoryCache {
	if maxSize <= 0 {
		maxSize = 256
	}
	return &InMemoryCache{
		entries: make(map[string]*memoryEntry),
		maxSize: maxSize,
		stats:   CacheStats{MaxSize: maxSize},
	}
}

// Get returns the cached resolution result for didString, or a
// *CacheError (ErrorNotInCache / ErrorExpired) if unavailable.
func (c *InMemoryCache) Get(didString string) (*did.DIDResolutionResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[didString]
	if !ok {
		c.stats.Misses++
		c.updateHitRatio()
		return nil, newCacheError(ErrorNotInCache, didString, nil)
	}

	if time.Now().After(entry.expiry) {
		delete(c.entries, didString)
		c.stats.Size--
		c.stats.Misses++
		c.updateHitRatio()
		return nil, newCacheError(ErrorExpired, didString, nil)
	}

	entry.lastUsed = time.Now()
	c.stats.Hits++
	c.updateHitRatio()
	return entry.result, nil
}

// Set stores result under didString with the given ttl, evicting the
// least-recently-used entry first if the cache is full.
func (c *InMemoryCache) Set(didString string, result *did.DIDResolutionResult, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[didString]; !exists && len(c.entries) >= c.maxSize {
		c.evictLRU()
	}

	if _, exists := c.entries[didString]; !exists {
		c.stats.Size++
	}

	c.entries[didString] = &memoryEntry{
		result:   result,
		expiry:   time.Now().Add(ttl),
		lastUsed: time.Now(),
	}
}

// Invalidate removes didString from the cache, if present.
func (c *InMemoryCache) Invalidate(didString string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[didString]; ok {
		delete(c.entries, didString)
		c.stats.Size--
	}
}

// Stats returns a snapshot of cache hit/miss/eviction counters.
func (c *InMemoryCache) Stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

func (c *InMemoryCache) evictLRU() {
	var oldestKey string
	var oldestTime time.Time
	first := true
	for k, e := range c.entries {
		if first || e.lastUsed.Before(oldestTime) {
			oldestKey = k
			oldestTime = e.lastUsed
			first = false
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
		c.stats.Size--
		c.stats.Evictions++
	}
}

func (c *InMemoryCache) updateHitRatio() {
	total := c.stats.Hits + c.stats.Misses
	if total == 0 {
		c.stats.HitRatio = 0
		return
	}
	c.stats.HitRatio = float64(c.stats.Hits) / float64(total)
}
