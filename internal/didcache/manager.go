package didcache

import (
	"context"
	"time"

	"github.com/ParichayaHQ/credence/internal/did"
	"go.uber.org/zap"
)

// DefaultTTL is used when a resolution result carries no explicit
// nextUpdate metadata (e.g. did:key, whose documents never change).
const DefaultTTL = 5 * time.Minute

// CacheManager fronts a durable FilesystemDocumentStore with an
// InMemoryCache, the same two-tier shape the teacher's storage layer
// uses for blobs (in-memory index over on-disk content), applied here to
// DID resolution results instead.
type CacheManager struct {
	memory *InMemoryCache
	disk   *FilesystemDocumentStore
	log    *zap.Logger
}

// NewCacheManager builds a CacheManager. disk may be nil to run purely
// in-memory (e.g. in tests).
func NewCacheManager(memory *InMemoryCache, disk *FilesystemDocumentStore) *CacheManager {
	return &CacheManager{memory: memory, disk: disk, log: zap.NewNop()}
}

// SetLogger attaches a structured logger the manager uses to report
// cache hits, misses, and fallbacks at Debug level. Passing nil restores
// the no-op logger.
func (m *CacheManager) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	m.log = logger
}

// Get returns a cached resolution result for didString, checking memory
// first and falling back to disk (repopulating memory on a disk hit).
func (m *CacheManager) Get(ctx context.Context, didString string) (*did.DIDResolutionResult, error) {
	if result, err := m.memory.Get(didString); err == nil {
		m.log.Debug("cache hit", zap.String("did", didString), zap.String("tier", "memory"))
		return result, nil
	}

	if m.disk == nil {
		m.log.Debug("cache miss", zap.String("did", didString))
		return nil, newCacheError(ErrorNotInCache, didString, nil)
	}

	result, err := m.disk.Get(ctx, didString)
	if err != nil {
		m.log.Debug("cache miss", zap.String("did", didString), zap.Error(err))
		return nil, err
	}

	m.log.Debug("cache hit", zap.String("did", didString), zap.String("tier", "disk"))
	m.memory.Set(didString, result, ttlFor(result))
	return result, nil
}

// Set stores result in both tiers. ttlFor derives the cache lifetime
// from the result's DIDDocumentMetadata.NextUpdate when present.
func (m *CacheManager) Set(ctx context.Context, didString string, result *did.DIDResolutionResult) error {
	ttl := ttlFor(result)
	m.memory.Set(didString, result, ttl)
	m.log.Debug("cache set", zap.String("did", didString), zap.Duration("ttl", ttl))

	if m.disk == nil {
		return nil
	}
	return m.disk.Put(ctx, didString, result, time.Now().Add(ttl))
}

// Invalidate removes didString from both tiers.
func (m *CacheManager) Invalidate(ctx context.Context, didString string) error {
	m.memory.Invalidate(didString)
	m.log.Debug("cache invalidate", zap.String("did", didString))
	if m.disk == nil {
		return nil
	}
	return m.disk.Delete(ctx, didString)
}

func ttlFor(result *did.DIDResolutionResult) time.Duration {
	if result == nil {
		return DefaultTTL
	}
	next := result.DIDDocumentMetadata.NextUpdate
	if next == nil {
		return DefaultTTL
	}
	ttl := time.Until(*next)
	if ttl <= 0 {
		return 0
	}
	return ttl
}
