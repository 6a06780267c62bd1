package didcache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/ParichayaHQ/credence/internal/did"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult(didString string) *did.DIDResolutionResult {
	return &did.DIDResolutionResult{
		DIDDocument: &did.DIDDocument{ID: didString},
		DIDDocumentMetadata: did.DIDDocumentMetadata{
			VersionId: "1-abc",
		},
	}
}

func TestInMemoryCacheGetSetExpiry(t *testing.T) {
	c := NewInMemoryCache(10)

	_, err := c.Get("did:example:1")
	require.Error(t, err)

	result := sampleResult("did:example:1")
	c.Set("did:example:1", result, 50*time.Millisecond)

	got, err := c.Get("did:example:1")
	require.NoError(t, err)
	assert.Equal(t, result, got)

	time.Sleep(60 * time.Millisecond)
	_, err = c.Get("did:example:1")
	require.Error(t, err)
	var cerr *CacheError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, ErrorExpired, cerr.Code)
}

func TestInMemoryCacheEvictsLRU(t *testing.T) {
	c := NewInMemoryCache(2)

	c.Set("did:example:1", sampleResult("did:example:1"), time.Minute)
	c.Set("did:example:2", sampleResult("did:example:2"), time.Minute)
	_, _ = c.Get("did:example:1")
	c.Set("did:example:3", sampleResult("did:example:3"), time.Minute)

	_, err := c.Get("did:example:2")
	require.Error(t, err, "least recently used entry should have been evicted")

	_, err = c.Get("did:example:1")
	require.NoError(t, err)
	_, err = c.Get("did:example:3")
	require.NoError(t, err)

	assert.Equal(t, int64(1), c.Stats().Evictions)
}

func TestFilesystemDocumentStoreRoundTrip(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "didcache_test_*")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	store, err := NewFilesystemDocumentStore(tmpDir)
	require.NoError(t, err)
	ctx := context.Background()

	result := sampleResult("did:web:example.com")
	require.NoError(t, store.Put(ctx, "did:web:example.com", result, time.Now().Add(time.Minute)))

	got, err := store.Get(ctx, "did:web:example.com")
	require.NoError(t, err)
	assert.Equal(t, result.DIDDocument.ID, got.DIDDocument.ID)

	require.NoError(t, store.Delete(ctx, "did:web:example.com"))
	_, err = store.Get(ctx, "did:web:example.com")
	require.Error(t, err)
}

func TestFilesystemDocumentStoreExpiry(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "didcache_test_*")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	store, err := NewFilesystemDocumentStore(tmpDir)
	require.NoError(t, err)
	ctx := context.Background()

	result := sampleResult("did:web:expired.example")
	require.NoError(t, store.Put(ctx, "did:web:expired.example", result, time.Now().Add(-time.Second)))

	_, err = store.Get(ctx, "did:web:expired.example")
	require.Error(t, err)
	var cerr *CacheError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, ErrorExpired, cerr.Code)
}

func TestCacheManagerFallsBackToDisk(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "didcache_test_*")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	disk, err := NewFilesystemDocumentStore(tmpDir)
	require.NoError(t, err)
	mgr := NewCacheManager(NewInMemoryCache(10), disk)
	ctx := context.Background()

	result := sampleResult("did:webvh:scid:example.com")
	require.NoError(t, mgr.Set(ctx, "did:webvh:scid:example.com", result))

	// Fresh manager sharing the same disk tier, empty memory tier.
	mgr2 := NewCacheManager(NewInMemoryCache(10), disk)
	got, err := mgr2.Get(ctx, "did:webvh:scid:example.com")
	require.NoError(t, err)
	assert.Equal(t, result.DIDDocument.ID, got.DIDDocument.ID)

	require.NoError(t, mgr2.Invalidate(ctx, "did:webvh:scid:example.com"))
	_, err = mgr2.Get(ctx, "did:webvh:scid:example.com")
	require.Error(t, err)
}
