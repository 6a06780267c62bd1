package didcache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ParichayaHQ/credence/internal/canon"
	"github.com/ParichayaHQ/credence/internal/did"
)

// FSEntry is the on-disk record for one cached resolution.
type FSEntry struct {
	DID       string                   `json:"did"`
	Result    *did.DIDResolutionResult `json:"result"`
	StoredAt  time.Time                `json:"storedAt"`
	ExpiresAt time.Time                `json:"expiresAt"`
}

// FilesystemDocumentStore persists resolved DID documents as one JSON
// file per DID, addressed by the multihash of the DID string — the same
// content-addressed directory layout (two-level hash-prefix fan-out) the
// teacher's FilesystemBlobStore uses for CIDs, adapted here to DID
// strings instead of blob CIDs.
type FilesystemDocumentStore struct {
	basePath string
	mu       sync.RWMutex
}

// NewFilesystemDocumentStore opens (creating if necessary) a document
// store rooted at basePath.
func NewFilesystemDocumentStore(basePath string) (*FilesystemDocumentStore, error) {
	if basePath == "" {
		return nil, newCacheError(ErrorInvalidConfig, "basePath is required", nil)
	}
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, newCacheError(ErrorStorage, "mkdir", err)
	}
	return &FilesystemDocumentStore{basePath: basePath}, nil
}

func (s *FilesystemDocumentStore) pathFor(didString string) (string, error) {
	key, err := canon.Hash([]byte(didString))
	if err != nil {
		return "", err
	}
	if len(key) < 4 {
		return filepath.Join(s.basePath, "short", key+".json"), nil
	}
	return filepath.Join(s.basePath, key[:1], key[1:2], key+".json"), nil
}

// Put writes result for didString to disk, expiring at expiresAt.
func (s *FilesystemDocumentStore) Put(ctx context.Context, didString string, result *did.DIDResolutionResult, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.pathFor(didString)
	if err != nil {
		return newCacheError(ErrorStorage, "hash did", err)
	}

	entry := FSEntry{DID: didString, Result: result, StoredAt: time.Now().UTC(), ExpiresAt: expiresAt}
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return newCacheError(ErrorStorage, "marshal entry", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return newCacheError(ErrorStorage, "mkdir", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return newCacheError(ErrorStorage, "write file", err)
	}
	return nil
}

// Get reads the cached entry for didString, returning ErrorNotInCache if
// absent and ErrorExpired (after removing the stale file) if past its
// expiry.
func (s *FilesystemDocumentStore) Get(ctx context.Context, didString string) (*did.DIDResolutionResult, error) {
	s.mu.RLock()
	path, err := s.pathFor(didString)
	s.mu.RUnlock()
	if err != nil {
		return nil, newCacheError(ErrorStorage, "hash did", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, newCacheError(ErrorNotInCache, didString, nil)
		}
		return nil, newCacheError(ErrorStorage, "read file", err)
	}

	var entry FSEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, newCacheError(ErrorStorage, "unmarshal entry", err)
	}

	if time.Now().After(entry.ExpiresAt) {
		s.mu.Lock()
		_ = os.Remove(path)
		s.mu.Unlock()
		return nil, newCacheError(ErrorExpired, didString, nil)
	}

	return entry.Result, nil
}

// Delete removes the cached entry for didString, if present.
func (s *FilesystemDocumentStore) Delete(ctx context.Context, didString string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.pathFor(didString)
	if err != nil {
		return newCacheError(ErrorStorage, "hash did", err)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return newCacheError(ErrorStorage, "remove file", err)
	}
	return nil
}
