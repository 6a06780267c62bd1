package webvh

import (
	"encoding/json"
	"fmt"

	"github.com/ParichayaHQ/credence/internal/canon"
)

// toGenericMap round-trips entry through JSON to a generic map so callers
// can add or omit fields (like a forced-present empty proof array) before
// canonicalizing — the struct's `omitempty` tags would otherwise drop a
// present-but-empty proof field.
func toGenericMap(entry LogEntry) (map[string]interface{}, error) {
	raw, err := json.Marshal(entry)
	if err != nil {
		return nil, fmt.Errorf("webvh: marshal entry: %w", err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("webvh: unmarshal entry: %w", err)
	}
	return m, nil
}

// entryHash computes hash(entry-without-proof-and-versionId): the
// entryHash embedded in versionId. The proof field is entirely absent,
// not merely empty, and versionId is always absent too — the hash is
// computed before versionId exists (it names this very hash), so
// resolve.go's replay must strip it back out of an already-assembled
// entry to reproduce the same digest.
func entryHash(entry LogEntry) (string, error) {
	entry.Proof = nil
	m, err := toGenericMap(entry)
	if err != nil {
		return "", err
	}
	delete(m, "proof")
	delete(m, "versionId")

	b, err := canon.Canonicalize(m)
	if err != nil {
		return "", err
	}
	return canon.Hash(b)
}

// scidHash computes the SCID derivation hash: the canonical genesis
// entry with {SCID} substituted everywhere, hashed with an explicitly
// present (but empty) proof field and no versionId field (the genesis
// entry has no versionId yet at SCID-derivation time).
func scidHash(entry LogEntry) (string, error) {
	entry.Proof = nil
	m, err := toGenericMap(entry)
	if err != nil {
		return "", err
	}
	m["proof"] = []interface{}{}
	delete(m, "versionId")

	b, err := canon.Canonicalize(m)
	if err != nil {
		return "", err
	}
	return canon.Hash(b)
}

// keyCommitmentHash hashes a key's multibase string bytes directly (not
// the raw key bytes), per the pre-rotation commitment requirement.
func keyCommitmentHash(multibaseKey string) (string, error) {
	return canon.Hash([]byte(multibaseKey))
}
