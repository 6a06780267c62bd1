// Package canon implements JSON canonicalization and content hashing for
// did:webvh log entries. Canonical bytes are what gets hashed for SCID
// derivation and entryHash chaining, and what gets signed for Data
// Integrity proofs, so determinism here is load-bearing: two semantically
// equal documents must canonicalize to byte-identical output.
package canon

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/multiformats/go-multibase"
	"github.com/multiformats/go-multihash"
)

// MaxDocumentSize bounds a single log entry or DID document, mirroring the
// teacher's event size ceiling.
const MaxDocumentSize = 256 * 1024

// Canonicalize produces the JSON Canonicalization Scheme (RFC 8785)
// rendering of data: object keys sorted, no insignificant whitespace, and
// every field preserved regardless of zero-ness. Unlike a generic "strip
// empty fields" canonicalizer, JCS canonicalizes the document exactly as
// given — omitting a field here would change the hash of every entry that
// carries it.
func Canonicalize(data interface{}) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("canon: initial marshal: %w", err)
	}
	if len(raw) > MaxDocumentSize {
		return nil, ErrTooLarge
	}

	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("canon: unmarshal: %w", err)
	}

	canonical := canonicalizeValue(generic)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "")
	if err := enc.Encode(canonical); err != nil {
		return nil, fmt.Errorf("canon: canonical marshal: %w", err)
	}

	result := buf.Bytes()
	if len(result) > 0 && result[len(result)-1] == '\n' {
		result = result[:len(result)-1]
	}
	return result, nil
}

func canonicalizeValue(value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		return canonicalizeObject(v)
	case []interface{}:
		return canonicalizeArray(v)
	default:
		return v
	}
}

func canonicalizeObject(obj map[string]interface{}) map[string]interface{} {
	if obj == nil {
		return map[string]interface{}{}
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := make(map[string]interface{}, len(obj))
	for _, k := range keys {
		result[k] = canonicalizeValue(obj[k])
	}
	return result
}

func canonicalizeArray(arr []interface{}) []interface{} {
	if arr == nil {
		return []interface{}{}
	}
	result := make([]interface{}, len(arr))
	for i, v := range arr {
		result[i] = canonicalizeValue(v)
	}
	return result
}

// Equal reports whether a and b canonicalize to the same bytes, usable as
// the idempotence check for the "canonicalization is deterministic"
// testable property.
func Equal(a, b interface{}) (bool, error) {
	ca, err := Canonicalize(a)
	if err != nil {
		return false, err
	}
	cb, err := Canonicalize(b)
	if err != nil {
		return false, err
	}
	return bytes.Equal(ca, cb), nil
}

// Hash returns the multibase-encoded (base58-btc, 'z'-prefixed) SHA-256
// multihash of data, the digest form used for entryHash, SCID derivation,
// and nextKeyHashes commitments.
func Hash(data []byte) (string, error) {
	mh, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return "", fmt.Errorf("canon: multihash sum: %w", err)
	}
	encoded, err := multibase.Encode(multibase.Base58BTC, mh)
	if err != nil {
		return "", fmt.Errorf("canon: multibase encode: %w", err)
	}
	return encoded, nil
}

// HashJSON canonicalizes data and returns its multihash digest in one step.
func HashJSON(data interface{}) (string, error) {
	b, err := Canonicalize(data)
	if err != nil {
		return "", err
	}
	return Hash(b)
}

// VerifyHash reports whether data hashes to want under Hash.
func VerifyHash(data []byte, want string) (bool, error) {
	got, err := Hash(data)
	if err != nil {
		return false, err
	}
	return got == want, nil
}
