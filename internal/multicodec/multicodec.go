// Package multicodec frames and unframes Ed25519 keys with their
// multicodec prefix and wraps them in a multibase envelope, the
// `publicKeyMultibase` encoding used throughout did:key and did:webvh
// verification methods and key commitments.
package multicodec

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/multiformats/go-multibase"
	"github.com/multiformats/go-varint"
)

// Ed25519PubCode is the multicodec table entry for an Ed25519 public key.
const Ed25519PubCode = 0xed

// ed25519PrefixLen is the varint-encoded length of Ed25519PubCode: 0xed is
// 237, which does not fit in 7 bits, so its uvarint form is the two bytes
// 0xed 0x01.
const ed25519PrefixLen = 2

// EncodeEd25519 frames an Ed25519 public key with its multicodec prefix
// and wraps the result in a 'z' (base58-btc) multibase envelope.
func EncodeEd25519(pub ed25519.PublicKey) (string, error) {
	if len(pub) != ed25519.PublicKeySize {
		return "", fmt.Errorf("multicodec: invalid ed25519 public key length %d", len(pub))
	}
	prefix := varint.ToUvarint(Ed25519PubCode)
	framed := append(append([]byte{}, prefix...), pub...)
	return multibase.Encode(multibase.Base58BTC, framed)
}

// DecodeEd25519 reverses EncodeEd25519: it strips the multibase envelope,
// validates the multicodec prefix, and returns the raw public key.
func DecodeEd25519(encoded string) (ed25519.PublicKey, error) {
	enc, framed, err := multibase.Decode(encoded)
	if err != nil {
		return nil, fmt.Errorf("multicodec: multibase decode: %w", err)
	}
	if enc != multibase.Base58BTC {
		return nil, fmt.Errorf("multicodec: unsupported multibase encoding %q", string(enc))
	}

	code, n, err := varint.FromUvarint(framed)
	if err != nil {
		return nil, fmt.Errorf("multicodec: varint decode: %w", err)
	}
	if code != Ed25519PubCode {
		return nil, fmt.Errorf("multicodec: unexpected code 0x%x, want 0x%x", code, Ed25519PubCode)
	}

	key := framed[n:]
	if len(key) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("multicodec: invalid ed25519 key length %d", len(key))
	}
	return ed25519.PublicKey(key), nil
}

// Base58Encode is a thin wrapper over the base58-btc codec, replacing the
// hand-rolled math/big encoder previously used for this purpose.
func Base58Encode(data []byte) string {
	return base58.Encode(data)
}

// Base58Decode decodes a base58-btc string.
func Base58Decode(s string) ([]byte, error) {
	return base58.Decode(s)
}
