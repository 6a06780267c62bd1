// Package keys provides the Ed25519 key-pair and JWK primitives shared by
// the DID document model and the did:webvh log engine. It generalizes the
// teacher's crypto.Ed25519KeyPair / did.JWK handling into a single,
// method-agnostic primitive layer.
package keys

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/ParichayaHQ/credence/internal/multicodec"
)

// JWK is a minimal JSON Web Key for an OKP/Ed25519 key, matching the shape
// the did:webvh draft and the original implementation serialize.
type JWK struct {
	Kty string `json:"kty"`
	Crv string `json:"crv"`
	X   string `json:"x"`
	D   string `json:"d,omitempty"`
}

// KeyPair holds an Ed25519 public/private key pair.
type KeyPair struct {
	PublicKey  ed25519.PublicKey
	PrivateKey ed25519.PrivateKey
}

// Generate creates a new random Ed25519 key pair.
func Generate() (*KeyPair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("keys: generate: %w", err)
	}
	return &KeyPair{PublicKey: pub, PrivateKey: priv}, nil
}

// FromSeed deterministically derives a key pair from a 32-byte seed.
func FromSeed(seed []byte) (*KeyPair, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("keys: invalid seed size %d, want %d", len(seed), ed25519.SeedSize)
	}
	priv := ed25519.NewKeyFromSeed(seed)
	return &KeyPair{PublicKey: priv.Public().(ed25519.PublicKey), PrivateKey: priv}, nil
}

// Multibase returns the multicodec-framed, multibase-encoded public key —
// the `publicKeyMultibase` and update-key/witness-id wire form.
func (kp *KeyPair) Multibase() (string, error) {
	return multicodec.EncodeEd25519(kp.PublicKey)
}

// PublicJWK returns the public-only JWK form of the key pair.
func (kp *KeyPair) PublicJWK() JWK {
	return JWK{
		Kty: "OKP",
		Crv: "Ed25519",
		X:   base64.RawURLEncoding.EncodeToString(kp.PublicKey),
	}
}

// JWK returns the full (private-key-carrying) JWK form.
func (kp *KeyPair) JWK() JWK {
	j := kp.PublicJWK()
	j.D = base64.RawURLEncoding.EncodeToString(kp.PrivateKey.Seed())
	return j
}

// PublicKeyFromMultibase decodes a multibase-encoded Ed25519 public key,
// the inverse of KeyPair.Multibase, usable to validate update keys and
// witness identities carried only as multibase strings.
func PublicKeyFromMultibase(encoded string) (ed25519.PublicKey, error) {
	return multicodec.DecodeEd25519(encoded)
}

// PublicKeyFromJWK extracts the Ed25519 public key from a JWK.
func PublicKeyFromJWK(jwk JWK) (ed25519.PublicKey, error) {
	if jwk.Kty != "OKP" || jwk.Crv != "Ed25519" {
		return nil, fmt.Errorf("keys: unsupported JWK type %s/%s", jwk.Kty, jwk.Crv)
	}
	x, err := base64.RawURLEncoding.DecodeString(jwk.X)
	if err != nil {
		return nil, fmt.Errorf("keys: invalid JWK x value: %w", err)
	}
	if len(x) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("keys: invalid JWK public key length %d", len(x))
	}
	return ed25519.PublicKey(x), nil
}

// KeyPairFromJWK reconstructs a full key pair from a private JWK.
func KeyPairFromJWK(jwk JWK) (*KeyPair, error) {
	if jwk.D == "" {
		return nil, fmt.Errorf("keys: JWK has no private component")
	}
	seed, err := base64.RawURLEncoding.DecodeString(jwk.D)
	if err != nil {
		return nil, fmt.Errorf("keys: invalid JWK d value: %w", err)
	}
	return FromSeed(seed)
}
