package capability

import (
	"context"
	"crypto/ed25519"
	"fmt"

	"github.com/ParichayaHQ/credence/internal/keys"
)

// MemSigner is an in-process Signer backed by a held Ed25519 key pair —
// the reference implementation used by tests and examples in place of a
// real KMS-backed signer.
type MemSigner struct {
	keyPair            *keys.KeyPair
	verificationMethod string
}

// NewMemSigner wraps kp as a Signer that reports vm as its
// verificationMethod.
func NewMemSigner(kp *keys.KeyPair, vm string) *MemSigner {
	return &MemSigner{keyPair: kp, verificationMethod: vm}
}

// Sign implements Signer.
func (s *MemSigner) Sign(_ context.Context, message []byte) ([]byte, error) {
	if s.keyPair == nil {
		return nil, fmt.Errorf("capability: memsigner has no key pair")
	}
	return ed25519.Sign(s.keyPair.PrivateKey, message), nil
}

// VerifyingKey implements Signer.
func (s *MemSigner) VerifyingKey(_ context.Context) ([]byte, error) {
	return []byte(s.keyPair.PublicKey), nil
}

// SignatureAlgorithm implements Signer.
func (s *MemSigner) SignatureAlgorithm() Algorithm {
	return AlgorithmEdDSA
}

// VerificationMethod implements Signer.
func (s *MemSigner) VerificationMethod(_ context.Context) (string, error) {
	if s.verificationMethod == "" {
		return "", fmt.Errorf("capability: memsigner verification method not set")
	}
	return s.verificationMethod, nil
}

// KeyPair exposes the underlying key pair, mainly so tests can derive its
// multibase form for updateKeys/witness id lists without re-deriving it.
func (s *MemSigner) KeyPair() *keys.KeyPair {
	return s.keyPair
}
