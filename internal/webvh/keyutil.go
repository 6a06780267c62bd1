package webvh

import (
	"crypto/ed25519"
	"fmt"

	"github.com/ParichayaHQ/credence/internal/multicodec"
)

// multibaseEncodeEd25519 frames raw Ed25519 public key bytes into their
// multicodec+multibase wire form, used to compare a signer's reported
// public key against the multibase strings carried in updateKeys.
func multibaseEncodeEd25519(pub []byte) (string, error) {
	if len(pub) != ed25519.PublicKeySize {
		return "", fmt.Errorf("webvh: invalid public key length %d", len(pub))
	}
	return multicodec.EncodeEd25519(ed25519.PublicKey(pub))
}
