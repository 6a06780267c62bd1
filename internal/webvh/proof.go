package webvh

import (
	"context"
	"crypto/ed25519"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/ParichayaHQ/credence/internal/canon"
	"github.com/ParichayaHQ/credence/internal/capability"
	"github.com/ParichayaHQ/credence/internal/keys"
	"github.com/multiformats/go-multibase"
)

// signingDigest computes the Data Integrity digest for entry e and proof
// p (with ProofValue not yet set): SHA-256(canonical proof) concatenated
// with SHA-256(canonical entry-without-proof).
func signingDigest(e LogEntry, p Proof) ([]byte, error) {
	e.Proof = nil
	entryBytes, err := canon.Canonicalize(e)
	if err != nil {
		return nil, fmt.Errorf("webvh: canonicalize entry: %w", err)
	}

	p.ProofValue = ""
	proofBytes, err := canon.Canonicalize(p)
	if err != nil {
		return nil, fmt.Errorf("webvh: canonicalize proof: %w", err)
	}

	entryDigest := sha256.Sum256(entryBytes)
	proofDigest := sha256.Sum256(proofBytes)

	digest := make([]byte, 0, 64)
	digest = append(digest, proofDigest[:]...)
	digest = append(digest, entryDigest[:]...)
	return digest, nil
}

// SignEntry produces a Data Integrity proof over entry using signer, and
// returns entry with the new proof appended to its Proof list.
func SignEntry(ctx context.Context, entry LogEntry, signer capability.Signer, createdAt time.Time) (LogEntry, error) {
	vm, err := signer.VerificationMethod(ctx)
	if err != nil {
		return LogEntry{}, fmt.Errorf("webvh: signer verification method: %w", err)
	}

	proof := Proof{
		Type:               "DataIntegrityProof",
		Cryptosuite:        CryptosuiteEdDSA,
		VerificationMethod: vm,
		ProofPurpose:       "authentication",
		Created:            createdAt.UTC().Format(time.RFC3339),
	}

	digest, err := signingDigest(entry, proof)
	if err != nil {
		return LogEntry{}, err
	}

	sig, err := signer.Sign(ctx, digest)
	if err != nil {
		return LogEntry{}, fmt.Errorf("webvh: sign: %w", err)
	}

	encoded, err := multibase.Encode(multibase.Base58BTC, sig)
	if err != nil {
		return LogEntry{}, fmt.Errorf("webvh: encode signature: %w", err)
	}
	proof.ProofValue = encoded

	out := entry
	out.Proof = append(append([]Proof{}, entry.Proof...), proof)
	return out, nil
}

// SignWitnessProof produces a witness's Data Integrity proof over an
// already-built entry, for callers assembling WitnessProof values
// out-of-band from the Create/Update/Deactivate builders.
func SignWitnessProof(ctx context.Context, entry LogEntry, signer capability.Signer, createdAt time.Time) (WitnessProof, error) {
	signed, err := SignEntry(ctx, entry, signer, createdAt)
	if err != nil {
		return WitnessProof{}, err
	}
	return WitnessProof{
		VersionID: entry.VersionID,
		Proof:     []Proof{signed.Proof[len(signed.Proof)-1]},
	}, nil
}

// VerifyProof verifies one proof on entry against the given public key,
// which the caller must have already confirmed belongs to the
// appropriate updateKeys set.
func VerifyProof(entry LogEntry, proof Proof, pub ed25519.PublicKey) error {
	digest, err := signingDigest(entry, proof)
	if err != nil {
		return err
	}

	_, sig, err := multibase.Decode(proof.ProofValue)
	if err != nil {
		return fmt.Errorf("webvh: decode proof value: %w", err)
	}

	if !ed25519.Verify(pub, digest, sig) {
		return fmt.Errorf("webvh: signature verification failed")
	}
	return nil
}

// publicKeyForVerificationMethod resolves the public key backing a
// proof's verificationMethod, when it is an inline did:key reference
// (did:key:<m>#<m>). A did:webvh verificationMethod (a DID URL fragment
// into the document itself) is resolved by the caller from updateKeys
// instead, since at verification time that is already the set being
// checked against.
func publicKeyForVerificationMethod(vm string) (ed25519.PublicKey, error) {
	const prefix = "did:key:"
	if len(vm) <= len(prefix) || vm[:len(prefix)] != prefix {
		return nil, fmt.Errorf("webvh: not an inline did:key verification method: %s", vm)
	}
	rest := vm[len(prefix):]
	for i := 0; i < len(rest); i++ {
		if rest[i] == '#' {
			rest = rest[:i]
			break
		}
	}
	return keys.PublicKeyFromMultibase(rest)
}

// publicKeyForIdentifier resolves either an inline did:key reference or
// a bare multibase-encoded public key string to its Ed25519 public key —
// the two forms an updateKeys or witness id entry may take.
func publicKeyForIdentifier(id string) (ed25519.PublicKey, error) {
	if pub, err := publicKeyForVerificationMethod(id); err == nil {
		return pub, nil
	}
	return keys.PublicKeyFromMultibase(id)
}
