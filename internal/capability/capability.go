// Package capability defines the Signer and Resolver trait boundaries the
// webvh log engine is built against. The core engine never performs I/O
// directly — it suspends only at these two boundaries, so a signer backed
// by a remote KMS or a resolver backed by an HTTP fetch compose with the
// engine without it knowing the difference.
package capability

import "context"

// Algorithm identifies the signature scheme a Signer produces.
type Algorithm string

const (
	AlgorithmEdDSA  Algorithm = "EdDSA"
	AlgorithmES256K Algorithm = "ES256K"
	AlgorithmES256  Algorithm = "ES256"
)

// Signer is the capability boundary for producing Data Integrity proof
// signatures. A signer may be remote (HSM, KMS), so Sign, VerifyingKey
// and VerificationMethod take a context for cancellation;
// SignatureAlgorithm takes none and returns the algorithm directly.
type Signer interface {
	// Sign signs message and returns the raw signature bytes.
	Sign(ctx context.Context, message []byte) ([]byte, error)

	// VerifyingKey returns the signer's public key bytes.
	VerifyingKey(ctx context.Context) ([]byte, error)

	// SignatureAlgorithm reports which algorithm Sign produces.
	SignatureAlgorithm() Algorithm

	// VerificationMethod returns the DID URL (or did:key reference) that
	// identifies this signer's key in a proof's verificationMethod field.
	VerificationMethod(ctx context.Context) (string, error)
}

// Resolver is the capability boundary for fetching a remote DID document
// or did:webvh log body. Implementations may fetch HTTPS, consult a
// cache, or read local files — the engine only ever calls Resolve.
type Resolver interface {
	// Resolve fetches the raw bytes served at url.
	Resolve(ctx context.Context, url string) ([]byte, error)
}
