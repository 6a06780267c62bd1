// Package webvh implements the did:webvh log engine: an append-only,
// cryptographically-chained journal of DID document versions with
// pre-rotation key commitments, witness-weighted co-signatures,
// Self-Certifying Identifier derivation, and deterministic canonical
// hashing. Resolution replays the log to reconstruct the current
// document and validate every invariant end-to-end.
package webvh

import (
	"github.com/ParichayaHQ/credence/internal/did"
)

// SCIDPlaceholder is the literal token substituted for the derived SCID
// everywhere it appears in a genesis entry: the DID, state.id, service
// ids, and parameters.scid.
const SCIDPlaceholder = "{SCID}"

// MethodVersion is the protocol version string carried in every entry's
// parameters.method field.
const MethodVersion = "did:webvh:1.0"

// CryptosuiteEdDSA is the Data Integrity cryptosuite used for Ed25519
// proofs.
const CryptosuiteEdDSA = "eddsa-jcs-2022"

// LogEntry is one element of a did:webvh verifiable history.
type LogEntry struct {
	VersionID   string           `json:"versionId"`
	VersionTime string           `json:"versionTime" validate:"required,versiontime"`
	Parameters  *Parameters      `json:"parameters,omitempty" validate:"omitempty"`
	State       *did.DIDDocument `json:"state"`
	Proof       []Proof          `json:"proof,omitempty"`
}

// Parameters carries the per-entry protocol parameters. Fields left zero
// on a non-genesis entry are treated as "unchanged from the prior entry"
// during replay (see Resolve).
type Parameters struct {
	Method        string   `json:"method,omitempty" validate:"omitempty,eq=did:webvh:1.0"`
	SCID          string   `json:"scid,omitempty"`
	UpdateKeys    []string `json:"updateKeys,omitempty" validate:"omitempty,dive,did"`
	NextKeyHashes []string `json:"nextKeyHashes,omitempty"`
	Portable      *bool    `json:"portable,omitempty"`
	Witness       *Witness `json:"witness,omitempty"`
	TTL           int      `json:"ttl,omitempty"`
	Deactivated   bool     `json:"deactivated,omitempty"`
}

// Witness is the weighted threshold co-signature configuration: a log
// entry is considered witnessed only once the accumulated weight of
// validly-signed witnesses meets or exceeds Threshold. validateWitnessStruct
// enforces that Threshold falls in (0, sum(Witnesses[].Weight)].
type Witness struct {
	Threshold int             `json:"threshold"`
	Witnesses []WitnessWeight `json:"witnesses" validate:"required,min=1,dive"`
}

// WitnessWeight names one witness's DID (or bare multibase key) and its
// weight toward the threshold.
type WitnessWeight struct {
	ID     string `json:"id" validate:"required,did"`
	Weight int    `json:"weight" validate:"required,witnessweight"`
}

// WitnessProof carries one or more Data Integrity proofs produced by
// witness signers over a specific log entry, identified by VersionID.
// Witness proofs are never embedded inline in the log; they travel
// alongside it and are supplied to Resolve as a second input.
type WitnessProof struct {
	VersionID string  `json:"versionId"`
	Proof     []Proof `json:"proof"`
}

// Proof is a single W3C Data Integrity proof.
type Proof struct {
	Type               string `json:"type"`
	Cryptosuite        string `json:"cryptosuite"`
	VerificationMethod string `json:"verificationMethod"`
	ProofPurpose       string `json:"proofPurpose"`
	Created            string `json:"created"`
	ProofValue         string `json:"proofValue,omitempty"`
}

// ResolutionMetadata describes the effective state returned by Resolve.
type ResolutionMetadata struct {
	VersionID   string `json:"versionId"`
	VersionTime string `json:"versionTime"`
	Deactivated bool   `json:"deactivated"`
	NextUpdate  string `json:"nextUpdate,omitempty"`
}

// ResolutionResult is what Resolve returns: the effective document at
// the requested (or latest) version, plus its metadata.
type ResolutionResult struct {
	Document *did.DIDDocument
	Metadata ResolutionMetadata
}
