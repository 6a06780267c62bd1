package webvh

import (
	"context"
	"fmt"
	"time"

	"github.com/ParichayaHQ/credence/internal/capability"
	"github.com/ParichayaHQ/credence/internal/did"
	"go.uber.org/zap"
)

// CreateBuilder assembles and signs the genesis entry of a new did:webvh
// log. Inputs are the non-empty update-key set, the DID document (with
// SCIDPlaceholder already substituted where the caller wants the SCID to
// appear), and optional next-key commitments, portability, witness
// configuration and TTL.
type CreateBuilder struct {
	updateKeys    []string
	doc           *did.DIDDocument
	nextKeyHashes []string
	portable      bool
	witness       *Witness
	ttl           int
	versionTime   time.Time
	err           error
}

// NewCreateBuilder starts a CreateBuilder. updateKeys must be non-empty
// multibase-encoded public keys.
func NewCreateBuilder(updateKeys []string, doc *did.DIDDocument) *CreateBuilder {
	b := &CreateBuilder{doc: doc, portable: false, ttl: 0, versionTime: time.Now().UTC()}
	if len(updateKeys) == 0 {
		b.err = did.NewDIDError(did.ErrorInvalidDocument, "update_keys must be non-empty")
		return b
	}
	b.updateKeys = updateKeys
	return b
}

// NextKey commits to nextMultibase as a successor key: its
// multibase-string hash is appended to nextKeyHashes, so each call adds
// one more commitment.
func (b *CreateBuilder) NextKey(nextMultibase string) *CreateBuilder {
	if b.err != nil {
		return b
	}
	h, err := keyCommitmentHash(nextMultibase)
	if err != nil {
		b.err = err
		return b
	}
	b.nextKeyHashes = append(b.nextKeyHashes, h)
	return b
}

// Portable sets whether the DID's domain component may change across
// updates.
func (b *CreateBuilder) Portable(portable bool) *CreateBuilder {
	if b.err != nil {
		return b
	}
	b.portable = portable
	return b
}

// WitnessConfig sets the witness threshold configuration. Invariant:
// sum(weights) must be able to reach threshold, and threshold must fall
// in (0, sum(weights)].
func (b *CreateBuilder) WitnessConfig(w *Witness) *CreateBuilder {
	if b.err != nil {
		return b
	}
	if w != nil {
		if err := validate.Struct(w); err != nil {
			b.err = did.NewDIDErrorWithCause(did.ErrorInvalidDocument, "witness threshold must be in (0, sum(weights)]", err)
			return b
		}
	}
	b.witness = w
	return b
}

// TTL sets the cache duration (seconds) parameter.
func (b *CreateBuilder) TTL(seconds int) *CreateBuilder {
	if b.err != nil {
		return b
	}
	b.ttl = seconds
	return b
}

// VersionTime overrides the genesis entry's versionTime, for determinism
// in tests. Defaults to time.Now().UTC() at builder construction.
func (b *CreateBuilder) VersionTime(t time.Time) *CreateBuilder {
	if b.err != nil {
		return b
	}
	b.versionTime = t
	return b
}

// Build derives the SCID, assembles the genesis entry, and signs it with
// signer. The signer's public key must appear in updateKeys.
func (b *CreateBuilder) Build(ctx context.Context, signer capability.Signer) (*LogEntry, error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := verifySignerInKeys(ctx, signer, b.updateKeys); err != nil {
		return nil, err
	}

	portable := b.portable
	placeholderEntry := LogEntry{
		VersionTime: b.versionTime.Format(time.RFC3339),
		Parameters: &Parameters{
			Method:        MethodVersion,
			SCID:          SCIDPlaceholder,
			UpdateKeys:    b.updateKeys,
			NextKeyHashes: b.nextKeyHashes,
			Portable:      &portable,
			Witness:       b.witness,
			TTL:           b.ttl,
		},
		State: b.doc,
	}

	scid, err := DeriveSCID(placeholderEntry)
	if err != nil {
		return nil, fmt.Errorf("webvh: derive SCID: %w", err)
	}

	genesis := SubstituteSCID(placeholderEntry, scid)

	hash, err := entryHash(genesis)
	if err != nil {
		return nil, fmt.Errorf("webvh: hash genesis entry: %w", err)
	}
	genesis.VersionID = "1-" + hash

	if err := ValidateLogEntry(&genesis); err != nil {
		return nil, err
	}

	signed, err := SignEntry(ctx, genesis, signer, b.versionTime)
	if err != nil {
		return nil, fmt.Errorf("webvh: sign genesis entry: %w", err)
	}
	return &signed, nil
}

// verifySignerInKeys confirms the signer's verifying key, multibase
// encoded, appears in keys.
func verifySignerInKeys(ctx context.Context, signer capability.Signer, keyList []string) error {
	logger.Debug("signer suspension point", zap.Int("candidateKeys", len(keyList)))
	pub, err := signer.VerifyingKey(ctx)
	if err != nil {
		logger.Warn("signer suspension point failed", zap.Error(err))
		return fmt.Errorf("webvh: signer verifying key: %w", err)
	}
	mb, err := multibaseEncodeEd25519(pub)
	if err != nil {
		return err
	}
	for _, k := range keyList {
		if k == mb {
			return nil
		}
	}
	logger.Warn("signer suspension point failed", zap.String("reason", "signer key not present in updateKeys"))
	return errProofVerification("", "signer key not present in updateKeys", nil)
}
