package webvh

import (
	"context"
	"strconv"
	"time"

	"github.com/ParichayaHQ/credence/internal/capability"
	"github.com/ParichayaHQ/credence/internal/did"
)

// DeactivateBuilder appends the terminal entry or entries to a
// did:webvh log. If the previous entry still carries a pending
// pre-rotation commitment (nextKeyHashes), the commitment must first be
// closed out by rotating updateKeys to the committed key — via
// NullifyWith, signed by the *current* key holder — before the terminal
// deactivation entry can be produced, signed by the newly-rotated key
// holder. This is what gives the "create+update+deactivate -> 4 entries"
// shape its extra nullify entry only when a commitment is still pending.
type DeactivateBuilder struct {
	log           []LogEntry
	nullifySigner capability.Signer
	nullifyKeys   []string
	versionTime   time.Time
	err           error
}

// NewDeactivateBuilder starts a DeactivateBuilder from the current log.
func NewDeactivateBuilder(log []LogEntry) *DeactivateBuilder {
	if len(log) == 0 {
		return &DeactivateBuilder{err: did.NewDIDError(did.ErrorInvalidDocument, "log is empty")}
	}
	return &DeactivateBuilder{log: log, versionTime: time.Now().UTC()}
}

// NullifyWith supplies the signer authorized under the log's current
// updateKeys and the key(s) it will rotate into — which must match the
// previous entry's nextKeyHashes commitment exactly. Required only when
// that commitment is still pending at deactivation time.
func (b *DeactivateBuilder) NullifyWith(signer capability.Signer, committedUpdateKeys []string) *DeactivateBuilder {
	if b.err != nil {
		return b
	}
	b.nullifySigner = signer
	b.nullifyKeys = committedUpdateKeys
	return b
}

// VersionTime overrides the deactivation entry's versionTime.
func (b *DeactivateBuilder) VersionTime(t time.Time) *DeactivateBuilder {
	if b.err != nil {
		return b
	}
	b.versionTime = t
	return b
}

// Build produces the entry or entries that deactivate the log, and
// returns them in log order. finalSigner must hold a key authorized
// under the log's effective updateKeys at the time of deactivation — the
// committed key from NullifyWith, if a nullify entry was required.
func (b *DeactivateBuilder) Build(ctx context.Context, finalSigner capability.Signer) ([]LogEntry, error) {
	if b.err != nil {
		return nil, b.err
	}

	prev := b.log[len(b.log)-1]
	if prev.Parameters == nil {
		return nil, errChainBroken(prev.VersionID, "previous entry has no parameters")
	}
	if prev.Parameters.Deactivated {
		return nil, did.NewDIDError(did.ErrorInvalidDocument, "log is already deactivated")
	}

	var produced []LogEntry
	current := prev
	working := append([]LogEntry(nil), b.log...)

	if len(current.Parameters.NextKeyHashes) > 0 {
		if b.nullifySigner == nil || len(b.nullifyKeys) == 0 {
			return nil, did.NewDIDError(did.ErrorPreRotationMismatch, "pending key commitment requires NullifyWith before deactivating")
		}
		nullify, err := NewUpdateBuilder(working, current.State).
			RotateKeys(b.nullifyKeys, nil).
			VersionTime(b.versionTime).
			Build(ctx, b.nullifySigner)
		if err != nil {
			return nil, err
		}
		produced = append(produced, *nullify)
		working = append(working, *nullify)
		current = *nullify
	}

	prevN, _, err := splitVersionID(current.VersionID)
	if err != nil {
		return nil, errChainBroken(current.VersionID, "malformed previous versionId")
	}

	deactivateTime := b.versionTime
	if len(produced) > 0 {
		deactivateTime = deactivateTime.Add(time.Second)
	}

	finalParams := &Parameters{
		SCID:          current.Parameters.SCID,
		UpdateKeys:    []string{},
		NextKeyHashes: []string{},
		Portable:      current.Parameters.Portable,
		Witness:       current.Parameters.Witness,
		TTL:           current.Parameters.TTL,
		Deactivated:   true,
	}

	entry := LogEntry{
		VersionTime: deactivateTime.Format(time.RFC3339),
		Parameters:  finalParams,
		State:       current.State,
	}

	hash, err := entryHash(entry)
	if err != nil {
		return nil, err
	}
	entry.VersionID = strconv.Itoa(prevN+1) + "-" + hash

	if err := ValidateLogEntry(&entry); err != nil {
		return nil, err
	}

	if err := verifySignerInKeys(ctx, finalSigner, current.Parameters.UpdateKeys); err != nil {
		return nil, err
	}

	signed, err := SignEntry(ctx, entry, finalSigner, deactivateTime)
	if err != nil {
		return nil, err
	}
	produced = append(produced, signed)
	return produced, nil
}
