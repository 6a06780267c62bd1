package webvh

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ParichayaHQ/credence/internal/capability"
	"github.com/ParichayaHQ/credence/internal/did"
)

// UpdateBuilder appends a new entry to an existing did:webvh log.
type UpdateBuilder struct {
	log           []LogEntry
	doc           *did.DIDDocument
	updateKeys    []string
	nextKeyHashes []string
	versionTime   time.Time
	err           error
}

// NewUpdateBuilder starts an UpdateBuilder from the current log and the
// new document state. If RotateKeys is not called (or is given no
// keys), the previous entry's updateKeys carry forward unchanged.
func NewUpdateBuilder(log []LogEntry, doc *did.DIDDocument) *UpdateBuilder {
	if len(log) == 0 {
		return &UpdateBuilder{err: did.NewDIDError(did.ErrorInvalidDocument, "log is empty")}
	}
	return &UpdateBuilder{log: log, doc: doc, versionTime: time.Now().UTC()}
}

// RotateKeys sets the new updateKeys for this entry, together with the
// key commitments (nextKeyHashes) for the entry after it.
func (b *UpdateBuilder) RotateKeys(updateKeys []string, nextMultibaseKeys []string) *UpdateBuilder {
	if b.err != nil {
		return b
	}
	b.updateKeys = updateKeys
	for _, nk := range nextMultibaseKeys {
		h, err := keyCommitmentHash(nk)
		if err != nil {
			b.err = err
			return b
		}
		b.nextKeyHashes = append(b.nextKeyHashes, h)
	}
	return b
}

// VersionTime overrides the new entry's versionTime.
func (b *UpdateBuilder) VersionTime(t time.Time) *UpdateBuilder {
	if b.err != nil {
		return b
	}
	b.versionTime = t
	return b
}

// Build validates the update invariants against the previous entry and
// signs the new entry with signer.
func (b *UpdateBuilder) Build(ctx context.Context, signer capability.Signer) (*LogEntry, error) {
	if b.err != nil {
		return nil, b.err
	}

	prev := b.log[len(b.log)-1]
	prevParams := prev.Parameters
	if prevParams == nil {
		return nil, errChainBroken(prev.VersionID, "previous entry has no parameters")
	}
	if prevParams.Deactivated {
		return nil, did.NewDIDError(did.ErrorInvalidDocument, "cannot update a deactivated document")
	}

	effectiveUpdateKeys := prevParams.UpdateKeys
	if len(b.updateKeys) == 0 {
		b.updateKeys = effectiveUpdateKeys
	}

	if err := verifySignerInKeys(ctx, signer, effectiveUpdateKeys); err != nil {
		return nil, err
	}

	if len(prevParams.NextKeyHashes) > 0 {
		if err := checkPreRotation(prevParams.NextKeyHashes, b.updateKeys); err != nil {
			return nil, err
		}
	}

	prevN, _, err := splitVersionID(prev.VersionID)
	if err != nil {
		return nil, errChainBroken(prev.VersionID, "malformed previous versionId")
	}

	if !b.versionTime.After(mustParseTime(prev.VersionTime)) {
		return nil, errChainBroken(prev.VersionID, "versionTime must be strictly later than previous entry")
	}

	portable := true
	if prevParams.Portable != nil {
		portable = *prevParams.Portable
	}
	if !portable {
		if domainOf(b.doc.ID) != domainOf(prev.State.ID) {
			return nil, errPortabilityViolation(prev.VersionID, "DID domain changed while portable=false")
		}
	}

	newParams := &Parameters{
		SCID:          prevParams.SCID,
		UpdateKeys:    b.updateKeys,
		NextKeyHashes: b.nextKeyHashes,
		Portable:      prevParams.Portable,
		Witness:       prevParams.Witness,
		TTL:           prevParams.TTL,
	}

	entry := LogEntry{
		VersionTime: b.versionTime.Format(time.RFC3339),
		Parameters:  newParams,
		State:       b.doc,
	}

	hash, err := entryHash(entry)
	if err != nil {
		return nil, err
	}
	entry.VersionID = strconv.Itoa(prevN+1) + "-" + hash

	if err := ValidateLogEntry(&entry); err != nil {
		return nil, err
	}

	signed, err := SignEntry(ctx, entry, signer, b.versionTime)
	if err != nil {
		return nil, err
	}
	return &signed, nil
}

// checkPreRotation confirms that the multiset of hash(updateKeys) equals
// the multiset of commitments in prevNextKeyHashes.
func checkPreRotation(prevNextKeyHashes, newUpdateKeys []string) error {
	if len(prevNextKeyHashes) != len(newUpdateKeys) {
		return did.NewDIDError(did.ErrorPreRotationMismatch, "updateKeys size does not match committed nextKeyHashes")
	}
	want := make(map[string]int, len(prevNextKeyHashes))
	for _, h := range prevNextKeyHashes {
		want[h]++
	}
	for _, k := range newUpdateKeys {
		h, err := keyCommitmentHash(k)
		if err != nil {
			return err
		}
		if want[h] == 0 {
			return did.NewDIDError(did.ErrorPreRotationMismatch, "updateKeys do not match committed nextKeyHashes")
		}
		want[h]--
	}
	return nil
}

func splitVersionID(versionID string) (int, string, error) {
	idx := strings.Index(versionID, "-")
	if idx < 0 {
		return 0, "", fmt.Errorf("webvh: malformed versionId %q", versionID)
	}
	n, err := strconv.Atoi(versionID[:idx])
	if err != nil {
		return 0, "", fmt.Errorf("webvh: malformed versionId %q: %w", versionID, err)
	}
	return n, versionID[idx+1:], nil
}

func mustParseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func domainOf(didString string) string {
	parts := strings.SplitN(didString, ":", 4)
	if len(parts) < 3 {
		return didString
	}
	if parts[1] == "webvh" && len(parts) >= 4 {
		return parts[3]
	}
	return strings.Join(parts[2:], ":")
}
