package webvh

import (
	"context"
	"testing"
	"time"

	"github.com/ParichayaHQ/credence/internal/capability"
	"github.com/ParichayaHQ/credence/internal/did"
	"github.com/ParichayaHQ/credence/internal/keys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSigner(t *testing.T) (*capability.MemSigner, string) {
	t.Helper()
	kp, err := keys.Generate()
	require.NoError(t, err)
	mb, err := kp.Multibase()
	require.NoError(t, err)
	return capability.NewMemSigner(kp, mb), mb
}

func genesisDoc(didString string) *did.DIDDocument {
	doc, _ := did.NewDocumentBuilder(didString).Build()
	return doc
}

func TestCreateThenResolveSingleEntry(t *testing.T) {
	ctx := context.Background()
	signer, mb := newTestSigner(t)

	entry, err := NewCreateBuilder([]string{mb}, genesisDoc("did:webvh:"+SCIDPlaceholder+":example.com")).
		VersionTime(time.Unix(1700000000, 0).UTC()).
		Build(ctx, signer)
	require.NoError(t, err)
	assert.Contains(t, entry.VersionID, "1-")
	assert.NotEqual(t, SCIDPlaceholder, entry.Parameters.SCID)

	result, err := Resolve([]LogEntry{*entry}, ResolveOptions{})
	require.NoError(t, err)
	assert.Equal(t, entry.VersionID, result.Metadata.VersionID)
	assert.False(t, result.Metadata.Deactivated)
}

func TestCreateThenDeactivateThreeEntries(t *testing.T) {
	ctx := context.Background()
	signer, mb := newTestSigner(t)
	nextSigner, nextMB := newTestSigner(t)

	genesis, err := NewCreateBuilder([]string{mb}, genesisDoc("did:webvh:"+SCIDPlaceholder+":example.com")).
		NextKey(nextMB).
		VersionTime(time.Unix(1700000000, 0).UTC()).
		Build(ctx, signer)
	require.NoError(t, err)

	produced, err := NewDeactivateBuilder([]LogEntry{*genesis}).
		NullifyWith(signer, []string{nextMB}).
		VersionTime(time.Unix(1700000100, 0).UTC()).
		Build(ctx, nextSigner)
	require.NoError(t, err)
	require.Len(t, produced, 2, "nullify entry + deactivate entry")

	log := append([]LogEntry{*genesis}, produced...)
	require.Len(t, log, 3)

	result, err := Resolve(log, ResolveOptions{})
	require.NoError(t, err)
	assert.True(t, result.Metadata.Deactivated)
	assert.Equal(t, log[2].VersionID, result.Metadata.VersionID)
}

func TestCreateUpdateDeactivateFourEntries(t *testing.T) {
	ctx := context.Background()
	signer, mb := newTestSigner(t)
	rotated, rotatedMB := newTestSigner(t)
	nextSigner, nextMB := newTestSigner(t)

	doc1 := genesisDoc("did:webvh:" + SCIDPlaceholder + ":example.com")
	genesis, err := NewCreateBuilder([]string{mb}, doc1).
		NextKey(rotatedMB).
		VersionTime(time.Unix(1700000000, 0).UTC()).
		Build(ctx, signer)
	require.NoError(t, err)

	scid := genesis.Parameters.SCID
	doc2 := genesisDoc("did:webvh:" + scid + ":example.com")
	updated, err := NewUpdateBuilder([]LogEntry{*genesis}, doc2).
		RotateKeys([]string{rotatedMB}, []string{nextMB}).
		VersionTime(time.Unix(1700000050, 0).UTC()).
		Build(ctx, signer)
	require.NoError(t, err)
	assert.Contains(t, updated.VersionID, "2-")

	log := []LogEntry{*genesis, *updated}
	produced, err := NewDeactivateBuilder(log).
		NullifyWith(rotated, []string{nextMB}).
		VersionTime(time.Unix(1700000100, 0).UTC()).
		Build(ctx, nextSigner)
	require.NoError(t, err)
	require.Len(t, produced, 2, "nullify entry + deactivate entry")

	log = append(log, produced...)
	require.Len(t, log, 4)

	result, err := Resolve(log, ResolveOptions{})
	require.NoError(t, err)
	assert.True(t, result.Metadata.Deactivated)
	assert.Equal(t, doc2.ID, result.Document.ID)
}

func TestWitnessThresholdSplitAcrossTwoWitnesses(t *testing.T) {
	ctx := context.Background()
	signer, mb := newTestSigner(t)
	w1, w1MB := newTestSigner(t)
	w2, w2MB := newTestSigner(t)

	genesis, err := NewCreateBuilder([]string{mb}, genesisDoc("did:webvh:"+SCIDPlaceholder+":example.com")).
		WitnessConfig(&Witness{
			Threshold: 60,
			Witnesses: []WitnessWeight{
				{ID: w1MB, Weight: 50},
				{ID: w2MB, Weight: 40},
			},
		}).
		VersionTime(time.Unix(1700000000, 0).UTC()).
		Build(ctx, signer)
	require.NoError(t, err)

	w1Proof, err := SignWitnessProof(ctx, *genesis, w1, time.Unix(1700000001, 0).UTC())
	require.NoError(t, err)
	w2Proof, err := SignWitnessProof(ctx, *genesis, w2, time.Unix(1700000002, 0).UTC())
	require.NoError(t, err)

	// w1 alone (weight 50) falls short of threshold 60.
	_, err = Resolve([]LogEntry{*genesis}, ResolveOptions{WitnessProofs: []WitnessProof{w1Proof}})
	require.Error(t, err)
	var verr *VerificationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, did.ErrorWitnessThreshold, verr.Code)

	// w2 alone (weight 40) also falls short of threshold 60.
	_, err = Resolve([]LogEntry{*genesis}, ResolveOptions{WitnessProofs: []WitnessProof{w2Proof}})
	require.Error(t, err)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, did.ErrorWitnessThreshold, verr.Code)

	// w1+w2 together (weight 90) satisfy threshold 60.
	result, err := Resolve([]LogEntry{*genesis}, ResolveOptions{
		WitnessProofs: []WitnessProof{w1Proof, w2Proof},
	})
	require.NoError(t, err)
	assert.False(t, result.Metadata.Deactivated)
}

func TestResolveRejectsTamperedHash(t *testing.T) {
	ctx := context.Background()
	signer, mb := newTestSigner(t)

	entry, err := NewCreateBuilder([]string{mb}, genesisDoc("did:webvh:"+SCIDPlaceholder+":example.com")).
		VersionTime(time.Unix(1700000000, 0).UTC()).
		Build(ctx, signer)
	require.NoError(t, err)

	tampered := *entry
	tampered.VersionID = "1-zBadHashValueThatDoesNotMatch"

	_, err = Resolve([]LogEntry{tampered}, ResolveOptions{})
	require.Error(t, err)
	var verr *VerificationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, did.ErrorChainBroken, verr.Code)
}

func TestUpdateRejectsKeyNotInPreRotationCommitment(t *testing.T) {
	ctx := context.Background()
	signer, mb := newTestSigner(t)
	_, nextMB := newTestSigner(t)
	_, intruderMB := newTestSigner(t)
	_ = intruderMB

	genesis, err := NewCreateBuilder([]string{mb}, genesisDoc("did:webvh:"+SCIDPlaceholder+":example.com")).
		NextKey(nextMB).
		VersionTime(time.Unix(1700000000, 0).UTC()).
		Build(ctx, signer)
	require.NoError(t, err)

	scid := genesis.Parameters.SCID
	doc2 := genesisDoc("did:webvh:" + scid + ":example.com")

	_, err = NewUpdateBuilder([]LogEntry{*genesis}, doc2).
		RotateKeys([]string{intruderMB}, nil).
		VersionTime(time.Unix(1700000050, 0).UTC()).
		Build(ctx, signer)
	require.Error(t, err)
	var derr *did.DIDError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, did.ErrorPreRotationMismatch, derr.Code)
}
