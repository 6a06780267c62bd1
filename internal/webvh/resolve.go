package webvh

import (
	"crypto/ed25519"
	"fmt"
	"time"

	"github.com/ParichayaHQ/credence/internal/did"
	"github.com/ParichayaHQ/credence/internal/keys"
	"go.uber.org/zap"
)

// ResolveOptions controls how far and how strictly Resolve replays a log.
type ResolveOptions struct {
	// TargetVersionID, if set, stops replay at (and returns) this exact
	// version instead of the log's tail.
	TargetVersionID string

	// TargetVersionTime, if set, stops replay at the latest entry whose
	// versionTime is <= this cutoff.
	TargetVersionTime time.Time

	// WitnessProofs supplies out-of-band witness co-signatures, indexed
	// by the versionId they were produced over.
	WitnessProofs []WitnessProof

	// SkipWitnessCheck disables witness-threshold enforcement, for
	// callers that only need document state and not full attestation.
	SkipWitnessCheck bool
}

// Resolve replays log from its genesis entry, verifying every invariant
// in order, and returns the effective document and metadata at the
// requested target (or the log's tail if none is given). It fails at the
// first invariant violation encountered and reports the offending
// versionId via VerificationError.
func Resolve(log []LogEntry, opts ResolveOptions) (*ResolutionResult, error) {
	if len(log) == 0 {
		return nil, newVerificationError(did.ErrorNotFound, "", "log is empty", nil)
	}

	var (
		scid          string
		effectiveKeys []string
		portable      = true
		witness       *Witness
		ttl           int
		prevTime      time.Time
		lastResult    *ResolutionResult
	)

	for i, entry := range log {
		n, hashPart, err := splitVersionID(entry.VersionID)
		if err != nil {
			return nil, errChainBroken(entry.VersionID, "malformed versionId")
		}
		if n != i+1 {
			return nil, errChainBroken(entry.VersionID, fmt.Sprintf("expected version number %d", i+1))
		}

		computedHash, err := entryHash(entry)
		if err != nil {
			return nil, errOther(entry.VersionID, "computing entry hash", err)
		}
		if computedHash != hashPart {
			logger.Warn("chain verification failed", zap.String("versionId", entry.VersionID), zap.String("reason", "entry hash mismatch"))
			return nil, errChainBroken(entry.VersionID, "entry hash does not match versionId")
		}

		if i == 0 {
			if entry.Parameters == nil || entry.Parameters.SCID == "" {
				return nil, errScidMismatch(entry.VersionID, "genesis entry missing scid parameter")
			}
			scid = entry.Parameters.SCID
			placeholderEntry := entry
			placeholderEntry.VersionID = ""
			derivedSCID, err := DeriveSCID(UnsubstituteSCID(placeholderEntry, scid))
			if err != nil {
				return nil, errOther(entry.VersionID, "deriving SCID", err)
			}
			if derivedSCID != scid {
				logger.Warn("chain verification failed", zap.String("versionId", entry.VersionID), zap.String("reason", "scid mismatch"))
				return nil, errScidMismatch(entry.VersionID, "derived SCID does not match parameters.scid")
			}
		} else if entry.Parameters != nil && entry.Parameters.SCID != "" && entry.Parameters.SCID != scid {
			logger.Warn("chain verification failed", zap.String("versionId", entry.VersionID), zap.String("reason", "scid changed"))
			return nil, errScidMismatch(entry.VersionID, "scid changed across entries")
		}

		entryTime, err := time.Parse(time.RFC3339, entry.VersionTime)
		if err != nil {
			return nil, errChainBroken(entry.VersionID, "malformed versionTime")
		}

		if !opts.TargetVersionTime.IsZero() && entryTime.After(opts.TargetVersionTime) {
			break
		}

		signingKeys := effectiveKeys
		if i > 0 {
			prev := log[i-1]
			if prev.Parameters != nil && len(prev.Parameters.NextKeyHashes) > 0 {
				newKeys := effectiveKeys
				if entry.Parameters != nil && entry.Parameters.UpdateKeys != nil {
					newKeys = entry.Parameters.UpdateKeys
				}
				if err := checkPreRotation(prev.Parameters.NextKeyHashes, newKeys); err != nil {
					logger.Warn("chain verification failed", zap.String("versionId", entry.VersionID), zap.String("reason", "pre-rotation mismatch"))
					return nil, errPreRotationMismatch(entry.VersionID, err.Error())
				}
			}
		}

		if entry.Parameters != nil {
			if entry.Parameters.UpdateKeys != nil {
				effectiveKeys = entry.Parameters.UpdateKeys
			}
			if entry.Parameters.Portable != nil {
				portable = *entry.Parameters.Portable
			}
			if entry.Parameters.Witness != nil {
				witness = entry.Parameters.Witness
			}
			if entry.Parameters.TTL != 0 {
				ttl = entry.Parameters.TTL
			}
		}
		if i == 0 {
			signingKeys = effectiveKeys
		}

		if len(entry.Proof) == 0 {
			return nil, errProofVerification(entry.VersionID, "entry has no proof", nil)
		}
		verified := false
		for _, p := range entry.Proof {
			pub, err := resolveProofKey(p.VerificationMethod, signingKeys)
			if err != nil {
				continue
			}
			if VerifyProof(entry, p, pub) == nil {
				verified = true
				break
			}
		}
		if !verified {
			logger.Warn("signer suspension point", zap.String("versionId", entry.VersionID), zap.String("reason", "no proof verified against effective updateKeys"))
			return nil, errProofVerification(entry.VersionID, "no proof verified against effective updateKeys", nil)
		}

		if i > 0 && !entryTime.After(prevTime) {
			return nil, errChainBroken(entry.VersionID, "versionTime must strictly increase")
		}
		prevTime = entryTime

		if i > 0 && !portable {
			if domainOf(entry.State.ID) != domainOf(log[i-1].State.ID) {
				logger.Warn("chain verification failed", zap.String("versionId", entry.VersionID), zap.String("reason", "portability violation"))
				return nil, errPortabilityViolation(entry.VersionID, "DID domain changed while portable=false")
			}
		}

		if entry.Parameters != nil && entry.Parameters.Method != "" && entry.Parameters.Method != MethodVersion {
			return nil, errOther(entry.VersionID, "unsupported method version "+entry.Parameters.Method, nil)
		}

		if witness != nil && !opts.SkipWitnessCheck {
			if err := checkWitnessThreshold(entry, witness, opts.WitnessProofs); err != nil {
				return nil, err
			}
		}

		deactivated := entry.Parameters != nil && entry.Parameters.Deactivated

		lastResult = &ResolutionResult{
			Document: entry.State,
			Metadata: ResolutionMetadata{
				VersionID:   entry.VersionID,
				VersionTime: entry.VersionTime,
				Deactivated: deactivated,
			},
		}
		if ttl > 0 && !deactivated {
			lastResult.Metadata.NextUpdate = entryTime.Add(time.Duration(ttl) * time.Second).UTC().Format(time.RFC3339)
		}

		if opts.TargetVersionID != "" && entry.VersionID == opts.TargetVersionID {
			return lastResult, nil
		}
	}

	if opts.TargetVersionID != "" {
		return nil, newVerificationError(did.ErrorNotFound, opts.TargetVersionID, "requested versionId not found in log", nil)
	}
	if lastResult == nil {
		return nil, newVerificationError(did.ErrorNotFound, "", "no version exists at or before the requested time", nil)
	}
	return lastResult, nil
}

// resolveProofKey resolves a proof's verificationMethod to the public
// key it asserts, confirming that key's multibase form is present in
// signingKeys: either the verificationMethod IS the multibase key
// string itself, or it is an inline did:key reference to it.
func resolveProofKey(vm string, signingKeys []string) (ed25519.PublicKey, error) {
	for _, k := range signingKeys {
		if k == vm {
			return keys.PublicKeyFromMultibase(k)
		}
	}
	pub, err := publicKeyForVerificationMethod(vm)
	if err != nil {
		return nil, err
	}
	mb, err := multibaseEncodeEd25519(pub)
	if err != nil {
		return nil, err
	}
	for _, k := range signingKeys {
		if k == mb {
			return pub, nil
		}
	}
	return nil, fmt.Errorf("webvh: verificationMethod %s not present in effective updateKeys", vm)
}

// checkWitnessThreshold accumulates the weight of valid witness
// co-signatures submitted for entry and fails WitnessThreshold if the
// total falls short of witness.Threshold.
func checkWitnessThreshold(entry LogEntry, witness *Witness, proofs []WitnessProof) error {
	weightByID := make(map[string]int, len(witness.Witnesses))
	for _, w := range witness.Witnesses {
		weightByID[w.ID] = w.Weight
	}

	total := 0
	for _, wp := range proofs {
		if wp.VersionID != entry.VersionID {
			continue
		}
		for _, p := range wp.Proof {
			weight, known := weightByID[p.VerificationMethod]
			if !known {
				continue
			}
			pub, err := publicKeyForIdentifier(p.VerificationMethod)
			if err != nil {
				continue
			}
			if VerifyProof(entry, p, pub) == nil {
				total += weight
			}
		}
	}

	if total < witness.Threshold {
		logger.Warn("chain verification failed", zap.String("versionId", entry.VersionID), zap.String("reason", "witness threshold not met"), zap.Int("weight", total), zap.Int("threshold", witness.Threshold))
		return errWitnessThreshold(entry.VersionID, fmt.Sprintf("witness weight %d below threshold %d", total, witness.Threshold))
	}
	return nil
}
