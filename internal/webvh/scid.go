package webvh

import (
	"strings"

	"github.com/ParichayaHQ/credence/internal/did"
)

// DeriveSCID implements the SCID derivation procedure for a genesis
// entry that already has SCIDPlaceholder substituted everywhere it will
// appear (the DID, state.id, service ids, and parameters.scid): it
// canonicalizes and hashes the entry with an empty proof field present,
// then returns that hash as the derived SCID.
func DeriveSCID(placeholderEntry LogEntry) (string, error) {
	return scidHash(placeholderEntry)
}

// SubstituteSCID textually replaces every occurrence of SCIDPlaceholder
// in entry's Parameters (scid, updateKeys, nextKeyHashes, witness ids)
// and State (via did.SubstitutePlaceholder) with scid. VersionID,
// VersionTime and Proof are left untouched; VersionID is computed
// afterward from the substituted entry.
func SubstituteSCID(entry LogEntry, scid string) LogEntry {
	return substituteToken(entry, SCIDPlaceholder, scid)
}

// UnsubstituteSCID is the inverse of SubstituteSCID: it restores
// SCIDPlaceholder wherever realSCID currently appears, so a genesis
// entry already carrying its derived SCID can be re-hashed to verify
// that SCID was derived correctly.
func UnsubstituteSCID(entry LogEntry, realSCID string) LogEntry {
	return substituteToken(entry, realSCID, SCIDPlaceholder)
}

func substituteToken(entry LogEntry, from, to string) LogEntry {
	out := entry
	if entry.Parameters != nil {
		params := *entry.Parameters
		params.SCID = strings.ReplaceAll(params.SCID, from, to)
		params.UpdateKeys = substituteAll(params.UpdateKeys, from, to)
		params.NextKeyHashes = substituteAll(params.NextKeyHashes, from, to)
		if params.Witness != nil {
			w := *params.Witness
			ws := make([]WitnessWeight, len(w.Witnesses))
			for i, ww := range w.Witnesses {
				ww.ID = strings.ReplaceAll(ww.ID, from, to)
				ws[i] = ww
			}
			w.Witnesses = ws
			params.Witness = &w
		}
		out.Parameters = &params
	}
	if entry.State != nil {
		out.State = did.SubstitutePlaceholder(entry.State, from, to)
	}
	return out
}

func substituteAll(values []string, from, to string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ReplaceAll(v, from, to)
	}
	return out
}
