package webvh

import (
	"time"

	"github.com/ParichayaHQ/credence/internal/did"
	"github.com/go-playground/validator/v10"
)

// validate is the package-level validator instance, the same shape as
// the teacher's internal/events/validation.go: one *validator.Validate,
// custom validators registered once in init. It covers the single-struct
// checks over webvh's wire structs (Parameters, Witness, WitnessWeight,
// LogEntry); cross-entry invariants (pre-rotation commitments, hash-chain
// continuity) span more than one struct and stay hand-checked in
// update.go and resolve.go.
var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("did", validateDIDField)
	validate.RegisterValidation("versiontime", validateVersionTimeField)
	validate.RegisterValidation("witnessweight", validateWitnessWeightField)
	validate.RegisterStructValidation(validateWitnessStruct, Witness{})
}

// validateDIDField accepts either a bare multibase public-key string or an
// inline did:key reference — the same two forms resolveProofKey and
// checkWitnessThreshold already accept for an update-key or witness
// identifier.
func validateDIDField(fl validator.FieldLevel) bool {
	id := fl.Field().String()
	if id == "" {
		return false
	}
	_, err := publicKeyForIdentifier(id)
	return err == nil
}

// validateVersionTimeField requires an RFC3339 timestamp.
func validateVersionTimeField(fl validator.FieldLevel) bool {
	_, err := time.Parse(time.RFC3339, fl.Field().String())
	return err == nil
}

// validateWitnessWeightField requires a positive witness weight.
func validateWitnessWeightField(fl validator.FieldLevel) bool {
	return fl.Field().Int() > 0
}

// validateWitnessStruct enforces that Threshold falls in
// (0, sum(Witnesses[].Weight)] — the cross-field invariant
// CreateBuilder.WitnessConfig used to check by hand.
func validateWitnessStruct(sl validator.StructLevel) {
	w := sl.Current().Interface().(Witness)
	sum := 0
	for _, ww := range w.Witnesses {
		sum += ww.Weight
	}
	if w.Threshold <= 0 || w.Threshold > sum {
		sl.ReportError(w.Threshold, "Threshold", "Threshold", "thresholdrange", "")
	}
}

// ValidateLogEntry runs struct-tag and custom-validator checks over a
// fully-assembled entry (called once VersionID and Parameters are set).
func ValidateLogEntry(entry *LogEntry) error {
	if err := validate.Struct(entry); err != nil {
		return did.NewDIDErrorWithCause(did.ErrorInvalidDocument, "log entry failed validation", err)
	}
	return nil
}
