package webvh

import "github.com/ParichayaHQ/credence/internal/did"

// VerificationError reports a resolution-time invariant violation,
// naming the log entry (by versionId) at which the chain first broke.
type VerificationError struct {
	Code      string
	Message   string
	VersionID string
	Cause     error
}

func (e *VerificationError) Error() string {
	msg := e.Code + ": " + e.Message
	if e.VersionID != "" {
		msg += " (versionId=" + e.VersionID + ")"
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *VerificationError) Unwrap() error {
	return e.Cause
}

func newVerificationError(code, versionID, message string, cause error) *VerificationError {
	return &VerificationError{Code: code, Message: message, VersionID: versionID, Cause: cause}
}

// Error kind constructors, one per §7 error kind relevant to the log
// engine (InvalidDid/MethodNotSupported/RepresentationNotSupported/
// NotFound are owned by the did/didweb packages instead).

func errProofVerification(versionID, message string, cause error) error {
	return newVerificationError(did.ErrorProofVerification, versionID, message, cause)
}

func errPreRotationMismatch(versionID, message string) error {
	return newVerificationError(did.ErrorPreRotationMismatch, versionID, message, nil)
}

func errChainBroken(versionID, message string) error {
	return newVerificationError(did.ErrorChainBroken, versionID, message, nil)
}

func errScidMismatch(versionID, message string) error {
	return newVerificationError(did.ErrorScidMismatch, versionID, message, nil)
}

func errWitnessThreshold(versionID, message string) error {
	return newVerificationError(did.ErrorWitnessThreshold, versionID, message, nil)
}

func errPortabilityViolation(versionID, message string) error {
	return newVerificationError(did.ErrorPortabilityViolation, versionID, message, nil)
}

func errOther(versionID, message string, cause error) error {
	return newVerificationError(did.ErrorOther, versionID, message, cause)
}
