package canon

import "errors"

var (
	// ErrTooLarge indicates the input exceeds MaxDocumentSize.
	ErrTooLarge = errors.New("canon: document exceeds maximum size")

	// ErrMismatch indicates a computed digest did not match an expected one.
	ErrMismatch = errors.New("canon: hash mismatch")
)
