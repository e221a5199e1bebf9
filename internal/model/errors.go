package model

import "errors"

// Domain error taxonomy. Layers wrap these with fmt.Errorf("...: %w", err)
// and handlers translate them to HTTP statuses with errors.Is.
var (
	// ErrUnknownCategory: the category is not in the configured set or its
	// storage location is absent. Config problem, not retryable.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrNotFound: document or record absent. Expected, user-correctable.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists: ingestion name collision. The original is untouched.
	ErrAlreadyExists = errors.New("document already exists")

	// ErrInvalidType: uploaded payload is not a well-formed PDF.
	ErrInvalidType = errors.New("payload is not a valid PDF")

	// ErrPersistence: a ledger or document write failed. The operation must
	// not be reported as successful.
	ErrPersistence = errors.New("persistence failure")

	// ErrMalformedLedger: a ledger blob failed to parse. Load degrades to an
	// empty collection instead of failing, but the condition is flagged.
	ErrMalformedLedger = errors.New("malformed ledger blob")
)
