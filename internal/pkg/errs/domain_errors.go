package errs

import "errors"

// Failure taxonomy shared by the usecase layer. Handlers map these to HTTP
// statuses; nothing below this layer should reference transport concerns.
var (
	// ErrNotFound means a referenced entity is absent.
	ErrNotFound = errors.New("not found")

	// ErrConflict means an overlapping hold or duplicate resource.
	ErrConflict = errors.New("conflict")

	// ErrInvalidState means the operation is not permitted in the entity's
	// current lifecycle state.
	ErrInvalidState = errors.New("invalid state")

	// ErrUnavailable covers both "no rooms match" and downstream
	// timeout/connection failures. Callers get it after a single attempt;
	// retrying a non-idempotent hold or charge risks duplication.
	ErrUnavailable = errors.New("unavailable")

	// ErrDeclined is a payment business rejection, not a transport failure.
	ErrDeclined = errors.New("payment declined")

	// ErrInvalid means malformed or out-of-range input.
	ErrInvalid = errors.New("invalid input")
)
