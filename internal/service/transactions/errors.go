package transactions

import "errors"

// Error taxonomy for mutations. Handlers map these onto HTTP statuses; bulk
// operations fold per-item occurrences into the result summary instead.
var (
	// ErrValidation rejects malformed or out-of-range input before any mutation.
	ErrValidation = errors.New("invalid transaction input")
	// ErrConflict rejects mutations against blocked coordinates or occupancy
	// rule violations. No partial state change occurs.
	ErrConflict = errors.New("location state conflict")
	// ErrNotFound surfaces stale references to lots that no longer exist.
	ErrNotFound = errors.New("lot not found")
	// ErrForbidden surfaces a failed authorization capability check.
	ErrForbidden = errors.New("actor not permitted")
	// ErrPersistence wraps storage failures verbatim. The engine never retries;
	// retry policy belongs to the persistence collaborator.
	ErrPersistence = errors.New("persistence failure")
)
