package domain

import "errors"

// Sentinel errors shared across layers. Callers classify failures with
// errors.Is; every layer adds context with fmt.Errorf and %w.
var (
	// ErrNotFound indicates the target id no longer exists in the store,
	// typically because of a concurrent deletion.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates malformed input to a mutation (empty title,
	// cycle-creating reparent, unknown parent). No state changes.
	ErrValidation = errors.New("validation failed")

	// ErrReorderConflict indicates a section reorder could not be
	// persisted, e.g. the submitted id set is stale.
	ErrReorderConflict = errors.New("reorder conflict")

	// ErrTransport indicates the store could not be reached at all.
	ErrTransport = errors.New("transport failure")
)
