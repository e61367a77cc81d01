package settlement

import "errors"

var (
	// ErrInvalidInput marks inputs the engine refuses to compute on:
	// missing categories, negative or non-finite costs, share mismatches.
	ErrInvalidInput = errors.New("invalid input")

	// ErrProcessNotFound is returned when the aggregate root referenced by
	// a settlement call does not exist in the caller-supplied context.
	ErrProcessNotFound = errors.New("process not found")

	// ErrInconsistentState marks an allocation over a problem item whose
	// damage type is still unset. The orchestrator must finish
	// classification first; the engine never guesses a default.
	ErrInconsistentState = errors.New("inconsistent state")

	ErrInvalidTransition = errors.New("invalid status transition")
)
