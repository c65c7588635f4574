package domain

import "errors"

// Error kinds surfaced by the calculation core. Callers classify with
// errors.Is; the wrapped message names the offending field and value.
var (
	// ErrInvalidInput reports a caller-supplied numeric value that
	// violates a stated invariant (negative premium, zero term, ...).
	// Detected synchronously at the boundary, never clamped.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidParameter reports a strategy whose own fields are
	// inconsistent with the plan it is evaluated against.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrDegenerate reports a calculation that would divide by zero
	// outside the explicitly handled zero-yield branches.
	ErrDegenerate = errors.New("degenerate arithmetic")
)
