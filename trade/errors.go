package trade

import "errors"

var (
	// ErrValidation marks a missing or inconsistent argument. It is returned
	// before any computation starts.
	ErrValidation = errors.New("validation failed")

	// ErrComputation marks input that is well formed but cannot be
	// processed, such as an account whose first trade never closed.
	ErrComputation = errors.New("computation failed")
)
