package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidState indicates a state vector with invalid dimensions or values.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrUnstable indicates the simulation became numerically unstable.
	ErrUnstable = errors.New("dynamo: simulation unstable (state diverged)")

	// ErrUnknownParam indicates a parameter name the system does not expose.
	ErrUnknownParam = errors.New("dynamo: unknown parameter")

	// ErrDimensionMismatch indicates mismatched state/system dimensions.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between state and system")
)

// StepError wraps an error with the step at which it happened.
type StepError struct {
	Step    int
	Time    float64
	State   State
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
