package feasibility

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when a required field is missing, non-positive or not finite.
	ErrInvalidInput = errors.New("invalid input")
	// ErrDegenerateScenario is returned when the parcel yields no whole plot.
	ErrDegenerateScenario = errors.New("degenerate scenario")
	// ErrDivisionDegenerate is returned when total cost is zero and ROI is undefined.
	ErrDivisionDegenerate = errors.New("total cost is zero")
	// ErrNoPayback is returned by BreakevenAnalysis.Payback when net profit is not positive.
	ErrNoPayback = errors.New("no payback: net profit is not positive")
	// ErrEmptyBatch is returned when a comparison is requested for zero scenarios.
	ErrEmptyBatch = errors.New("no scenarios to compare")
)

// InputError identifies the scenario field that failed validation.
type InputError struct {
	Field  string
	Value  any
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s %s (got %v)", ErrInvalidInput, e.Field, e.Reason, e.Value)
}

func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}
