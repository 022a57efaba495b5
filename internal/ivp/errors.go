package ivp

import (
	"errors"
	"fmt"
)

// Domain errors for integration calls.
var (
	// ErrInvalidParameter indicates a malformed interval, step count or
	// step-control parameter. No integration work is done.
	ErrInvalidParameter = errors.New("ivp: invalid parameter")

	// ErrStepUnderflow indicates the adaptive controller could not meet the
	// tolerance without shrinking the step below its minimum.
	ErrStepUnderflow = errors.New("ivp: step size below minimum")

	// ErrNonFinite indicates f produced NaN or Inf during integration.
	ErrNonFinite = errors.New("ivp: non-finite derivative")

	// ErrUnknownMethod indicates a method name that is not registered.
	ErrUnknownMethod = errors.New("ivp: unknown method")

	// ErrUnknownProblem indicates a problem name that is not in the catalog.
	ErrUnknownProblem = errors.New("ivp: unknown problem")
)

// StepUnderflowError records where the adaptive controller gave up. It is
// returned alongside the trajectory accumulated so far.
type StepUnderflowError struct {
	T    float64
	H    float64
	HMin float64
}

func (e *StepUnderflowError) Error() string {
	return fmt.Sprintf("%v: h=%g < hmin=%g at t=%g", ErrStepUnderflow, e.H, e.HMin, e.T)
}

func (e *StepUnderflowError) Unwrap() error {
	return ErrStepUnderflow
}

// Invalid wraps ErrInvalidParameter with a description of the offending value.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))
}
