package uwv

import (
	"errors"
	"fmt"
)

// Parameter consistency errors, reported by Validate and SetParameters.
var (
	ErrSimpleDampingCount = errors.New("uwv: in SIMPLE and INTERMEDIATE models, damping matrices should have two elements, the linear damping matrix and quadratic damping matrix")

	ErrComplexDampingCount = errors.New("uwv: in COMPLEX model, damping matrices should have six elements, one quadratic damping matrix per DOF")

	ErrNonPositiveWeight = errors.New("uwv: weight must be a positive value")

	ErrNonPositiveBuoyancy = errors.New("uwv: buoyancy must be a positive value")

	ErrUnknownModelType = errors.New("uwv: unknown model type")

	ErrNonFiniteInertia = errors.New("uwv: inertia matrix holds NaN or Inf")

	ErrInertiaInversion = errors.New("uwv: inertia matrix could not be inverted")
)

// Evaluation errors, reported by Acceleration, Effort and the damping terms.
var (
	ErrControlInputUnset = errors.New("uwv: control input is unset (NaN)")

	ErrVelocityUnset = errors.New("uwv: velocity is unset (NaN)")

	ErrAccelerationUnset = errors.New("uwv: acceleration is unset (NaN)")

	ErrSimpleDampingLength = errors.New("uwv: damping matrices do not have 2 elements")

	ErrQuadDampingLength = errors.New("uwv: quadratic damping matrices do not have 6 elements")
)

// ConfigError marks a rejected parameter set. The model keeps its previous
// parameters.
type ConfigError struct {
	Wrapped error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid parameters: %v", e.Wrapped)
}

func (e *ConfigError) Unwrap() error {
	return e.Wrapped
}

// InputError marks a failed evaluation call.
type InputError struct {
	Op      string
	Wrapped error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Wrapped)
}

func (e *InputError) Unwrap() error {
	return e.Wrapped
}
