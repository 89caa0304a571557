package uwv

import (
	"sync"

	"github.com/san-kum/uwvdyn/internal/dynamo"
)

// Model evaluates the 6-DOF equation of motion
//
//	M·a + D(v)·v + C(v)·v + g(R) = τ
//
// in either direction. It holds one validated parameter set and the inverse
// inertia derived from it. A Model is safe for concurrent use.
type Model struct {
	mu         sync.RWMutex
	params     Parameters
	invInertia dynamo.Matrix6
}

// New returns a model configured with DefaultParameters.
func New() *Model {
	m, err := NewWithParameters(DefaultParameters())
	if err != nil {
		panic(err)
	}
	return m
}

func NewWithParameters(p Parameters) (*Model, error) {
	m := &Model{}
	if err := m.SetParameters(p); err != nil {
		return nil, err
	}
	return m, nil
}

// SetParameters validates p and, on success, replaces the parameters and the
// cached inverse inertia together. On failure the model is unchanged and the
// error is a *ConfigError.
func (m *Model) SetParameters(p Parameters) error {
	if err := Validate(p); err != nil {
		return &ConfigError{Wrapped: err}
	}

	p = p.Clone()
	inv, err := InvertInertia(p.Inertia)
	if err != nil {
		return &ConfigError{Wrapped: err}
	}

	m.mu.Lock()
	m.params = p
	m.invInertia = inv
	m.mu.Unlock()
	return nil
}

// Parameters returns a copy of the active parameters.
func (m *Model) Parameters() Parameters {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.params.Clone()
}

func (m *Model) InverseInertia() dynamo.Matrix6 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.invInertia
}

// Acceleration solves for a given control input τ:
//
//	a = M⁻¹·(τ − g(R) − D(v)·v − C(v)·v)
func (m *Model) Acceleration(controlInput, velocity dynamo.Vector6, orientation dynamo.Orientation) (dynamo.Vector6, error) {
	const op = "acceleration"
	if controlInput.HasNaN() {
		return dynamo.Vector6{}, &InputError{Op: op, Wrapped: ErrControlInputUnset}
	}
	if velocity.HasNaN() {
		return dynamo.Vector6{}, &InputError{Op: op, Wrapped: ErrVelocityUnset}
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	dc, err := dampingAndCoriolis(&m.params, velocity)
	if err != nil {
		return dynamo.Vector6{}, &InputError{Op: op, Wrapped: err}
	}
	net := controlInput.Sub(gravityBuoyancy(&m.params, orientation)).Sub(dc)
	return m.invInertia.MulVec(net), nil
}

// Effort solves for the control input producing acceleration a:
//
//	τ = M·a + g(R) + D(v)·v + C(v)·v
func (m *Model) Effort(acceleration, velocity dynamo.Vector6, orientation dynamo.Orientation) (dynamo.Vector6, error) {
	const op = "effort"
	if acceleration.HasNaN() {
		return dynamo.Vector6{}, &InputError{Op: op, Wrapped: ErrAccelerationUnset}
	}
	if velocity.HasNaN() {
		return dynamo.Vector6{}, &InputError{Op: op, Wrapped: ErrVelocityUnset}
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	dc, err := dampingAndCoriolis(&m.params, velocity)
	if err != nil {
		return dynamo.Vector6{}, &InputError{Op: op, Wrapped: err}
	}
	tau := m.params.Inertia.MulVec(acceleration).Add(gravityBuoyancy(&m.params, orientation))
	return tau.Add(dc), nil
}

// GravityBuoyancy evaluates the restoring term with the active parameters.
func (m *Model) GravityBuoyancy(orientation dynamo.Orientation) dynamo.Vector6 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return gravityBuoyancy(&m.params, orientation)
}

// DampingAndCoriolis evaluates the velocity-dependent terms selected by the
// active model type.
func (m *Model) DampingAndCoriolis(velocity dynamo.Vector6) (dynamo.Vector6, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return dampingAndCoriolis(&m.params, velocity)
}

func gravityBuoyancy(p *Parameters, orientation dynamo.Orientation) dynamo.Vector6 {
	return GravityBuoyancy(orientation, p.Weight, p.Buoyancy, p.CenterOfGravity, p.CenterOfBuoyancy)
}

func dampingAndCoriolis(p *Parameters, velocity dynamo.Vector6) (dynamo.Vector6, error) {
	switch p.ModelType {
	case Simple:
		return SimpleDamping(p.DampingMatrices, velocity)
	case Intermediate:
		d, err := SimpleDamping(p.DampingMatrices, velocity)
		if err != nil {
			return dynamo.Vector6{}, err
		}
		return Coriolis(p.Inertia, velocity).Add(d), nil
	case Complex:
		d, err := GeneralQuadDamping(p.DampingMatrices, velocity)
		if err != nil {
			return dynamo.Vector6{}, err
		}
		return Coriolis(p.Inertia, velocity).Add(d), nil
	default:
		return dynamo.Vector6{}, ErrUnknownModelType
	}
}
