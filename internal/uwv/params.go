package uwv

import (
	"fmt"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/san-kum/uwvdyn/internal/dynamo"
	"gopkg.in/yaml.v3"
)

// ModelType selects which damping and Coriolis terms are evaluated.
type ModelType int

const (
	// Simple uses linear plus diagonal quadratic damping, no Coriolis.
	Simple ModelType = iota
	// Intermediate adds the Coriolis/centripetal term to Simple.
	Intermediate
	// Complex uses one quadratic damping matrix per DOF plus Coriolis.
	Complex
)

func (t ModelType) String() string {
	switch t {
	case Simple:
		return "simple"
	case Intermediate:
		return "intermediate"
	case Complex:
		return "complex"
	default:
		return fmt.Sprintf("ModelType(%d)", int(t))
	}
}

// DampingCount is the number of damping matrices the model type needs, or 0
// for an unknown type.
func (t ModelType) DampingCount() int {
	switch t {
	case Simple, Intermediate:
		return 2
	case Complex:
		return dynamo.DOF
	default:
		return 0
	}
}

func ParseModelType(s string) (ModelType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "simple":
		return Simple, nil
	case "intermediate":
		return Intermediate, nil
	case "complex":
		return Complex, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownModelType, s)
	}
}

func (t ModelType) MarshalYAML() (interface{}, error) {
	if t.DampingCount() == 0 {
		return nil, fmt.Errorf("%w: %d", ErrUnknownModelType, int(t))
	}
	return t.String(), nil
}

func (t *ModelType) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseModelType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Parameters describes one vehicle. Forces are in newtons and offsets in
// metres, expressed in the marine body frame (z down).
type Parameters struct {
	// Inertia is rigid-body mass/inertia plus hydrodynamic added mass.
	Inertia   dynamo.Matrix6
	ModelType ModelType
	// DampingMatrices holds [linear, quadratic] for Simple and Intermediate,
	// and one quadratic matrix per DOF for Complex.
	DampingMatrices  []dynamo.Matrix6
	Weight           float64
	Buoyancy         float64
	CenterOfGravity  r3.Vector
	CenterOfBuoyancy r3.Vector
}

// Clone returns a deep copy; the damping slice is not shared.
func (p Parameters) Clone() Parameters {
	c := p
	if p.DampingMatrices != nil {
		c.DampingMatrices = make([]dynamo.Matrix6, len(p.DampingMatrices))
		copy(c.DampingMatrices, p.DampingMatrices)
	}
	return c
}

const (
	DefaultWeight   = 981.0
	DefaultBuoyancy = 1010.0
)

// DefaultParameters returns a slightly positively buoyant vehicle of about
// 100 kg with diagonal inertia and damping.
func DefaultParameters() Parameters {
	return Parameters{
		Inertia:   dynamo.Diagonal6(dynamo.Vector6{150, 150, 180, 15, 20, 20}),
		ModelType: Simple,
		DampingMatrices: []dynamo.Matrix6{
			dynamo.Diagonal6(dynamo.Vector6{30, 40, 50, 8, 10, 10}),
			dynamo.Diagonal6(dynamo.Vector6{60, 80, 100, 10, 12, 12}),
		},
		Weight:           DefaultWeight,
		Buoyancy:         DefaultBuoyancy,
		CenterOfGravity:  r3.Vector{},
		CenterOfBuoyancy: r3.Vector{Z: -0.05},
	}
}

// Validate checks parameter consistency without touching any model.
func Validate(p Parameters) error {
	if !p.Inertia.IsValid() {
		return ErrNonFiniteInertia
	}

	switch p.ModelType {
	case Simple, Intermediate:
		if len(p.DampingMatrices) != 2 {
			return ErrSimpleDampingCount
		}
	case Complex:
		if len(p.DampingMatrices) != dynamo.DOF {
			return ErrComplexDampingCount
		}
	default:
		return fmt.Errorf("%w: %d", ErrUnknownModelType, int(p.ModelType))
	}

	if !(p.Weight > 0) {
		return ErrNonPositiveWeight
	}
	if !(p.Buoyancy > 0) {
		return ErrNonPositiveBuoyancy
	}
	return nil
}
