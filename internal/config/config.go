package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/golang/geo/r3"
	"github.com/san-kum/uwvdyn/internal/dynamo"
	"github.com/san-kum/uwvdyn/internal/uwv"
	"gopkg.in/yaml.v3"
)

var (
	ErrMatrixShape  = errors.New("config: matrix needs exactly one of a 6x6 matrix or a 6-element diagonal")
	ErrVectorLength = errors.New("config: center offsets need exactly 3 elements")
)

// MatrixConfig is a 6x6 matrix written either in full or as its diagonal.
type MatrixConfig struct {
	Matrix   [][]float64 `yaml:"matrix,omitempty"`
	Diagonal []float64   `yaml:"diagonal,omitempty"`
}

// Vehicle is the on-disk form of a parameter set.
type Vehicle struct {
	Name             string         `yaml:"name"`
	ModelType        uwv.ModelType  `yaml:"model_type"`
	Inertia          MatrixConfig   `yaml:"inertia"`
	Damping          []MatrixConfig `yaml:"damping"`
	Weight           float64        `yaml:"weight"`
	Buoyancy         float64        `yaml:"buoyancy"`
	CenterOfGravity  []float64      `yaml:"center_of_gravity,flow"`
	CenterOfBuoyancy []float64      `yaml:"center_of_buoyancy,flow"`
}

func DefaultVehicle() *Vehicle {
	return FromParameters("default", uwv.DefaultParameters())
}

func Load(path string) (*Vehicle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Vehicle, error) {
	v := DefaultVehicle()
	if err := yaml.Unmarshal(data, v); err != nil {
		return nil, err
	}
	return v, nil
}

func Save(path string, v *Vehicle) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Parameters converts the file form and validates the result.
func (v *Vehicle) Parameters() (uwv.Parameters, error) {
	inertia, err := v.Inertia.Matrix6()
	if err != nil {
		return uwv.Parameters{}, fmt.Errorf("inertia: %w", err)
	}

	damping := make([]dynamo.Matrix6, 0, len(v.Damping))
	for i, d := range v.Damping {
		m, err := d.Matrix6()
		if err != nil {
			return uwv.Parameters{}, fmt.Errorf("damping[%d]: %w", i, err)
		}
		damping = append(damping, m)
	}

	cg, err := toVector(v.CenterOfGravity)
	if err != nil {
		return uwv.Parameters{}, fmt.Errorf("center_of_gravity: %w", err)
	}
	cb, err := toVector(v.CenterOfBuoyancy)
	if err != nil {
		return uwv.Parameters{}, fmt.Errorf("center_of_buoyancy: %w", err)
	}

	p := uwv.Parameters{
		Inertia:          inertia,
		ModelType:        v.ModelType,
		DampingMatrices:  damping,
		Weight:           v.Weight,
		Buoyancy:         v.Buoyancy,
		CenterOfGravity:  cg,
		CenterOfBuoyancy: cb,
	}
	if err := uwv.Validate(p); err != nil {
		return uwv.Parameters{}, fmt.Errorf("vehicle %q: %w", v.Name, err)
	}
	return p, nil
}

// FromParameters builds the file form, writing diagonal matrices compactly.
func FromParameters(name string, p uwv.Parameters) *Vehicle {
	v := &Vehicle{
		Name:             name,
		ModelType:        p.ModelType,
		Inertia:          fromMatrix6(p.Inertia),
		Damping:          make([]MatrixConfig, 0, len(p.DampingMatrices)),
		Weight:           p.Weight,
		Buoyancy:         p.Buoyancy,
		CenterOfGravity:  []float64{p.CenterOfGravity.X, p.CenterOfGravity.Y, p.CenterOfGravity.Z},
		CenterOfBuoyancy: []float64{p.CenterOfBuoyancy.X, p.CenterOfBuoyancy.Y, p.CenterOfBuoyancy.Z},
	}
	for _, d := range p.DampingMatrices {
		v.Damping = append(v.Damping, fromMatrix6(d))
	}
	return v
}

// UnmarshalYAML decodes into a zeroed value so a file's matrix form replaces
// the default's diagonal instead of being merged with it.
func (c *MatrixConfig) UnmarshalYAML(node *yaml.Node) error {
	type plain MatrixConfig
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*c = MatrixConfig(p)
	return nil
}

func (c MatrixConfig) Matrix6() (dynamo.Matrix6, error) {
	var m dynamo.Matrix6
	switch {
	case c.Matrix != nil && c.Diagonal == nil:
		if len(c.Matrix) != dynamo.DOF {
			return m, ErrMatrixShape
		}
		for i, row := range c.Matrix {
			if len(row) != dynamo.DOF {
				return m, ErrMatrixShape
			}
			copy(m[i][:], row)
		}
		return m, nil
	case c.Diagonal != nil && c.Matrix == nil:
		if len(c.Diagonal) != dynamo.DOF {
			return m, ErrMatrixShape
		}
		var d dynamo.Vector6
		copy(d[:], c.Diagonal)
		return dynamo.Diagonal6(d), nil
	default:
		return m, ErrMatrixShape
	}
}

func fromMatrix6(m dynamo.Matrix6) MatrixConfig {
	if m.IsDiagonal() {
		d := m.Diagonal()
		return MatrixConfig{Diagonal: append([]float64(nil), d[:]...)}
	}
	rows := make([][]float64, dynamo.DOF)
	for i := range m {
		rows[i] = append([]float64(nil), m[i][:]...)
	}
	return MatrixConfig{Matrix: rows}
}

func toVector(xs []float64) (r3.Vector, error) {
	if xs == nil {
		return r3.Vector{}, nil
	}
	if len(xs) != 3 {
		return r3.Vector{}, ErrVectorLength
	}
	return r3.Vector{X: xs[0], Y: xs[1], Z: xs[2]}, nil
}
