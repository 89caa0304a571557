package sweep

import (
	"fmt"
	"strings"

	"github.com/san-kum/uwvdyn/internal/dynamo"
)

// Dynamics is the inverse-dynamics evaluation a sweep needs.
type Dynamics interface {
	Effort(acceleration, velocity dynamo.Vector6, orientation dynamo.Orientation) (dynamo.Vector6, error)
}

// Observer sees every evaluated sample of a run, in order.
type Observer interface {
	OnSample(index int, velocity, effort dynamo.Vector6)
}

// Axis indexes a degree of freedom of a Vector6.
type Axis int

const (
	Surge Axis = iota
	Sway
	Heave
	Roll
	Pitch
	Yaw
)

var axisNames = [...]string{"surge", "sway", "heave", "roll", "pitch", "yaw"}

func (a Axis) String() string {
	if a < 0 || int(a) >= len(axisNames) {
		return fmt.Sprintf("Axis(%d)", int(a))
	}
	return axisNames[a]
}

func ParseAxis(s string) (Axis, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range axisNames {
		if s == name {
			return Axis(i), nil
		}
	}
	return 0, fmt.Errorf("unknown axis %q (want one of %s)", s, strings.Join(axisNames[:], ", "))
}

// Config describes a steady-state sweep: Samples evenly spaced constant
// velocities from From to To along Axis, every other velocity component
// taken from Base, evaluated at a fixed acceleration and orientation.
type Config struct {
	Axis           Axis
	From           float64
	To             float64
	Samples        int
	Base           dynamo.Vector6
	Acceleration   dynamo.Vector6
	Orientation    dynamo.Orientation
	ValidateEffort bool
}

func DefaultConfig() Config {
	return Config{
		Axis:           Surge,
		From:           0,
		To:             2,
		Samples:        41,
		Orientation:    dynamo.IdentityOrientation(),
		ValidateEffort: true,
	}
}

// Velocity returns the velocity evaluated at sample i.
func (c Config) Velocity(i int) dynamo.Vector6 {
	v := c.Base
	v[c.Axis] = c.value(i)
	return v
}

func (c Config) value(i int) float64 {
	if c.Samples <= 1 {
		return c.From
	}
	return c.From + (c.To-c.From)*float64(i)/float64(c.Samples-1)
}

type Result struct {
	Axis       Axis
	Speeds     []float64
	Velocities []dynamo.Vector6
	Efforts    []dynamo.Vector6
	Metrics    map[string]float64
}

// Component returns effort component dof for every sample.
func (r *Result) Component(dof int) []float64 {
	out := make([]float64, len(r.Efforts))
	for i, e := range r.Efforts {
		out[i] = e[dof]
	}
	return out
}

// SampleError reports the sample at which a sweep stopped.
type SampleError struct {
	Index   int
	Speed   float64
	Wrapped error
}

func (e *SampleError) Error() string {
	return fmt.Sprintf("sample %d (speed=%.4f): %v", e.Index, e.Speed, e.Wrapped)
}

func (e *SampleError) Unwrap() error {
	return e.Wrapped
}
