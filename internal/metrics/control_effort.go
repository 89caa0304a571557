package metrics

import (
	"math"

	"github.com/san-kum/uwvdyn/internal/dynamo"
)

// ControlEffort is the mean over samples of Σ|τᵢ|.
type ControlEffort struct {
	name    string
	sum     float64
	samples int
}

func NewControlEffort() *ControlEffort {
	return &ControlEffort{
		name: "control_effort",
	}
}

func (c *ControlEffort) Name() string {
	return c.name
}

func (c *ControlEffort) Observe(velocity, effort dynamo.Vector6) {
	for _, val := range effort {
		c.sum += math.Abs(val)
	}
	c.samples++
}

func (c *ControlEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *ControlEffort) Reset() {
	c.sum = 0
	c.samples = 0
}

// PeakEffort is the largest effort norm seen.
type PeakEffort struct {
	name string
	peak float64
}

func NewPeakEffort() *PeakEffort {
	return &PeakEffort{name: "peak_effort"}
}

func (p *PeakEffort) Name() string { return p.name }

func (p *PeakEffort) Observe(velocity, effort dynamo.Vector6) {
	p.peak = math.Max(p.peak, effort.Norm())
}

func (p *PeakEffort) Value() float64 { return p.peak }

func (p *PeakEffort) Reset() { p.peak = 0 }
