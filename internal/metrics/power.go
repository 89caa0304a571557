package metrics

import "github.com/san-kum/uwvdyn/internal/dynamo"

// Power is the mean mechanical power v·τ delivered by the effort.
type Power struct {
	name    string
	total   float64
	samples int
}

func NewPower() *Power {
	return &Power{name: "mean_power"}
}

func (p *Power) Name() string { return p.name }

func (p *Power) Observe(velocity, effort dynamo.Vector6) {
	p.total += velocity.Dot(effort)
	p.samples++
}

func (p *Power) Value() float64 {
	if p.samples == 0 {
		return 0
	}
	return p.total / float64(p.samples)
}

func (p *Power) Reset() {
	p.total = 0
	p.samples = 0
}
