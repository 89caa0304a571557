package metrics

import "github.com/san-kum/uwvdyn/internal/dynamo"

// Metric accumulates a scalar over the samples of a sweep.
type Metric interface {
	Name() string
	Observe(velocity, effort dynamo.Vector6)
	Value() float64
	Reset()
}

// Standard returns the metrics recorded for every stored sweep.
func Standard(limit float64) []Metric {
	return []Metric{
		NewControlEffort(),
		NewPeakEffort(),
		NewPower(),
		NewWithinLimits(limit),
	}
}
