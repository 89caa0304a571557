package metrics

import (
	"math"

	"github.com/san-kum/uwvdyn/internal/dynamo"
)

// WithinLimits is the fraction of samples whose every effort component stays
// within ±limit. A non-positive limit disables the check.
type WithinLimits struct {
	name       string
	limit      float64
	violations int
	samples    int
}

func NewWithinLimits(limit float64) *WithinLimits {
	return &WithinLimits{
		name:  "within_limits",
		limit: limit,
	}
}

func (w *WithinLimits) Name() string {
	return w.name
}

func (w *WithinLimits) Observe(velocity, effort dynamo.Vector6) {
	w.samples++
	if w.limit <= 0 {
		return
	}
	for _, val := range effort {
		if math.Abs(val) > w.limit {
			w.violations++
			break
		}
	}
}

func (w *WithinLimits) Value() float64 {
	if w.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(w.violations)/float64(w.samples)
}

func (w *WithinLimits) Reset() {
	w.violations = 0
	w.samples = 0
}
