package sweep

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"github.com/san-kum/uwvdyn/internal/dynamo"
	"github.com/san-kum/uwvdyn/internal/metrics"
)

type Runner struct {
	dyn       Dynamics
	metrics   []metrics.Metric
	observers []Observer
	log       zerolog.Logger
}

func New(dyn Dynamics, log zerolog.Logger) *Runner {
	return &Runner{
		dyn:       dyn,
		metrics:   make([]metrics.Metric, 0),
		observers: make([]Observer, 0),
		log:       log,
	}
}

func (r *Runner) AddMetric(m metrics.Metric) { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer)     { r.observers = append(r.observers, o) }

// Run evaluates every sample in order. On failure it returns the samples
// gathered so far together with the error.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	result := &Result{
		Axis:       cfg.Axis,
		Speeds:     make([]float64, 0, cfg.Samples),
		Velocities: make([]dynamo.Vector6, 0, cfg.Samples),
		Efforts:    make([]dynamo.Vector6, 0, cfg.Samples),
		Metrics:    make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	for i := 0; i < cfg.Samples; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		v := cfg.Velocity(i)
		speed := v[cfg.Axis]

		effort, err := r.dyn.Effort(cfg.Acceleration, v, cfg.Orientation)
		if err != nil {
			return result, &SampleError{Index: i, Speed: speed, Wrapped: err}
		}
		if cfg.ValidateEffort && !effort.IsValid() {
			return result, &SampleError{Index: i, Speed: speed, Wrapped: dynamo.ErrInvalidVector}
		}

		for _, m := range r.metrics {
			m.Observe(v, effort)
		}
		for _, obs := range r.observers {
			obs.OnSample(i, v, effort)
		}

		result.Speeds = append(result.Speeds, speed)
		result.Velocities = append(result.Velocities, v)
		result.Efforts = append(result.Efforts, effort)
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	r.log.Debug().
		Str("axis", cfg.Axis.String()).
		Int("samples", len(result.Efforts)).
		Float64("from", cfg.From).
		Float64("to", cfg.To).
		Msg("sweep finished")

	return result, nil
}

func validateConfig(cfg Config) error {
	if cfg.Axis < Surge || cfg.Axis > Yaw {
		return fmt.Errorf("axis out of range: %d", int(cfg.Axis))
	}
	if cfg.Samples <= 0 {
		return fmt.Errorf("samples must be positive, got %d", cfg.Samples)
	}
	if math.IsNaN(cfg.From) || math.IsInf(cfg.From, 0) || math.IsNaN(cfg.To) || math.IsInf(cfg.To, 0) {
		return fmt.Errorf("sweep range must be finite, got [%v, %v]", cfg.From, cfg.To)
	}
	return nil
}
