package sweep

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/san-kum/uwvdyn/internal/metrics"
)

// Ensemble runs several sweeps against the same dynamics concurrently. Each
// run gets its own metrics from newMetrics, so metric state is never shared.
type Ensemble struct {
	dyn        Dynamics
	newMetrics func() []metrics.Metric
	observers  []Observer
	log        zerolog.Logger
}

func NewEnsemble(dyn Dynamics, newMetrics func() []metrics.Metric, log zerolog.Logger) *Ensemble {
	return &Ensemble{dyn: dyn, newMetrics: newMetrics, log: log}
}

// AddObserver attaches o to every run. Runs call it from their own
// goroutines, so o must be safe for concurrent use.
func (e *Ensemble) AddObserver(o Observer) { e.observers = append(e.observers, o) }

// Run returns one result per config, in order, or the first error by index.
func (e *Ensemble) Run(ctx context.Context, cfgs []Config) ([]*Result, error) {
	results := make([]*Result, len(cfgs))
	errs := make([]error, len(cfgs))

	var wg sync.WaitGroup
	for i := range cfgs {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			r := New(e.dyn, e.log.With().Int("run", idx).Logger())
			if e.newMetrics != nil {
				for _, m := range e.newMetrics() {
					r.AddMetric(m)
				}
			}
			for _, o := range e.observers {
				r.AddObserver(o)
			}

			results[idx], errs[idx] = r.Run(ctx, cfgs[idx])
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
