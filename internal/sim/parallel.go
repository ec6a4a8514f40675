package sim

import (
	"context"
	"sync"

	"github.com/san-kum/partsim/internal/particles"
)

// Ensemble runs independent copies of an effect with consecutive seeds. The
// copies share the base effect's renderers, so ensembles are meant for effects
// built without a batch.
type Ensemble struct {
	base       *particles.Effect
	numRuns    int
	seedStart  uint64
	newMetrics func() []Metric
}

// NewEnsemble prepares numRuns copies of e. newMetrics, if set, gives each run
// its own metric instances.
func NewEnsemble(e *particles.Effect, numRuns int, seedStart uint64, newMetrics func() []Metric) *Ensemble {
	return &Ensemble{base: e, numRuns: numRuns, seedStart: seedStart, newMetrics: newMetrics}
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	// Copy counts copies on the base controllers, so it happens before the
	// runs fan out.
	copies := make([]*particles.Effect, e.numRuns)
	for i := range copies {
		copies[i] = e.base.Copy()
	}

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := cfg
			cfgCopy.Seed = e.seedStart + uint64(idx)*uint64(len(e.base.Controllers)+1)

			effect := copies[idx]
			defer effect.Dispose()

			s := New(effect, nil)
			if e.newMetrics != nil {
				for _, m := range e.newMetrics() {
					s.AddMetric(m)
				}
			}
			results[idx], errs[idx] = s.Run(ctx, cfgCopy)
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
