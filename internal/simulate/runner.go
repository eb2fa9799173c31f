package simulate

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"simlab/adapters/stats/tests"
	"simlab/domain/core"
	"simlab/domain/simulation"
	"simlab/internal/errors"
	"simlab/ports"
)

// Runner executes Monte Carlo simulation runs: per trial it draws the two
// Gaussian samples and applies every test procedure in the battery.
type Runner struct {
	battery    *tests.Battery
	rngPort    ports.RNGPort
	maxWorkers int
	histBins   int
}

// NewRunner creates a runner with default worker and histogram settings
func NewRunner(battery *tests.Battery, rngPort ports.RNGPort) *Runner {
	return &Runner{
		battery:    battery,
		rngPort:    rngPort,
		maxWorkers: 4,
		histBins:   40,
	}
}

// SetMaxWorkers bounds the number of concurrent trial workers
func (r *Runner) SetMaxWorkers(n int) {
	if n < 1 {
		n = 1
	}
	r.maxWorkers = n
}

// SetHistogramBins configures the bin count used during aggregation
func (r *Runner) SetHistogramBins(n int) {
	if n < 2 {
		n = 2
	}
	r.histBins = n
}

// Run executes the full simulation and aggregates the results.
// Deterministic for a fixed non-zero seed: every trial derives its own
// RNG stream from the run seed, so worker scheduling cannot reorder draws.
func (r *Runner) Run(ctx context.Context, params simulation.Params) (*simulation.Run, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	seed := params.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
		params.Seed = seed
	}

	workers := params.Workers
	if workers <= 0 || workers > r.maxWorkers {
		workers = r.maxWorkers
	}
	if params.Trials < workers {
		workers = params.Trials
	}

	names := r.battery.Names()
	series := make([]simulation.TrialSeries, len(names))
	for i, name := range names {
		series[i] = simulation.TrialSeries{
			TestName:   name,
			Statistics: make([]float64, params.Trials),
			PValues:    make([]float64, params.Trials),
		}
	}

	started := time.Now()
	sem := semaphore.NewWeighted(int64(workers))

	// A failed trial must fail the whole run: its slots would otherwise
	// stay zero, and a zero p-value counts as a rejection.
	var errMu sync.Mutex
	var streamErr error

	for trial := 0; trial < params.Trials; trial++ {
		if err := sem.Acquire(ctx, 1); err != nil {
			return nil, errors.RunCancelled(err)
		}

		go func(trial int) {
			defer sem.Release(1)

			rng, err := r.rngPort.TrialStream(ctx, seed, trial)
			if err != nil {
				errMu.Lock()
				if streamErr == nil {
					streamErr = err
				}
				errMu.Unlock()
				return
			}

			x := drawGaussian(rng, params.N1, params.Mean1, params.StdDev1)
			y := drawGaussian(rng, params.N2, params.Mean2, params.StdDev2)

			// Each worker writes only its own trial index, so the series
			// slices need no locking.
			for ti, res := range r.battery.CompareAll(x, y) {
				series[ti].Statistics[trial] = res.Statistic
				series[ti].PValues[trial] = res.PValue
			}
		}(trial)
	}

	// Drain: wait for all in-flight trials before aggregating
	if err := sem.Acquire(ctx, int64(workers)); err != nil {
		return nil, errors.RunCancelled(err)
	}
	if streamErr != nil {
		return nil, errors.Wrap(streamErr, "trial stream failed")
	}

	summaries := make([]simulation.TestSummary, len(series))
	for i, s := range series {
		summaries[i] = Summarize(s, params.Alpha, r.histBins)
	}

	return &simulation.Run{
		ID:        core.NewRunID(),
		Params:    params,
		Summaries: summaries,
		Series:    series,
		Elapsed:   time.Since(started),
		CreatedAt: core.Now(),
	}, nil
}
