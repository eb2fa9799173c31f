package simulate

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simlab/adapters/rng"
	"simlab/adapters/stats/tests"
	"simlab/domain/simulation"
	"simlab/internal/errors"
)

func newTestRunner() *Runner {
	r := NewRunner(tests.NewBattery(), rng.NewSeededRNG())
	r.SetMaxWorkers(4)
	r.SetHistogramBins(20)
	return r
}

func nullParams(trials int, seed int64) simulation.Params {
	p := simulation.DefaultParams()
	p.Trials = trials
	p.Seed = seed
	return p
}

func TestRunner_DeterministicForFixedSeed(t *testing.T) {
	runner := newTestRunner()
	ctx := context.Background()

	first, err := runner.Run(ctx, nullParams(500, 1234))
	require.NoError(t, err)
	second, err := runner.Run(ctx, nullParams(500, 1234))
	require.NoError(t, err)

	// Identical seed means identical trial streams regardless of worker
	// scheduling, so the full series must match exactly.
	assert.Equal(t, first.Series, second.Series)
	assert.Equal(t, first.Summaries, second.Summaries)

	third, err := runner.Run(ctx, nullParams(500, 99))
	require.NoError(t, err)
	assert.NotEqual(t, first.Series, third.Series, "different seeds should produce different draws")
}

func TestRunner_NullCalibration(t *testing.T) {
	runner := newTestRunner()

	run, err := runner.Run(context.Background(), nullParams(4000, 42))
	require.NoError(t, err)
	require.Len(t, run.Summaries, 3)

	for _, s := range run.Summaries {
		// Under the null every test should reject near alpha. The z
		// approximation runs a little hot at n=30; bound it loosely.
		assert.Greater(t, s.RejectionRate, 0.02, "%s rejection rate too low", s.TestName)
		assert.Less(t, s.RejectionRate, 0.10, "%s rejection rate too high", s.TestName)

		// p-values should be near-uniform: mean ~0.5, median ~0.5
		assert.InDelta(t, 0.5, s.PValueSummary.Mean, 0.05, "%s p-value mean", s.TestName)
		assert.InDelta(t, 0.5, s.PValueSummary.Median, 0.07, "%s p-value median", s.TestName)

		// Statistic distribution should be centered at zero
		assert.InDelta(t, 0.0, s.StatSummary.Mean, 0.08, "%s statistic mean", s.TestName)
	}
}

func TestRunner_PowerUnderShiftedAlternative(t *testing.T) {
	runner := newTestRunner()

	params := nullParams(1500, 42)
	params.Mean2 = 1.0 // one standard deviation apart at n=30 per group

	run, err := runner.Run(context.Background(), params)
	require.NoError(t, err)

	for _, s := range run.Summaries {
		assert.Greater(t, s.RejectionRate, 0.90, "%s should reject nearly always under a 1-sigma shift", s.TestName)
	}
}

func TestRunner_UnequalVariancesWelchVsStudent(t *testing.T) {
	runner := newTestRunner()

	// Classic Behrens-Fisher setup: small high-variance group against a
	// large low-variance group inflates Student's false positive rate.
	params := nullParams(4000, 7)
	params.N1 = 10
	params.StdDev1 = 4
	params.N2 = 100
	params.StdDev2 = 1

	run, err := runner.Run(context.Background(), params)
	require.NoError(t, err)

	welch, ok := run.Summary(tests.TestNameWelch)
	require.True(t, ok)
	student, ok := run.Summary(tests.TestNameStudent)
	require.True(t, ok)

	assert.InDelta(t, params.Alpha, welch.RejectionRate, 0.03, "welch should hold its size")
	assert.Greater(t, student.RejectionRate, welch.RejectionRate+0.05,
		"student should over-reject when variances and sizes are unbalanced")
}

func TestRunner_InvalidParams(t *testing.T) {
	runner := newTestRunner()
	ctx := context.Background()

	cases := []simulation.Params{
		{StdDev1: 0, StdDev2: 1, N1: 30, N2: 30, Trials: 100, Alpha: 0.05},
		{StdDev1: 1, StdDev2: 1, N1: 1, N2: 30, Trials: 100, Alpha: 0.05},
		{StdDev1: 1, StdDev2: 1, N1: 30, N2: 30, Trials: 0, Alpha: 0.05},
		{StdDev1: 1, StdDev2: 1, N1: 30, N2: 30, Trials: 100, Alpha: 1.5},
	}

	for i, params := range cases {
		_, err := runner.Run(ctx, params)
		require.Error(t, err, "case %d", i)
		assert.Equal(t, errors.CodeInvalidParams, errors.GetCode(err), "case %d", i)
	}
}

func TestRunner_Cancellation(t *testing.T) {
	runner := newTestRunner()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Run(ctx, nullParams(10000, 42))
	require.Error(t, err)
	assert.Equal(t, errors.CodeRunCancelled, errors.GetCode(err))
}

// failingRNG errors on every trial stream
type failingRNG struct{}

func (failingRNG) SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error) {
	return nil, fmt.Errorf("stream %s unavailable", name)
}

func (failingRNG) TrialStream(ctx context.Context, runSeed int64, trial int) (*rand.Rand, error) {
	return nil, fmt.Errorf("stream for trial %d unavailable", trial)
}

func TestRunner_StreamFailureFailsRun(t *testing.T) {
	runner := NewRunner(tests.NewBattery(), failingRNG{})
	runner.SetMaxWorkers(2)

	// A swallowed stream error would leave zero-filled p-values behind,
	// and p = 0 counts as a rejection in every test.
	run, err := runner.Run(context.Background(), nullParams(100, 42))
	require.Error(t, err)
	assert.Nil(t, run)
	assert.Contains(t, err.Error(), "trial stream failed")
}

func TestRunner_ZeroSeedDerivesOne(t *testing.T) {
	runner := newTestRunner()

	run, err := runner.Run(context.Background(), nullParams(50, 0))
	require.NoError(t, err)
	assert.NotZero(t, run.Params.Seed, "run should record the derived seed for replay")
}

func TestRunner_EqualSampleSizesAgreeOnStatistic(t *testing.T) {
	runner := newTestRunner()

	run, err := runner.Run(context.Background(), nullParams(50, 11))
	require.NoError(t, err)
	require.Len(t, run.Series, 3)

	// With n1 == n2 the pooled and unpooled standard errors coincide, so
	// all three procedures compute the same statistic trial by trial.
	for trial := 0; trial < 50; trial++ {
		base := run.Series[0].Statistics[trial]
		for _, series := range run.Series[1:] {
			assert.InDelta(t, base, series.Statistics[trial], 1e-9,
				"trial %d: %s statistic diverged", trial, series.TestName)
		}
	}
}
