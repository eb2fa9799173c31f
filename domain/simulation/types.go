package simulation

import (
	"time"

	"simlab/domain/core"
	"simlab/internal/errors"
)

// Params holds everything needed to reproduce a simulation run: the two
// population distributions, per-group sample sizes, trial count,
// significance level and RNG seed.
type Params struct {
	Mean1   float64 `json:"mean_1"`
	Mean2   float64 `json:"mean_2"`
	StdDev1 float64 `json:"std_dev_1"`
	StdDev2 float64 `json:"std_dev_2"`
	N1      int     `json:"n_1"`
	N2      int     `json:"n_2"`
	Trials  int     `json:"trials"`
	Alpha   float64 `json:"alpha"`
	Seed    int64   `json:"seed"`    // 0 means derive from current time
	Workers int     `json:"workers"` // 0 means runner default
}

// DefaultParams returns the null-hypothesis configuration the UI panel
// starts from: equal means, equal unit variances, moderate sample sizes.
func DefaultParams() Params {
	return Params{
		Mean1:   0,
		Mean2:   0,
		StdDev1: 1,
		StdDev2: 1,
		N1:      30,
		N2:      30,
		Trials:  2000,
		Alpha:   0.05,
		Seed:    42,
	}
}

// Validate checks parameter ranges before a run is accepted
func (p Params) Validate() error {
	if p.StdDev1 <= 0 || p.StdDev2 <= 0 {
		return errors.InvalidParams("standard deviations must be positive")
	}
	if p.N1 < 2 || p.N2 < 2 {
		return errors.InvalidParams("each group needs at least 2 observations")
	}
	if p.Trials < 1 {
		return errors.InvalidParams("trial count must be at least 1")
	}
	if p.Trials > 1_000_000 {
		return errors.InvalidParams("trial count exceeds the 1,000,000 cap")
	}
	if p.Alpha <= 0 || p.Alpha >= 1 {
		return errors.InvalidParams("alpha must be in (0, 1)")
	}
	if p.Workers < 0 {
		return errors.InvalidParams("worker count cannot be negative")
	}
	return nil
}

// TrialSeries collects the per-trial outputs of one test procedure across
// the whole run. Statistics[i] and PValues[i] belong to trial i.
type TrialSeries struct {
	TestName   string    `json:"test_name"`
	Statistics []float64 `json:"statistics"`
	PValues    []float64 `json:"p_values"`
}

// SummaryStats describes a numeric series
type SummaryStats struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
	Q25    float64 `json:"q25"`
	Q75    float64 `json:"q75"`
}

// HistogramBin is one fixed-width bin: [Lower, Upper) except the last bin,
// which is closed on both ends.
type HistogramBin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// Histogram is a fixed-width binning of a series
type Histogram struct {
	Bins     []HistogramBin `json:"bins"`
	BinWidth float64        `json:"bin_width"`
	Min      float64        `json:"min"`
	Max      float64        `json:"max"`
	Total    int            `json:"total"`
}

// TestSummary aggregates one test procedure over a run: the rejection rate
// at the run's alpha plus distributional summaries of both series.
type TestSummary struct {
	TestName        string       `json:"test_name"`
	Rejections      int          `json:"rejections"`
	RejectionRate   float64      `json:"rejection_rate"`
	StatSummary     SummaryStats `json:"stat_summary"`
	PValueSummary   SummaryStats `json:"p_value_summary"`
	StatHistogram   Histogram    `json:"stat_histogram"`
	PValueHistogram Histogram    `json:"p_value_histogram"`
}

// Run is a completed simulation run. Series carries the trial-level data
// and is omitted from persistence; Summaries are what the run store keeps.
type Run struct {
	ID        core.RunID    `json:"id"`
	Params    Params        `json:"params"`
	Summaries []TestSummary `json:"summaries"`
	Series    []TrialSeries `json:"series,omitempty"`
	Elapsed   time.Duration `json:"elapsed_ns"`
	CreatedAt time.Time     `json:"created_at"`
}

// Summary returns the summary for the named test, if present
func (r *Run) Summary(testName string) (TestSummary, bool) {
	for _, s := range r.Summaries {
		if s.TestName == testName {
			return s, true
		}
	}
	return TestSummary{}, false
}
