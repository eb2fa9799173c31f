package simulate

import (
	"github.com/montanaflynn/stats"

	"simlab/domain/simulation"
)

// Summarize aggregates one test's trial series into a TestSummary:
// rejection rate at alpha, descriptive summaries and histograms of both
// the statistic and the p-value distributions.
func Summarize(series simulation.TrialSeries, alpha float64, bins int) simulation.TestSummary {
	rejections := 0
	for _, p := range series.PValues {
		// Strict inequality: p == alpha does not reject
		if p < alpha {
			rejections++
		}
	}

	rate := 0.0
	if len(series.PValues) > 0 {
		rate = float64(rejections) / float64(len(series.PValues))
	}

	return simulation.TestSummary{
		TestName:      series.TestName,
		Rejections:    rejections,
		RejectionRate: rate,
		StatSummary:   summaryStats(series.Statistics),
		PValueSummary: summaryStats(series.PValues),
		StatHistogram: BuildHistogram(series.Statistics, bins),
		// P-values live on [0,1]; a fixed range keeps the three tests'
		// histograms directly comparable.
		PValueHistogram: BuildFixedHistogram(series.PValues, bins, 0, 1),
	}
}

// summaryStats computes the descriptive summary of a series
func summaryStats(data []float64) simulation.SummaryStats {
	if len(data) == 0 {
		return simulation.SummaryStats{}
	}

	mean, _ := stats.Mean(data)
	stdDev, _ := stats.StandardDeviationSample(data)
	min, _ := stats.Min(data)
	max, _ := stats.Max(data)
	median, _ := stats.Median(data)
	q25, _ := stats.Percentile(data, 25)
	q75, _ := stats.Percentile(data, 75)

	return simulation.SummaryStats{
		Mean:   mean,
		StdDev: stdDev,
		Min:    min,
		Max:    max,
		Median: median,
		Q25:    q25,
		Q75:    q75,
	}
}

// BuildHistogram bins data into fixed-width bins spanning the data range
func BuildHistogram(data []float64, bins int) simulation.Histogram {
	if len(data) == 0 || bins < 1 {
		return simulation.Histogram{}
	}

	min, max := data[0], data[0]
	for _, v := range data {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	return BuildFixedHistogram(data, bins, min, max)
}

// BuildFixedHistogram bins data into fixed-width bins over [min, max].
// Values outside the range are clamped into the edge bins. The last bin
// is closed on both ends so max itself is counted.
func BuildFixedHistogram(data []float64, bins int, min, max float64) simulation.Histogram {
	if len(data) == 0 || bins < 1 || max < min {
		return simulation.Histogram{}
	}

	width := (max - min) / float64(bins)
	if width == 0 {
		// Zero-spread series collapse into a single bin
		return simulation.Histogram{
			Bins:  []simulation.HistogramBin{{Lower: min, Upper: max, Count: len(data)}},
			Min:   min,
			Max:   max,
			Total: len(data),
		}
	}

	counts := make([]int, bins)
	for _, v := range data {
		bin := int((v - min) / width)
		if bin < 0 {
			bin = 0
		}
		if bin >= bins {
			bin = bins - 1
		}
		counts[bin]++
	}

	out := simulation.Histogram{
		Bins:     make([]simulation.HistogramBin, bins),
		BinWidth: width,
		Min:      min,
		Max:      max,
		Total:    len(data),
	}
	for i, c := range counts {
		out.Bins[i] = simulation.HistogramBin{
			Lower: min + float64(i)*width,
			Upper: min + float64(i+1)*width,
			Count: c,
		}
	}
	return out
}
