package tests

import "math"

// TestNameWelch identifies Welch's unequal-variance t-test
const TestNameWelch = "welch_t"

// WelchTTest is the two-sample t-test without the equal-variance assumption
type WelchTTest struct{}

// NewWelchTTest creates a new Welch's t-test procedure
func NewWelchTTest() *WelchTTest {
	return &WelchTTest{}
}

// Name returns the procedure name
func (w *WelchTTest) Name() string {
	return TestNameWelch
}

// Description returns a human-readable description
func (w *WelchTTest) Description() string {
	return "Two-sample t-test with unpooled variance and Welch-Satterthwaite df"
}

// Compare computes Welch's t-statistic with Welch-Satterthwaite degrees
// of freedom and a two-tailed p-value from Student's t-distribution
func (w *WelchTTest) Compare(x, y []float64) Result {
	n1 := float64(len(x))
	n2 := float64(len(y))
	if n1 < 2 || n2 < 2 {
		return degenerate(w.Name())
	}

	v1 := variance(x)
	v2 := variance(y)

	se2 := v1/n1 + v2/n2
	if se2 == 0 {
		return degenerate(w.Name())
	}

	t := (mean(x) - mean(y)) / math.Sqrt(se2)

	// Welch-Satterthwaite equation
	df := se2 * se2 / (math.Pow(v1/n1, 2)/(n1-1) + math.Pow(v2/n2, 2)/(n2-1))

	return Result{
		TestName:  w.Name(),
		Statistic: t,
		DF:        df,
		PValue:    studentTPValue(t, df),
	}
}
