package tests

import "math"

// TestNameZ identifies the large-sample normal approximation
const TestNameZ = "z_approx"

// ZTest approximates the two-sample t-test with the standard normal
// distribution. It shares Welch's unpooled standard error, so for large
// samples its p-values converge to Welch's.
type ZTest struct{}

// NewZTest creates a new z-test procedure
func NewZTest() *ZTest {
	return &ZTest{}
}

// Name returns the procedure name
func (z *ZTest) Name() string {
	return TestNameZ
}

// Description returns a human-readable description
func (z *ZTest) Description() string {
	return "Large-sample normal approximation with unpooled standard error"
}

// Compare computes the z-statistic and its two-tailed p-value from the
// standard normal distribution
func (z *ZTest) Compare(x, y []float64) Result {
	n1 := float64(len(x))
	n2 := float64(len(y))
	if n1 < 2 || n2 < 2 {
		return degenerate(z.Name())
	}

	se2 := variance(x)/n1 + variance(y)/n2
	if se2 == 0 {
		return degenerate(z.Name())
	}

	stat := (mean(x) - mean(y)) / math.Sqrt(se2)

	return Result{
		TestName:  z.Name(),
		Statistic: stat,
		DF:        math.Inf(1),
		PValue:    normalPValue(stat),
	}
}
