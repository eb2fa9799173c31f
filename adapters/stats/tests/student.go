package tests

import "math"

// TestNameStudent identifies the pooled-variance Student's t-test
const TestNameStudent = "student_t"

// StudentTTest is the classic two-sample t-test assuming equal variances
type StudentTTest struct{}

// NewStudentTTest creates a new Student's t-test procedure
func NewStudentTTest() *StudentTTest {
	return &StudentTTest{}
}

// Name returns the procedure name
func (s *StudentTTest) Name() string {
	return TestNameStudent
}

// Description returns a human-readable description
func (s *StudentTTest) Description() string {
	return "Two-sample t-test with pooled variance, df = n1+n2-2"
}

// Compare computes the pooled-variance t-statistic and its two-tailed
// p-value from Student's t-distribution
func (s *StudentTTest) Compare(x, y []float64) Result {
	n1 := float64(len(x))
	n2 := float64(len(y))
	if n1 < 2 || n2 < 2 {
		return degenerate(s.Name())
	}

	v1 := variance(x)
	v2 := variance(y)
	df := n1 + n2 - 2

	// Pooled variance weights each group's variance by its df
	pooled := ((n1-1)*v1 + (n2-1)*v2) / df
	se := math.Sqrt(pooled * (1/n1 + 1/n2))
	if se == 0 {
		return degenerate(s.Name())
	}

	t := (mean(x) - mean(y)) / se

	return Result{
		TestName:  s.Name(),
		Statistic: t,
		DF:        df,
		PValue:    studentTPValue(t, df),
	}
}
