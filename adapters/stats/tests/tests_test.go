package tests

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// Hand-computed fixture: x has variance 2.5, y has variance 10, both n=5.
// With equal group sizes the pooled and unpooled standard errors coincide,
// so all three procedures share the statistic and differ only in df.
var (
	fixtureX = []float64{1, 2, 3, 4, 5}
	fixtureY = []float64{2, 4, 6, 8, 10}
)

const fixtureStat = -1.8973665961010275 // (3-6)/sqrt(2.5)

func TestStudentTTest_KnownValues(t *testing.T) {
	res := NewStudentTTest().Compare(fixtureX, fixtureY)

	if res.TestName != TestNameStudent {
		t.Errorf("expected test name %q, got %q", TestNameStudent, res.TestName)
	}
	if !almostEqual(res.Statistic, fixtureStat, 1e-12) {
		t.Errorf("expected t=%.12f, got %.12f", fixtureStat, res.Statistic)
	}
	if res.DF != 8 {
		t.Errorf("expected df=8, got %g", res.DF)
	}
	// Two-tailed p for t=1.897, df=8 sits just under 0.10
	if res.PValue < 0.08 || res.PValue > 0.11 {
		t.Errorf("expected p in [0.08, 0.11], got %g", res.PValue)
	}
}

func TestWelchTTest_KnownValues(t *testing.T) {
	res := NewWelchTTest().Compare(fixtureX, fixtureY)

	if !almostEqual(res.Statistic, fixtureStat, 1e-12) {
		t.Errorf("expected t=%.12f, got %.12f", fixtureStat, res.Statistic)
	}
	// Welch-Satterthwaite: 2.5^2 / (0.5^2/4 + 2^2/4) = 5.88235...
	if !almostEqual(res.DF, 5.882352941176471, 1e-9) {
		t.Errorf("expected df=5.882352941, got %.9f", res.DF)
	}
}

func TestZTest_KnownValues(t *testing.T) {
	res := NewZTest().Compare(fixtureX, fixtureY)

	if !almostEqual(res.Statistic, fixtureStat, 1e-12) {
		t.Errorf("expected z=%.12f, got %.12f", fixtureStat, res.Statistic)
	}
	if !math.IsInf(res.DF, 1) {
		t.Errorf("expected infinite df for z approximation, got %g", res.DF)
	}
	// 2*(1 - Phi(1.8974)) ~ 0.0577
	if !almostEqual(res.PValue, 0.0577, 0.002) {
		t.Errorf("expected p~0.0577, got %g", res.PValue)
	}
}

// With fewer degrees of freedom the t-distribution has heavier tails, so
// for the same statistic: p(z) < p(student, df=8) < p(welch, df=5.88).
func TestProcedures_PValueOrdering(t *testing.T) {
	student := NewStudentTTest().Compare(fixtureX, fixtureY)
	welch := NewWelchTTest().Compare(fixtureX, fixtureY)
	z := NewZTest().Compare(fixtureX, fixtureY)

	if !(z.PValue < student.PValue) {
		t.Errorf("expected z p (%g) < student p (%g)", z.PValue, student.PValue)
	}
	if !(student.PValue < welch.PValue) {
		t.Errorf("expected student p (%g) < welch p (%g)", student.PValue, welch.PValue)
	}
}

func TestProcedures_DegenerateInputs(t *testing.T) {
	battery := NewBattery()

	cases := []struct {
		name string
		x, y []float64
	}{
		{"too few observations", []float64{1}, []float64{2, 3}},
		{"empty samples", nil, nil},
		{"zero variance both groups", []float64{5, 5, 5}, []float64{5, 5, 5}},
	}

	for _, tc := range cases {
		for _, res := range battery.CompareAll(tc.x, tc.y) {
			if !res.Degenerate {
				t.Errorf("%s: expected %s to flag degenerate", tc.name, res.TestName)
			}
			if res.Statistic != 0 || res.PValue != 1.0 {
				t.Errorf("%s: expected %s stat=0 p=1, got stat=%g p=%g",
					tc.name, res.TestName, res.Statistic, res.PValue)
			}
		}
	}
}

func TestProcedures_IdenticalSamplesZeroStatistic(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6}
	for _, res := range NewBattery().CompareAll(x, x) {
		if res.Statistic != 0 {
			t.Errorf("%s: expected zero statistic on identical samples, got %g", res.TestName, res.Statistic)
		}
		if !almostEqual(res.PValue, 1.0, 1e-12) {
			t.Errorf("%s: expected p=1 on identical samples, got %g", res.TestName, res.PValue)
		}
	}
}

func TestProcedures_SymmetricInSign(t *testing.T) {
	for _, p := range []Procedure{NewStudentTTest(), NewWelchTTest(), NewZTest()} {
		fwd := p.Compare(fixtureX, fixtureY)
		rev := p.Compare(fixtureY, fixtureX)

		if !almostEqual(fwd.Statistic, -rev.Statistic, 1e-12) {
			t.Errorf("%s: expected sign-flipped statistic, got %g and %g", p.Name(), fwd.Statistic, rev.Statistic)
		}
		if !almostEqual(fwd.PValue, rev.PValue, 1e-12) {
			t.Errorf("%s: expected identical two-tailed p, got %g and %g", p.Name(), fwd.PValue, rev.PValue)
		}
	}
}

func TestBattery_NamesAndLookup(t *testing.T) {
	battery := NewBattery()

	names := battery.Names()
	expected := []string{TestNameStudent, TestNameWelch, TestNameZ}
	if len(names) != len(expected) {
		t.Fatalf("expected %d procedures, got %d", len(expected), len(names))
	}
	for i, name := range expected {
		if names[i] != name {
			t.Errorf("expected procedure %d to be %q, got %q", i, name, names[i])
		}
		if _, ok := battery.Get(name); !ok {
			t.Errorf("battery lookup failed for %q", name)
		}
	}
	if _, ok := battery.Get("mann_whitney"); ok {
		t.Error("battery lookup should fail for unknown procedure")
	}
}

func TestStudentTPValue_Bounds(t *testing.T) {
	if p := studentTPValue(0, 10); !almostEqual(p, 1.0, 1e-12) {
		t.Errorf("expected p=1 at t=0, got %g", p)
	}
	if p := studentTPValue(100, 10); p > 1e-6 {
		t.Errorf("expected vanishing p for extreme t, got %g", p)
	}
	if p := studentTPValue(1.5, 0); p != 1.0 {
		t.Errorf("expected p=1 for non-positive df, got %g", p)
	}
}
