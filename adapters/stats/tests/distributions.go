package tests

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// studentTPValue computes the two-tailed p-value of a t-statistic under
// Student's t-distribution with df degrees of freedom
func studentTPValue(t, df float64) float64 {
	if df <= 0 {
		return 1.0
	}
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * (1 - tDist.CDF(math.Abs(t)))
	return clampP(p)
}

// normalPValue computes the two-tailed p-value of a z-statistic under the
// standard normal distribution
func normalPValue(z float64) float64 {
	p := 2 * (1 - distuv.UnitNormal.CDF(math.Abs(z)))
	return clampP(p)
}

// clampP keeps floating-point round-off from pushing a p-value outside [0, 1]
func clampP(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
