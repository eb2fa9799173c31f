package simulate

import "math/rand"

// drawGaussian draws n observations from Normal(mean, sd) using the
// trial's own RNG stream
func drawGaussian(rng *rand.Rand, n int, mean, sd float64) []float64 {
	sample := make([]float64, n)
	for i := range sample {
		sample[i] = mean + sd*rng.NormFloat64()
	}
	return sample
}
