package tests

// Sample moment helpers shared by the procedures. Kept local rather than
// pulled from a stats package: each trial calls these millions of times
// and the closed-form tests only ever need mean and sample variance.

func mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range data {
		sum += v
	}
	return sum / float64(len(data))
}

// variance returns the unbiased sample variance (n-1 denominator)
func variance(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	m := mean(data)
	sumSq := 0.0
	for _, v := range data {
		diff := v - m
		sumSq += diff * diff
	}
	return sumSq / float64(len(data)-1)
}
