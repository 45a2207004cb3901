package analytics

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// mean is the arithmetic mean clamped to the range of values, so rounding
// never lands outside [min, max]. Zero for no values.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	lo, hi := minMax(values)
	return min(max(stat.Mean(values, nil), lo), hi)
}

// median averages the two middle values of an even-sized input.
func median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	if n%2 == 1 {
		return stat.Quantile(0.5, stat.Empirical, sorted, nil)
	}
	return mean(sorted[n/2-1 : n/2+1])
}

// stdDev is the sample standard deviation; zero below two values.
func stdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	return stat.StdDev(values, nil)
}

func minMax(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	return floats.Min(values), floats.Max(values)
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
