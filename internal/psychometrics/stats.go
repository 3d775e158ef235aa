// internal/psychometrics/stats.go
package psychometrics

import (
	"math"
	"sort"
)

// Named fallbacks for degenerate statistics.
const (
	NeutralScore      = 50.0
	NeutralSimilarity = 50.0
	AlphaUndefined    = 0.0

	DefaultNormMean = 50.0
	DefaultNormSD   = 10.0

	// epsilon below which a spread is treated as zero
	epsilon = 1e-9
)

// Mean returns the arithmetic mean, 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// SampleVariance uses the n-1 denominator. Fewer than two values yield 0.
func SampleVariance(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	m := Mean(values)
	var ss float64
	for _, v := range values {
		d := v - m
		ss += d * d
	}
	return ss / float64(n-1)
}

// SampleStdDev is the square root of SampleVariance.
func SampleStdDev(values []float64) float64 {
	return math.Sqrt(SampleVariance(values))
}

// PopulationStdDev uses the n denominator.
func PopulationStdDev(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	m := Mean(values)
	var ss float64
	for _, v := range values {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(n))
}

// Median returns the middle value of a copy of the input.
func Median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Round rounds half away from zero to the given number of decimals.
func Round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
