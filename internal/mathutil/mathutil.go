// Package mathutil provides small numeric helpers built on gonum.
// They keep NaN/Inf handling and degenerate-length guards in one place so that
// the signal and crossing packages never panic on odd input.
package mathutil

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// IsFinite reports whether x is neither NaN nor ±Inf.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// Clamp limits x to [lo, hi]. NaN is mapped to lo.
func Clamp(x, lo, hi float64) float64 {
	switch {
	case math.IsNaN(x), x < lo:
		return lo
	case x > hi:
		return hi
	default:
		return x
	}
}

// Linspace returns n evenly spaced values starting at start.
// With endpoint=false the interval is half-open [start, end), as used for
// sampling axes; with endpoint=true end is the last value.
// n < 1 returns nil, n == 1 returns {start}.
func Linspace(start, end float64, n int, endpoint bool) []float64 {
	switch {
	case n < 1:
		return nil
	case n == 1:
		return []float64{start}
	}

	if endpoint {
		return floats.Span(make([]float64, n), start, end)
	}

	// Span over n+1 points and drop the closing one.
	axis := floats.Span(make([]float64, n+1), start, end)
	return axis[:n]
}

// Mean returns the arithmetic mean of x, or 0 for an empty slice.
func Mean(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return stat.Mean(x, nil)
}

// PeakAbs returns max |x[i]|, or 0 for an empty slice.
func PeakAbs(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return floats.Norm(x, math.Inf(1))
}
