// Package testutil provides reusable test helpers for the harmony explorer packages.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Default tolerances for various test scenarios.
const (
	DefaultTolerance = 1e-10
	TimeTolerance    = 1e-9
	PeakTolerance    = 1e-9
)

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t *testing.T, s []float64) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(v, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertAllInRange verifies that all elements are within [minVal, maxVal].
func AssertAllInRange(t *testing.T, s []float64, minVal, maxVal float64) bool {
	t.Helper()
	for i, v := range s {
		if v < minVal || v > maxVal {
			return assert.Fail(t, "value out of range",
				"s[%d]=%f is outside range [%f, %f]", i, v, minVal, maxVal)
		}
	}
	return true
}

// AssertPeakAtMost verifies that max |s[i]| does not exceed limit+PeakTolerance.
func AssertPeakAtMost(t *testing.T, s []float64, limit float64) bool {
	t.Helper()
	for i, v := range s {
		if math.Abs(v) > limit+PeakTolerance {
			return assert.Fail(t, "peak exceeded",
				"|s[%d]|=%f exceeds %f", i, math.Abs(v), limit)
		}
	}
	return true
}

// AssertPeakAtMost32 is AssertPeakAtMost for float32 device blocks.
func AssertPeakAtMost32(t *testing.T, s []float32, limit float64) bool {
	t.Helper()
	for i, v := range s {
		if math.Abs(float64(v)) > limit+1e-6 {
			return assert.Fail(t, "peak exceeded",
				"|s[%d]|=%f exceeds %f", i, math.Abs(float64(v)), limit)
		}
	}
	return true
}

// AssertMonotonic verifies that a slice is monotonically non-decreasing.
func AssertMonotonic(t *testing.T, s []float64) bool {
	t.Helper()
	for i := 1; i < len(s); i++ {
		if s[i] < s[i-1] {
			return assert.Fail(t, "not monotonic",
				"s[%d]=%f < s[%d]=%f", i, s[i], i-1, s[i-1])
		}
	}
	return true
}

// AssertRelativeError verifies that the relative error between actual and expected is within tolerance.
func AssertRelativeError(t *testing.T, expected, actual, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if expected == 0 {
		return assert.InDelta(t, expected, actual, tolerance, msgAndArgs...)
	}
	relError := math.Abs(actual-expected) / math.Abs(expected)
	return assert.LessOrEqual(t, relError, tolerance,
		"relative error %e exceeds tolerance %e (expected=%f, actual=%f)",
		relError, tolerance, expected, actual)
}

// AssertInRange verifies that a value is within [minVal, maxVal].
func AssertInRange(t *testing.T, value, minVal, maxVal float64) bool {
	t.Helper()
	if value < minVal || value > maxVal {
		return assert.Fail(t, "value out of range",
			"value %f is outside range [%f, %f]", value, minVal, maxVal)
	}
	return true
}

// SineAt evaluates amplitude*sin(2*pi*freq*t + phase) over axis.
// Tests use it as an independent reference for the signal model.
func SineAt(axis []float64, freq, amplitude, phase float64) []float64 {
	out := make([]float64, len(axis))
	for i, t := range axis {
		out[i] = amplitude * math.Sin(2*math.Pi*freq*t+phase)
	}
	return out
}
