// Package signal implements the sine component model and the sampling window
// the plot is evaluated over.
package signal

import (
	"math"

	"github.com/tphakala/go-harmony-explorer/internal/mathutil"
)

// Wave is a single parameterised sine component.
type Wave struct {
	Frequency float64 // Hz
	Amplitude float64
	Phase     float64 // radians
}

// ClampFrequency maps f into (0, MaxFrequency]. Non-positive and non-finite
// values become MinFrequency so a plot can always be drawn.
func ClampFrequency(f float64) float64 {
	switch {
	case math.IsNaN(f), f <= 0, math.IsInf(f, -1):
		return MinFrequency
	case f > MaxFrequency:
		return MaxFrequency
	default:
		return f
	}
}

// LimitFrequency caps f at MaxFrequency and keeps non-positive values as
// entered, so the mixer can skip them. NaN and -Inf become 0.
func LimitFrequency(f float64) float64 {
	switch {
	case math.IsNaN(f), math.IsInf(f, -1):
		return 0
	case f > MaxFrequency:
		return MaxFrequency
	default:
		return f
	}
}

// Sample evaluates w over axis and returns a new slice aligned 1:1 with it.
func Sample(w Wave, axis []float64) []float64 {
	out := make([]float64, len(axis))
	SampleInto(out, w, axis)
	return out
}

// SampleInto writes w evaluated over axis into dst. Only min(len(dst), len(axis))
// samples are written.
func SampleInto(dst []float64, w Wave, axis []float64) {
	n := min(len(dst), len(axis))
	freq := ClampFrequency(w.Frequency)
	amp := w.Amplitude
	if !mathutil.IsFinite(amp) {
		amp = 0
	}
	phase := w.Phase
	if !mathutil.IsFinite(phase) {
		phase = 0
	}

	omega := twoPi * freq
	for i := range n {
		dst[i] = amp * math.Sin(omega*axis[i]+phase)
	}
}
