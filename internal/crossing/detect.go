// Package crossing finds zero crossings of sampled waves and clusters the
// crossings of different waves that happen at (nearly) the same time.
package crossing

import (
	"math"
)

// Crossing is a zero crossing of one wave.
type Crossing struct {
	Time   float64
	WaveID int
}

// Detector locates sub-sample zero crossings by linear interpolation.
type Detector struct {
	// AmplitudeTolerance decides which endpoint a flat segment snaps to.
	AmplitudeTolerance float64

	// Start and End bound the retained crossings (inclusive).
	Start float64
	End   float64
}

// Detect returns the crossing times of y sampled at t, in scan order.
// Inputs shorter than two samples yield nil. If the slices differ in length
// only the common prefix is scanned.
func (d Detector) Detect(y, t []float64) []float64 {
	n := min(len(y), len(t))
	if n < 2 {
		return nil
	}

	tol := d.AmplitudeTolerance
	if math.IsNaN(tol) || tol < minAmplitudeTolerance {
		tol = minAmplitudeTolerance
	}

	var out []float64
	for i := 0; i < n-1; i++ {
		y1, y2 := y[i], y[i+1]
		if y1*y2 > 0 || math.IsNaN(y1*y2) {
			continue
		}

		x1, x2 := t[i], t[i+1]
		var tc float64
		switch {
		case math.Abs(y2-y1) > slopeEpsilon:
			tc = x1 - y1*(x2-x1)/(y2-y1)
		case math.Abs(y1) < tol:
			tc = x1
		case math.Abs(y2) < tol:
			tc = x2
		default:
			tc = (x1 + x2) * half
		}

		if tc >= d.Start && tc <= d.End {
			out = append(out, tc)
		}
	}
	return out
}

// Series is one wave's samples, tagged with its id.
type Series struct {
	WaveID  int
	Samples []float64
}

// DetectAll runs Detect over every series against the shared axis and returns
// the concatenated, wave-tagged crossings. Series with missing samples
// contribute nothing.
func (d Detector) DetectAll(series []Series, axis []float64) []Crossing {
	var all []Crossing
	for _, s := range series {
		for _, tc := range d.Detect(s.Samples, axis) {
			all = append(all, Crossing{Time: tc, WaveID: s.WaveID})
		}
	}
	return all
}
