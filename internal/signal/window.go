package signal

import (
	"github.com/tphakala/go-harmony-explorer/internal/mathutil"
)

// Window is the finite time interval and resolution the waves are evaluated over.
// The axis it describes is the half-open interval [Start, Start+Span).
type Window struct {
	Start float64
	Span  float64
	Count int
}

// NewWindow builds a window from an already-parsed start and span.
// A non-positive or non-finite span is replaced by MinSpan, a non-finite start by
// DefaultStart. The result is never empty or reversed.
func NewWindow(start, span float64) Window {
	if !mathutil.IsFinite(start) {
		start = DefaultStart
	}
	if !mathutil.IsFinite(span) || span <= 0 {
		span = MinSpan
	}
	return Window{
		Start: start,
		Span:  span,
		Count: SampleCount(span),
	}
}

// DefaultWindow returns the window used before the user edits anything.
func DefaultWindow() Window {
	return NewWindow(DefaultStart, DefaultSpan)
}

// SampleCount is the resolution policy: max(1000, span*5000) points, raised to
// max(500, span*20000) for spans under 10 ms, at least 2 and at most MaxSampleCount.
func SampleCount(span float64) int {
	var n int
	if span < narrowSpanThreshold {
		n = max(narrowMinSamples, int(span*narrowSamplesPerSec))
	} else {
		n = max(baseMinSamples, int(min(span*baseSamplesPerSec, MaxSampleCount)))
	}
	return min(max(n, minSampleCount), MaxSampleCount)
}

// End returns Start+Span.
func (w Window) End() float64 {
	return w.Start + w.Span
}

// Step returns the sample period of the axis.
func (w Window) Step() float64 {
	if w.Count < 1 {
		return w.Span
	}
	return w.Span / float64(w.Count)
}

// Axis returns the Count uniformly spaced sample times in [Start, End).
func (w Window) Axis() []float64 {
	return mathutil.Linspace(w.Start, w.End(), w.Count, false)
}
