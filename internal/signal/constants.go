package signal

import "math"

// Frequency bounds for a single sine component, in Hz.
const (
	MinFrequency = 0.01
	MaxFrequency = 20000.0
)

// Sampling window defaults and limits, in seconds.
const (
	DefaultStart = 0.0
	DefaultSpan  = 0.1
	MinSpan      = 0.001
)

// Resolution policy. Narrow windows get a denser grid so individual crossings
// stay resolvable when beating is fast.
const (
	baseMinSamples      = 1000
	baseSamplesPerSec   = 5000.0
	narrowSpanThreshold = 0.01
	narrowMinSamples    = 500
	narrowSamplesPerSec = 20000.0
	minSampleCount      = 2

	// MaxSampleCount bounds the axis length for very wide spans.
	MaxSampleCount = 2_000_000
)

const twoPi = 2 * math.Pi
