package harmony

import "time"

// Wave defaults.
const (
	// DefaultFrequency replaces a frequency that fails to parse when a wave is
	// added from text.
	DefaultFrequency = 1.0

	DefaultAmplitude = 1.0
	DefaultPhase     = 0.0
)

// Tolerance entry bounds and defaults.
const (
	MinAmplitudeTolerancePercent     = 0.01
	MaxAmplitudeTolerancePercent     = 20.0
	DefaultAmplitudeTolerancePercent = 0.01

	MinTimeProximity     = 0.0
	MaxTimeProximity     = 1000.0
	DefaultTimeProximity = 1.0

	// TimeProximityUnit converts time proximity units to seconds.
	TimeProximityUnit = 1e-4
)

// Playback defaults.
const (
	DefaultSampleRate = 44100
	DefaultDuration   = 3 * time.Second
	DefaultVolume     = 1.0

	// StopTimeout bounds the wait for the worker after a stop request.
	StopTimeout = 500 * time.Millisecond

	// ShutdownTimeout bounds the wait for the worker on Close.
	ShutdownTimeout = 200 * time.Millisecond

	monoChannels = 1
	maxVolume    = 1.0
)

// Plot geometry.
const (
	yHeadroom          = 1.2
	flatYRange         = 2.0
	flatRangeEpsilon   = 1e-9
	minAmplitudeTol    = 1e-9
	barBottomFraction  = 0.05
	barHeightFraction  = 0.9
	barWidthSpanFactor = 0.0015
	barWidthTolFactor  = 0.2
	barWidthFallback   = 0.001
	labelOffset        = 0.01
	percentScale       = 100.0
	halfRange          = 2.0
)

// Palette is the colour cycle assigned to new waves.
var Palette = []string{
	"#58A6FF",
	"#3FB950",
	"#F4D03F",
	"#F06292",
	"#4DD0E1",
	"#FF8A65",
	"#BA68C8",
}
