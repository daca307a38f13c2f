package harmony

import (
	"strconv"
	"strings"

	"github.com/tphakala/go-harmony-explorer/internal/mathutil"
	"github.com/tphakala/go-harmony-explorer/internal/signal"
)

// ParseFloat parses a user-entered number. Surrounding space is ignored;
// NaN and infinities are rejected.
func ParseFloat(text string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || !mathutil.IsFinite(v) {
		return 0, false
	}
	return v, true
}

// ParseFrequency parses a frequency entry, capped at 20000 Hz. Non-positive
// values are returned as entered; plotting floors them and playback skips
// them. On failure it returns fallback and false.
func ParseFrequency(text string, fallback float64) (float64, bool) {
	v, ok := ParseFloat(text)
	if !ok {
		return fallback, false
	}
	return signal.LimitFrequency(v), true
}

// ParseWindow parses the start and span entries. If either fails both fall
// back to the defaults (0.0, 0.1). A non-positive span is floored later by
// signal.NewWindow.
func ParseWindow(startText, spanText string) (start, span float64, ok bool) {
	start, okStart := ParseFloat(startText)
	span, okSpan := ParseFloat(spanText)
	if !okStart || !okSpan {
		return signal.DefaultStart, signal.DefaultSpan, false
	}
	return start, span, true
}

// ParseTolerances parses the amplitude-percent and time-proximity entries.
// Each value failing to parse keeps its previous value; ok reports whether
// both parsed. Results are clamped to the entry bounds.
func ParseTolerances(ampText, proxText string, prevAmp, prevProx float64) (amp, prox float64, ok bool) {
	amp, okAmp := ParseFloat(ampText)
	if !okAmp {
		amp = prevAmp
	}
	prox, okProx := ParseFloat(proxText)
	if !okProx {
		prox = prevProx
	}
	return ClampAmplitudeTolerance(amp), ClampTimeProximity(prox), okAmp && okProx
}

// ClampAmplitudeTolerance limits a percentage to [0.01, 20].
func ClampAmplitudeTolerance(pct float64) float64 {
	return mathutil.Clamp(pct, MinAmplitudeTolerancePercent, MaxAmplitudeTolerancePercent)
}

// ClampTimeProximity limits proximity units to [0, 1000].
func ClampTimeProximity(units float64) float64 {
	return mathutil.Clamp(units, MinTimeProximity, MaxTimeProximity)
}

// AmplitudeTolerance converts a percentage of the Y range into an absolute
// amplitude: half of pct percent of the range, floored to 1e-9. A flat range
// is treated as 2.0.
func AmplitudeTolerance(yRange, pct float64) float64 {
	if !(yRange >= flatRangeEpsilon) {
		yRange = flatYRange
	}
	tol := yRange * (pct / percentScale) / halfRange
	if !(tol >= minAmplitudeTol) {
		tol = minAmplitudeTol
	}
	return tol
}

// TimeTolerance converts proximity units to seconds. Negative input yields 0.
func TimeTolerance(units float64) float64 {
	if !(units > 0) {
		return 0
	}
	return units * TimeProximityUnit
}
