// Package mixer renders the sum of the active sine components into a single
// mono buffer suitable for playback.
package mixer

import (
	"errors"
	"fmt"
	"math"

	"github.com/tphakala/go-harmony-explorer/internal/mathutil"
	"github.com/tphakala/go-harmony-explorer/internal/signal"
	"github.com/tphakala/go-harmony-explorer/internal/simdops"
)

// ErrNoVoices is returned when none of the waves has a playable frequency.
var ErrNoVoices = errors.New("no playable waves")

// ErrInvalidFormat is returned for a non-positive duration or sample rate.
var ErrInvalidFormat = errors.New("invalid mix format")

// Mix is a rendered, peak-normalised mono buffer.
type Mix struct {
	Samples    []float64
	SampleRate int

	// Voices is the number of waves that contributed.
	Voices int

	// Peak is the absolute peak before normalisation.
	Peak float64

	// RMS and DC describe the buffer after normalisation.
	RMS float64
	DC  float64
}

// Silent reports whether destructive interference cancelled the mix entirely.
func (m Mix) Silent() bool {
	return m.Peak == 0
}

// Duration returns the buffer length in seconds.
func (m Mix) Duration() float64 {
	if m.SampleRate <= 0 {
		return 0
	}
	return float64(len(m.Samples)) / float64(m.SampleRate)
}

// Playable reports whether w can be mixed. Unlike plotting, which floors bad
// frequencies, the mixer drops them to avoid audible artifacts.
func Playable(w signal.Wave) bool {
	return mathutil.IsFinite(w.Frequency) && w.Frequency > 0 &&
		mathutil.IsFinite(w.Amplitude) && mathutil.IsFinite(w.Phase)
}

// Render sums waves over duration seconds at sampleRate and peak-normalises the
// result when it would clip.
func Render(waves []signal.Wave, duration float64, sampleRate int) (Mix, error) {
	if sampleRate <= 0 || !(duration > 0) || math.IsInf(duration, 1) {
		return Mix{}, fmt.Errorf("%w: duration %v s at %d Hz", ErrInvalidFormat, duration, sampleRate)
	}

	n := int(float64(sampleRate) * duration)
	if n < 1 {
		return Mix{}, fmt.Errorf("%w: duration %v s yields no samples at %d Hz", ErrInvalidFormat, duration, sampleRate)
	}

	mix := Mix{
		Samples:    make([]float64, n),
		SampleRate: sampleRate,
	}

	rate := float64(sampleRate)
	for _, w := range waves {
		if !Playable(w) {
			continue
		}
		omega := 2 * math.Pi * w.Frequency
		for i := range mix.Samples {
			mix.Samples[i] += w.Amplitude * math.Sin(omega*float64(i)/rate+w.Phase)
		}
		mix.Voices++
	}

	if mix.Voices == 0 {
		return Mix{}, ErrNoVoices
	}

	mix.Peak = Normalize(mix.Samples)

	ops := simdops.Float64Ops()
	mix.DC = ops.Sum(mix.Samples) / float64(n)
	mix.RMS = math.Sqrt(ops.DotProductUnsafe(mix.Samples, mix.Samples) / float64(n))

	return mix, nil
}

// Normalize scales buf in place so that its absolute peak does not exceed 1.
// Buffers already within range, including all-zero ones, are left untouched.
// It returns the peak measured before scaling.
func Normalize[F simdops.Float](buf []F) float64 {
	var peak float64
	for _, v := range buf {
		if a := math.Abs(float64(v)); a > peak {
			peak = a
		}
	}
	if peak > 1 {
		simdops.For[F]().Scale(buf, buf, F(1/peak))
	}
	return peak
}
