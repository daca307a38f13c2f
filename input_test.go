package harmony

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tphakala/go-harmony-explorer/internal/signal"
)

func TestParseFloat(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"440", 440, true},
		{"  0.25 ", 0.25, true},
		{"-5", -5, true},
		{"1e-3", 1e-3, true},
		{"abc", 0, false},
		{"", 0, false},
		{"NaN", 0, false},
		{"inf", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseFloat(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestParseFrequency(t *testing.T) {
	f, ok := ParseFrequency("abc", 123)
	assert.False(t, ok)
	assert.InDelta(t, 123.0, f, 0)

	f, ok = ParseFrequency("0", 123)
	assert.True(t, ok)
	assert.InDelta(t, 0.0, f, 0)

	f, ok = ParseFrequency("-20", 123)
	assert.True(t, ok)
	assert.InDelta(t, -20.0, f, 0)

	f, _ = ParseFrequency("30000", 123)
	assert.InDelta(t, signal.MaxFrequency, f, 0)
}

func TestParseWindow(t *testing.T) {
	start, span, ok := ParseWindow("0.5", "0.02")
	assert.True(t, ok)
	assert.InDelta(t, 0.5, start, 0)
	assert.InDelta(t, 0.02, span, 0)

	// One bad field resets both.
	start, span, ok = ParseWindow("0.5", "wide")
	assert.False(t, ok)
	assert.InDelta(t, 0.0, start, 0)
	assert.InDelta(t, 0.1, span, 0)

	start, span, ok = ParseWindow("", "0.3")
	assert.False(t, ok)
	assert.InDelta(t, 0.0, start, 0)
	assert.InDelta(t, 0.1, span, 0)
}

func TestParseTolerances(t *testing.T) {
	amp, prox, ok := ParseTolerances("2", "10", 1, 1)
	assert.True(t, ok)
	assert.InDelta(t, 2.0, amp, 0)
	assert.InDelta(t, 10.0, prox, 0)

	amp, prox, ok = ParseTolerances("x", "10", 3, 4)
	assert.False(t, ok)
	assert.InDelta(t, 3.0, amp, 0)
	assert.InDelta(t, 10.0, prox, 0)

	amp, prox, _ = ParseTolerances("99", "-3", 1, 1)
	assert.InDelta(t, MaxAmplitudeTolerancePercent, amp, 0)
	assert.InDelta(t, MinTimeProximity, prox, 0)

	amp, prox, _ = ParseTolerances("0", "5000", 1, 1)
	assert.InDelta(t, MinAmplitudeTolerancePercent, amp, 0)
	assert.InDelta(t, MaxTimeProximity, prox, 0)
}

func TestAmplitudeTolerance(t *testing.T) {
	assert.InDelta(t, 0.024, AmplitudeTolerance(4.8, 1), 1e-12)
	// Flat range substitutes 2.0.
	assert.InDelta(t, 0.01, AmplitudeTolerance(0, 1), 1e-12)
	assert.InDelta(t, 0.01, AmplitudeTolerance(math.NaN(), 1), 1e-12)
	// Floor.
	assert.InDelta(t, 1e-9, AmplitudeTolerance(2.4, 0), 0)
}

func TestTimeTolerance(t *testing.T) {
	assert.InDelta(t, 5e-4, TimeTolerance(5), 1e-15)
	assert.InDelta(t, 0.0, TimeTolerance(-1), 0)
	assert.InDelta(t, 0.0, TimeTolerance(math.NaN()), 0)
}
