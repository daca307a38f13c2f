package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-harmony-explorer/internal/testutil"
)

func TestSampleCount_Policy(t *testing.T) {
	tests := []struct {
		name string
		span float64
		want int
	}{
		{"Default span", 0.1, 1000},
		{"One second", 1, 5000},
		{"Ten seconds", 10, 50000},
		{"Threshold", 0.01, 1000},
		{"Narrow", 0.005, 500},
		{"Very narrow", 0.001, 500},
		{"Narrow dense", 0.009, 500},
		{"Huge", 1e9, MaxSampleCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SampleCount(tt.span))
		})
	}
}

func TestNewWindow_ClampsSpan(t *testing.T) {
	for _, span := range []float64{-5, 0} {
		w := NewWindow(0, span)
		assert.Equal(t, MinSpan, w.Span)
		assert.Greater(t, w.End(), w.Start)
		assert.GreaterOrEqual(t, w.Count, 2)
	}
}

func TestWindow_AxisHalfOpen(t *testing.T) {
	w := NewWindow(0.5, 0.1)
	axis := w.Axis()

	require.Len(t, axis, w.Count)
	assert.InDelta(t, 0.5, axis[0], 1e-15)
	assert.Less(t, axis[len(axis)-1], w.End())
	assert.InDelta(t, w.Step(), axis[1]-axis[0], 1e-12)
	testutil.AssertMonotonic(t, axis)
	testutil.AssertInRange(t, axis[len(axis)-1], w.Start, w.End())
}

func TestDefaultWindow(t *testing.T) {
	w := DefaultWindow()
	assert.Equal(t, DefaultStart, w.Start)
	assert.Equal(t, DefaultSpan, w.Span)
	assert.InDelta(t, 1e-4, w.Step(), 1e-15)
}
