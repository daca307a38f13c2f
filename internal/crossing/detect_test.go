package crossing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-harmony-explorer/internal/signal"
	"github.com/tphakala/go-harmony-explorer/internal/testutil"
)

func TestDetect_OnePeriodHasTwoCrossings(t *testing.T) {
	for _, freq := range []float64{3, 100, 440, 1234.5} {
		period := 1 / freq
		win := signal.NewWindow(0, period)
		axis := win.Axis()
		y := signal.Sample(signal.Wave{Frequency: freq, Amplitude: 1, Phase: 0.3}, axis)

		d := Detector{AmplitudeTolerance: 1e-3, Start: win.Start, End: win.End()}
		got := d.Detect(y, axis)

		require.Len(t, got, 2, "freq %v", freq)
		assert.InDelta(t, period/2, got[1]-got[0], win.Step(), "freq %v", freq)
	}
}

func TestDetect_InterpolatesSubSample(t *testing.T) {
	d := Detector{Start: 0, End: 10}
	got := d.Detect([]float64{-1, 3}, []float64{1, 2})
	require.Len(t, got, 1)
	assert.InDelta(t, 1.25, got[0], 1e-15)
}

func TestDetect_FlatSegments(t *testing.T) {
	d := Detector{Start: 0, End: 10}

	// Slope below epsilon with y1 at zero snaps to t1.
	got := d.Detect([]float64{0, 5e-10}, []float64{1, 2})
	assert.Equal(t, []float64{1}, got)

	// y1 exactly at the tolerance floor, y2 at zero: snaps to t2.
	got = d.Detect([]float64{1e-9, 0}, []float64{1, 2})
	assert.Equal(t, []float64{2}, got)

	// All-zero samples report a crossing per pair.
	got = d.Detect([]float64{0, 0, 0}, []float64{1, 2, 3})
	assert.Equal(t, []float64{1, 2}, got)
}

func TestDetect_RetainsOnlyWindow(t *testing.T) {
	d := Detector{Start: 1.5, End: 2.5}
	y := []float64{1, -1, 1, -1}
	tt := []float64{0, 1, 2, 3}

	got := d.Detect(y, tt)
	assert.Equal(t, []float64{1.5, 2.5}, got)
}

func TestDetect_DegenerateInput(t *testing.T) {
	d := Detector{Start: math.Inf(-1), End: math.Inf(1)}
	assert.Nil(t, d.Detect(nil, nil))
	assert.Nil(t, d.Detect([]float64{0}, []float64{0}))
	assert.Nil(t, d.Detect([]float64{1, -1}, []float64{0}))
	assert.Nil(t, d.Detect([]float64{math.NaN(), 1}, []float64{0, 1}))

	// Mismatched lengths scan the common prefix.
	got := d.Detect([]float64{1, -1, 1, -1}, []float64{0, 1})
	assert.Equal(t, []float64{0.5}, got)
}

func TestDetectAll_TagsWaves(t *testing.T) {
	win := signal.DefaultWindow()
	axis := win.Axis()
	series := []Series{
		{WaveID: 7, Samples: signal.Sample(signal.Wave{Frequency: 50, Amplitude: 1, Phase: 0.1}, axis)},
		{WaveID: 9},
	}

	d := Detector{AmplitudeTolerance: 1e-3, Start: win.Start, End: win.End()}
	all := d.DetectAll(series, axis)

	require.Len(t, all, 10)
	times := make([]float64, len(all))
	for i, c := range all {
		assert.Equal(t, 7, c.WaveID)
		times[i] = c.Time
	}
	testutil.AssertMonotonic(t, times)
	testutil.AssertAllInRange(t, times, win.Start, win.End())
}
