package harmony

import (
	"fmt"
	"math"

	"github.com/tphakala/go-harmony-explorer/internal/crossing"
	"github.com/tphakala/go-harmony-explorer/internal/signal"
)

// Window is the sampling window of a plot.
type Window = signal.Window

// Trace is one sampled wave.
type Trace struct {
	WaveID  int
	Color   string
	Label   string
	Samples []float64
}

// Marker is an alignment bar. Geometry is in plot coordinates.
type Marker struct {
	Time     float64
	Fraction float64
	Percent  float64
	WaveIDs  []int

	// Members counts every absorbed crossing, repeats from one wave included.
	Members int

	Bottom float64
	Height float64
	Width  float64

	Label  string
	LabelY float64
}

// Plot is everything needed to draw one refresh.
type Plot struct {
	Window Window
	Axis   []float64
	Traces []Trace

	YMin, YMax float64

	// AmplitudeTolerance and TimeTolerance are the absolute values used for
	// detection and grouping.
	AmplitudeTolerance float64
	TimeTolerance      float64

	Markers []Marker
}

// Empty reports whether there is nothing to draw.
func (p *Plot) Empty() bool {
	return len(p.Traces) == 0
}

// YRange returns YMax - YMin.
func (p *Plot) YRange() float64 {
	return p.YMax - p.YMin
}

// yLimits returns symmetric limits with 20% headroom over the amplitude sum,
// never tighter than ±1.2.
func yLimits(waves []Wave) (lo, hi float64) {
	sum := 0.0
	for _, w := range waves {
		sum += w.Amplitude
	}
	peak := math.Max(1, sum)
	if math.IsNaN(peak) || math.IsInf(peak, 0) {
		peak = 1
	}
	return -peak * yHeadroom, peak * yHeadroom
}

// barWidth is 0.15% of the drawn span or a fifth of the grouping tolerance,
// whichever is wider.
func barWidth(axis []float64, timeTol float64) float64 {
	if len(axis) < 2 {
		return 0
	}
	drawn := axis[len(axis)-1] - axis[0]
	width := math.Max(drawn*barWidthSpanFactor, timeTol*barWidthTolFactor)
	if width <= 0 {
		width = drawn * barWidthFallback
	}
	return width
}

func (p *Plot) marker(g crossing.Group, width float64) Marker {
	yRange := p.YRange()
	pct := g.Fraction * percentScale
	bottom := p.YMin + yRange*barBottomFraction
	height := g.Fraction * yRange * barHeightFraction

	return Marker{
		Time:     g.Time,
		Fraction: g.Fraction,
		Percent:  pct,
		WaveIDs:  g.WaveIDs,
		Members:  g.Members,
		Bottom:   bottom,
		Height:   height,
		Width:    width,
		Label:    fmt.Sprintf("%.0f%%", pct),
		LabelY:   bottom + height + labelOffset*math.Abs(yRange),
	}
}
