package crossing

import (
	"cmp"
	"math"
	"slices"

	"github.com/tphakala/go-harmony-explorer/internal/mathutil"
)

// Group is a cluster of crossings from at least two different waves.
type Group struct {
	// Time is the mean of the member crossing times.
	Time float64

	// WaveIDs lists the distinct participating waves in ascending order.
	WaveIDs []int

	// Members is the number of crossings absorbed, duplicates included.
	Members int

	// Fraction is len(WaveIDs) divided by the total active wave count.
	Fraction float64
}

// Grouper clusters crossings with a fixed-origin tolerance window.
type Grouper struct {
	// Tolerance is the maximum distance from a group's first crossing, in seconds.
	Tolerance float64

	// SamplePeriod is the plot axis step; it bounds the merge tolerance from below.
	SamplePeriod float64
}

// MergeTolerance is the distance under which two group times are reported once.
func (g Grouper) MergeTolerance() float64 {
	period := g.SamplePeriod
	if !(period > 0) {
		period = fallbackSamplePeriod
	}
	return math.Max(g.tolerance()*mergeFactor, period)
}

func (g Grouper) tolerance() float64 {
	if !(g.Tolerance > 0) {
		return 0
	}
	return g.Tolerance
}

// Group clusters crossings and returns the accepted groups in time order.
//
// Each group is anchored at its first crossing and absorbs every following
// crossing within Tolerance of that anchor; the window does not slide with
// later members. Scanning resumes at the first crossing outside the window.
// Groups need two distinct waves, and a group whose time falls within
// MergeTolerance of an already accepted group is dropped.
//
// totalWaves below two always yields nil. The input slice is not modified.
func (g Grouper) Group(crossings []Crossing, totalWaves int) []Group {
	if totalWaves < minParticipants || len(crossings) < minParticipants {
		return nil
	}

	sorted := slices.Clone(crossings)
	slices.SortStableFunc(sorted, func(a, b Crossing) int {
		if c := cmp.Compare(a.Time, b.Time); c != 0 {
			return c
		}
		return cmp.Compare(a.WaveID, b.WaveID)
	})

	tol := g.tolerance()
	merge := g.MergeTolerance()

	var (
		groups   []Group
		accepted []float64
		times    []float64
	)
	for i := 0; i < len(sorted); {
		anchor := sorted[i].Time
		j := i + 1
		for j < len(sorted) && sorted[j].Time-anchor <= tol {
			j++
		}

		members := sorted[i:j]
		i = j

		ids := distinctWaves(members)
		if len(ids) < minParticipants {
			continue
		}

		times = times[:0]
		for _, c := range members {
			times = append(times, c.Time)
		}
		mean := mathutil.Mean(times)

		if tooClose(mean, accepted, merge) {
			continue
		}
		accepted = append(accepted, mean)

		groups = append(groups, Group{
			Time:     mean,
			WaveIDs:  ids,
			Members:  len(members),
			Fraction: float64(len(ids)) / float64(totalWaves),
		})
	}
	return groups
}

func distinctWaves(members []Crossing) []int {
	ids := make([]int, 0, len(members))
	for _, c := range members {
		ids = append(ids, c.WaveID)
	}
	slices.Sort(ids)
	return slices.Compact(ids)
}

func tooClose(t float64, accepted []float64, merge float64) bool {
	for _, a := range accepted {
		if math.Abs(t-a) < merge {
			return true
		}
	}
	return false
}
