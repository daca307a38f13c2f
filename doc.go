// Package harmony explores superpositions of sine waves.
//
// An [Explorer] holds the active waves, the sampling window and the two
// alignment tolerances. Every mutating command is followed by an explicit
// call to [Explorer.Refresh], which samples each wave over the window, finds
// its zero crossings and clusters the crossings of different waves that
// happen at nearly the same time. The result is a [Plot]: traces plus one
// [Marker] per alignment, sized by the fraction of waves taking part.
//
// # Quick Start
//
//	ex, err := harmony.New(harmony.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer ex.Close()
//
//	ex.AddWave(100, "")
//	ex.AddWave(100.5, "")
//	plot := ex.Refresh()
//	for _, m := range plot.Markers {
//	    fmt.Printf("%.5f s  %s\n", m.Time, m.Label)
//	}
//
// # Units
//
// The amplitude tolerance is a percentage of the plot's Y range. The time
// proximity is expressed in units of 0.0001 s.
//
// # Playback
//
// [Explorer.TogglePlayback] renders a three second mono mix of the current
// waves and streams it to an output device on a single background goroutine.
// Pressing it again while playing stops playback without restarting it.
// Completion is delivered on [Explorer.PlaybackDone]; the caller passes the
// received [Result] to [Explorer.FinishPlayback] on its own goroutine.
//
// Explorer methods are not safe for concurrent use. They are meant to be
// called from one event loop.
package harmony
