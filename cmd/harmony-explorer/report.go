package main

import (
	"fmt"
	"math"
	"strings"

	harmony "github.com/tphakala/go-harmony-explorer"
)

func (s *shell) printHelp() {
	fmt.Fprint(s.out, `Commands:
  add <freq>             add a wave (Hz)
  note <name>            toggle a piano key wave (C4..C5)
  rm <id>                remove a wave
  freq <id> <hz>         edit a frequency
  amp <id> <value>       set an amplitude
  phase <id> <radians>   set a phase
  window <start> <span>  set the time window (s)
  tol <amp%> <prox>      amplitude % of Y range, proximity in 0.0001 s
  play                   start or stop playback
  list | plot | keys | help | quit
`)
}

func (s *shell) printKeys() {
	for _, k := range harmony.Keyboard {
		fmt.Fprintf(s.out, "  %-4s %8.2f Hz\n", k.Name, k.Frequency)
	}
}

func (s *shell) printWaves() {
	waves := s.ex.Waves()
	if len(waves) == 0 {
		fmt.Fprintln(s.out, "No waves")
		return
	}
	for _, w := range waves {
		fmt.Fprintf(s.out, "  %3d  %-7s %10.2f Hz  amp %.3g  phase %.3g  %s\n",
			w.ID, w.Label(), w.Frequency, w.Amplitude, w.Phase, w.Color)
	}
}

// printPlot recomputes the plot and prints the window, a coarse trace of the
// sum and the alignment markers.
func (s *shell) printPlot() {
	plot := s.ex.Refresh()
	win := plot.Window
	fmt.Fprintf(s.out, "Window %.4g s .. %.4g s (%d samples), tolerance %.4g ms, amplitude tolerance %.3g\n",
		win.Start, win.End(), win.Count, plot.TimeTolerance*secondsToMillis, plot.AmplitudeTolerance)

	if plot.Empty() {
		fmt.Fprintln(s.out, "Add a sine wave to begin")
		return
	}
	fmt.Fprintf(s.out, "  %s\n", spark(plot))

	if len(plot.Markers) == 0 {
		fmt.Fprintln(s.out, "No alignments")
		return
	}
	fmt.Fprintf(s.out, "%d alignments:\n", len(plot.Markers))
	for i, m := range plot.Markers {
		if i == maxMarkersShown {
			fmt.Fprintf(s.out, "  ... %d more\n", len(plot.Markers)-i)
			break
		}
		fmt.Fprintf(s.out, "  t=%.6f s  %4s  waves %v\n", m.Time, m.Label, m.WaveIDs)
	}
}

var sparkLevels = []rune(" ▁▂▃▄▅▆▇█")

// spark renders the summed traces as one line of block characters.
func spark(plot harmony.Plot) string {
	n := len(plot.Axis)
	if n == 0 {
		return ""
	}
	width := min(sparkWidth, n)
	yRange := plot.YRange()

	var b strings.Builder
	for col := range width {
		i := col * n / width
		sum := 0.0
		for _, tr := range plot.Traces {
			sum += tr.Samples[i]
		}
		level := int(math.Round((sum - plot.YMin) / yRange * float64(len(sparkLevels)-1)))
		level = max(0, min(level, len(sparkLevels)-1))
		b.WriteRune(sparkLevels[level])
	}
	return b.String()
}
