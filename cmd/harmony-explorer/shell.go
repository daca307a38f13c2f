package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	harmony "github.com/tphakala/go-harmony-explorer"
)

// shell is the line-oriented front end. All explorer calls happen on the
// goroutine running run.
type shell struct {
	ex  *harmony.Explorer
	out io.Writer
}

func newShell(ex *harmony.Explorer, out io.Writer) *shell {
	return &shell{ex: ex, out: out}
}

// run reads commands from in until EOF, quit or ctx is done, and reports
// playback completion as it arrives.
func (s *shell) run(ctx context.Context, in io.Reader) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	fmt.Fprint(s.out, prompt)
	for {
		select {
		case <-ctx.Done():
			return
		case res := <-s.ex.PlaybackDone():
			s.ex.FinishPlayback(res)
			s.reportPlayback(res)
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(s.out)
				return
			}
			if !s.exec(line) {
				return
			}
			fmt.Fprint(s.out, prompt)
		}
	}
}

// exec runs one command line and reports whether the shell should continue.
func (s *shell) exec(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case cmdQuit, cmdExit:
		return false
	case cmdHelp:
		s.printHelp()
	case cmdList:
		s.printWaves()
	case cmdPlot:
		s.printPlot()
	case cmdKeys:
		s.printKeys()
	case cmdPlay:
		s.togglePlayback()
	case cmdAdd:
		if !s.need(args, 1, "add <freq>") {
			return true
		}
		w, ok := s.ex.AddWaveText(args[0])
		if !ok {
			fmt.Fprintf(s.out, "Not a number: %q, using %.2f Hz\n", args[0], w.Frequency)
		}
		fmt.Fprintf(s.out, "Added wave %d: %.2f Hz\n", w.ID, w.Frequency)
		s.printPlot()
	case cmdNote:
		if !s.need(args, 1, "note <name>") {
			return true
		}
		w, added, err := s.ex.PressKey(args[0])
		switch {
		case err != nil:
			fmt.Fprintf(s.out, "%v\n", err)
			return true
		case added:
			fmt.Fprintf(s.out, "Added wave %d: %s %.2f Hz\n", w.ID, w.Note, w.Frequency)
		default:
			fmt.Fprintf(s.out, "Removed wave %d: %s\n", w.ID, w.Note)
		}
		s.printPlot()
	case cmdRemove:
		id, ok := s.waveID(args, "rm <id>")
		if !ok {
			return true
		}
		if !s.ex.RemoveWave(id) {
			fmt.Fprintf(s.out, "No wave %d\n", id)
			return true
		}
		s.printPlot()
	case cmdFreq:
		id, ok := s.waveID(args, "freq <id> <hz>")
		if !ok || !s.need(args, 2, "freq <id> <hz>") {
			return true
		}
		if _, found := s.ex.Wave(id); !found {
			fmt.Fprintf(s.out, "No wave %d\n", id)
			return true
		}
		f, parsed := s.ex.EditFrequency(id, args[1])
		if !parsed {
			fmt.Fprintf(s.out, "Not a number: %q, keeping %.2f Hz\n", args[1], f)
		}
		s.printPlot()
	case cmdAmp, cmdPhase:
		id, ok := s.waveID(args, cmd+" <id> <value>")
		if !ok || !s.need(args, 2, cmd+" <id> <value>") {
			return true
		}
		v, parsed := harmony.ParseFloat(args[1])
		if !parsed {
			fmt.Fprintf(s.out, "Not a number: %q\n", args[1])
			return true
		}
		set := s.ex.SetAmplitude
		if cmd == cmdPhase {
			set = s.ex.SetPhase
		}
		if !set(id, v) {
			fmt.Fprintf(s.out, "No wave %d\n", id)
			return true
		}
		s.printPlot()
	case cmdWindow:
		if !s.need(args, 2, "window <start> <span>") {
			return true
		}
		win, ok := s.ex.EditWindow(args[0], args[1])
		if !ok {
			fmt.Fprintf(s.out, "Invalid window, reset to %.4g s + %.4g s\n", win.Start, win.Span)
		}
		s.printPlot()
	case cmdTol:
		if !s.need(args, 2, "tol <amp%> <prox>") {
			return true
		}
		if !s.ex.EditTolerances(args[0], args[1]) {
			amp, prox := s.ex.Tolerances()
			fmt.Fprintf(s.out, "Invalid tolerance kept as %.4g%% / %.4g\n", amp, prox)
		}
		s.printPlot()
	default:
		fmt.Fprintf(s.out, "Unknown command %q (try help)\n", cmd)
	}
	return true
}

func (s *shell) need(args []string, n int, usage string) bool {
	if len(args) < n {
		fmt.Fprintf(s.out, "Usage: %s\n", usage)
		return false
	}
	return true
}

func (s *shell) waveID(args []string, usage string) (int, bool) {
	if !s.need(args, 1, usage) {
		return 0, false
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(s.out, "Invalid wave id %q\n", args[0])
		return 0, false
	}
	return id, true
}

func (s *shell) togglePlayback() {
	state, err := s.ex.TogglePlayback()
	if err != nil {
		fmt.Fprintf(s.out, "Playback: %v\n", err)
		return
	}
	switch {
	case state == harmony.PlaybackPlaying:
		fmt.Fprintln(s.out, "Playing (play again to stop)")
	case len(s.ex.Waves()) == 0:
		fmt.Fprintln(s.out, "Add a wave first")
	default:
		fmt.Fprintln(s.out, "Stopped")
	}
}

func (s *shell) reportPlayback(res harmony.Result) {
	if res.Err != nil {
		fmt.Fprintf(s.out, "\nPlayback failed: %v\n%s", res.Err, prompt)
		return
	}
	fmt.Fprintf(s.out, "\nPlayback finished (%d blocks)\n%s", res.Stats.Blocks, prompt)
}
