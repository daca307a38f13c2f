// Command harmony-explorer explores superposed sine waves from a terminal.
//
// Usage:
//
//	harmony-explorer -wave 100,100.5 -span 0.1 -time-prox 5
//	harmony-explorer -note C4,E4,G4 -play -device portaudio
//	harmony-explorer -i                      # interactive shell
//
// Every command that changes the waves, the window or the tolerances is
// followed by a recomputation of the zero-crossing alignments, printed as a
// list of markers.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	harmony "github.com/tphakala/go-harmony-explorer"
	"github.com/tphakala/go-harmony-explorer/internal/device"
	"github.com/tphakala/go-harmony-explorer/internal/logging"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatal(err)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet(appName, flag.ContinueOnError)

	// Command-line flags
	var (
		waves       = fs.String("wave", "", "Comma-separated wave frequencies in Hz")
		notes       = fs.String("note", "", "Comma-separated piano notes (C4..C5, e.g. A4,C#4)")
		start       = fs.String("start", "0.0", "Window start in seconds")
		span        = fs.String("span", "0.1", "Window span in seconds")
		ampTol      = fs.String("amp-tol", fmt.Sprint(harmony.DefaultAmplitudeTolerancePercent), "Amplitude tolerance in % of the Y range (0.01-20)")
		timeProx    = fs.String("time-prox", fmt.Sprint(harmony.DefaultTimeProximity), "Time proximity in units of 0.0001 s (0-1000)")
		deviceKind  = fs.String("device", defaultDevice, "Audio output: "+kindList())
		outPath     = fs.String("out", defaultWAVPath, "Output path for -device wav")
		rate        = fs.Int("rate", 0, "Device sample rate in Hz (0 = 44100, resampled otherwise)")
		duration    = fs.Duration("duration", harmony.DefaultDuration, "Playback duration")
		volume      = fs.Float64("volume", harmony.DefaultVolume, "Playback volume (0-1]")
		play        = fs.Bool("play", false, "Play the mix once and exit")
		interactive = fs.Bool("i", false, "Start the interactive shell")
		logLevel    = fs.String("log-level", defaultLogLevel, "Log level: debug, info, warn, error")
		logFormat   = fs.String("log-format", defaultLogFormat, "Log format: console, json")
	)
	fs.Usage = func() {
		w := fs.Output()
		fmt.Fprintf(w, "Usage: %s [options]\n\n", appName)
		fmt.Fprintf(w, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(w, "\nExamples:\n")
		fmt.Fprintf(w, "  %s -wave 100,100.5 -time-prox 5      # Beat alignments\n", appName)
		fmt.Fprintf(w, "  %s -note C4,E4,G4 -play -device wav   # Render a chord to harmony.wav\n", appName)
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger, err := logging.New(
		logging.WithLevel(*logLevel),
		logging.WithEncoding(*logFormat),
		logging.WithFields(map[string]any{"app": appName, "device": *deviceKind}),
	)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logging.Sync(logger) }()

	out, err := device.New(device.Kind(*deviceKind), *outPath)
	if err != nil {
		return fmt.Errorf("failed to open audio output: %w", err)
	}

	cfg := harmony.DefaultConfig()
	cfg.Player.DeviceRate = *rate
	cfg.Player.Duration = *duration
	cfg.Player.Volume = *volume

	ex, err := harmony.New(cfg, harmony.WithOutput(out), harmony.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to create explorer: %w", err)
	}
	defer ex.Close()

	if _, ok := ex.EditWindow(*start, *span); !ok {
		logger.Warn("invalid window, using defaults", zap.String("start", *start), zap.String("span", *span))
	}
	if !ex.EditTolerances(*ampTol, *timeProx) {
		logger.Warn("invalid tolerance entry, keeping defaults", zap.String("amp_tol", *ampTol), zap.String("time_prox", *timeProx))
	}
	if err := addInitialWaves(ex, *waves, *notes, logger); err != nil {
		return err
	}

	sh := newShell(ex, stdout)
	sh.printPlot()
	switch {
	case *interactive:
		sh.run(context.Background(), stdin)
	case *play:
		if err := playOnce(ex, stdout, *duration); err != nil {
			return fmt.Errorf("playback failed: %w", err)
		}
	}
	return nil
}

// addInitialWaves adds the -wave frequencies and -note keys.
func addInitialWaves(ex *harmony.Explorer, waves, notes string, logger *zap.Logger) error {
	for _, field := range splitList(waves) {
		if w, ok := ex.AddWaveText(field); !ok {
			logger.Warn("unparsable frequency, using default",
				zap.String("input", field), zap.Float64("frequency", w.Frequency))
		}
	}
	for _, name := range splitList(notes) {
		if _, _, err := ex.PressKey(name); err != nil {
			return err
		}
	}
	return nil
}

// playOnce plays the current mix and waits for it to finish.
func playOnce(ex *harmony.Explorer, w io.Writer, duration time.Duration) error {
	state, err := ex.TogglePlayback()
	if err != nil {
		return err
	}
	if state != harmony.PlaybackPlaying {
		fmt.Fprintln(w, "Nothing to play.")
		return nil
	}

	fmt.Fprintf(w, "Playing %v...\n", duration)
	res := <-ex.PlaybackDone()
	ex.FinishPlayback(res)
	if res.Err != nil {
		return res.Err
	}
	fmt.Fprintf(w, "Played %d samples in %d blocks.\n", res.Stats.Samples, res.Stats.Blocks)
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func kindList() string {
	kinds := device.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}
