// Command harmony-wav renders the mix of a set of sine waves to a WAV file.
//
// Usage:
//
//	harmony-wav -wave 100,100.5 beat.wav
//	harmony-wav -note C4,E4,G4 -duration 5 chord.wav
//	harmony-wav -note A4 -rate 48 -verify a4_48k.wav   # render at 44.1 kHz, resample to 48 kHz
//
// The mix is rendered and normalised exactly as for playback, then streamed
// through the same block pipeline into a 16-bit mono file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime/pprof"
	"strings"
	"time"

	harmony "github.com/tphakala/go-harmony-explorer"
)

const (
	// Conversion constants
	kHzToHz          = 1000
	progressInterval = 10 // Print progress every N%
	percentScale     = 100

	// Sample format constants
	bitsPerSample16 = 16
	bitsPerByte     = 8
	pcm16Max        = 32767

	// CLI defaults
	defaultRateKHz  = 44.1
	defaultSeconds  = 3.0
	minRequiredArgs = 1
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Parse command line flags
	waves := flag.String("wave", "", "Comma-separated wave frequencies in Hz")
	notes := flag.String("note", "", "Comma-separated piano notes (C4..C5)")
	seconds := flag.Float64("duration", defaultSeconds, "Duration in seconds")
	rateKHz := flag.Float64("rate", defaultRateKHz, "Output sample rate in kHz (e.g., 16, 44.1, 48, 96)")
	volume := flag.Float64("volume", harmony.DefaultVolume, "Output gain (0-1]")
	verify := flag.Bool("verify", false, "Read the file back and check its format and samples")
	verbose := flag.Bool("v", false, "Verbose output")
	cpuprofile := flag.String("cpuprofile", "", "Write CPU profile to file")
	flag.Parse()

	args := flag.Args()
	if len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] output.wav\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -wave 100,100.5 beat.wav          # Half-hertz beat\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -note C4,E4,G4 chord.wav          # C major triad\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -note A4 -rate 48 a4_48k.wav      # Resampled to 48 kHz\n", os.Args[0])
		return errors.New("insufficient arguments")
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	freqs, err := collectFrequencies(*waves, *notes)
	if err != nil {
		return err
	}

	job := renderJob{
		outputPath: args[0],
		freqs:      freqs,
		duration:   time.Duration(*seconds * float64(time.Second)),
		targetRate: int(*rateKHz * kHzToHz),
		volume:     *volume,
		verbose:    *verbose,
	}

	if *verbose {
		log.Printf("Output: %s", job.outputPath)
		log.Printf("Waves: %v Hz", freqs)
		log.Printf("Render rate: %d Hz, target rate: %d Hz", harmony.DefaultSampleRate, job.targetRate)
	}

	start := time.Now()
	stats, err := job.render()
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("Rendered %d waves -> %s\n", stats.voices, filepath.Base(job.outputPath))
	fmt.Printf("  %d Hz, mono, 16-bit, %d samples in %d blocks\n", stats.outputRate, stats.samples, stats.blocks)
	fmt.Printf("  Peak before normalisation: %.3f, RMS: %.3f, DC: %.2g\n", stats.peak, stats.rms, stats.dc)
	fmt.Printf("  Took %.2fs\n", elapsed.Seconds())

	if *verify {
		info, err := openWAVInput(job.outputPath, *verbose)
		if err != nil {
			return err
		}
		defer func() { _ = info.Close() }()
		if err := info.check(stats); err != nil {
			return err
		}
		fmt.Println("  Verified")
	}
	return nil
}

// collectFrequencies merges -wave and -note into a frequency list.
func collectFrequencies(waves, notes string) ([]float64, error) {
	var freqs []float64
	for _, field := range splitList(waves) {
		f, ok := harmony.ParseFrequency(field, 0)
		if !ok || f <= 0 {
			return nil, fmt.Errorf("invalid frequency %q", field)
		}
		freqs = append(freqs, f)
	}
	for _, name := range splitList(notes) {
		k, ok := harmony.LookupNote(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", harmony.ErrUnknownNote, name)
		}
		freqs = append(freqs, k.Frequency)
	}
	if len(freqs) == 0 {
		return nil, errors.New("no waves given (use -wave or -note)")
	}
	return freqs, nil
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
