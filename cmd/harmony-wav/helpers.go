package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-audio/wav"

	harmony "github.com/tphakala/go-harmony-explorer"
	"github.com/tphakala/go-harmony-explorer/internal/device"
	"github.com/tphakala/go-harmony-explorer/internal/mixer"
	"github.com/tphakala/go-harmony-explorer/internal/pipeline"
	"github.com/tphakala/go-harmony-explorer/internal/signal"
)

// renderJob describes one file to produce.
type renderJob struct {
	outputPath string
	freqs      []float64
	duration   time.Duration
	targetRate int
	volume     float64
	verbose    bool
}

type renderStats struct {
	voices     int
	outputRate int
	samples    int64
	blocks     int
	peak       float64
	rms        float64
	dc         float64
}

// render mixes the waves at the default rate and streams them to the file,
// resampling when the target rate differs.
func (j *renderJob) render() (*renderStats, error) {
	if j.targetRate <= 0 {
		return nil, fmt.Errorf("invalid target rate: %d Hz", j.targetRate)
	}
	if !(j.volume > 0) || j.volume > 1 {
		return nil, fmt.Errorf("volume must be in (0, 1], got %v", j.volume)
	}

	waves := make([]signal.Wave, len(j.freqs))
	for i, f := range j.freqs {
		waves[i] = signal.Wave{Frequency: f, Amplitude: harmony.DefaultAmplitude}
	}

	mix, err := mixer.Render(waves, j.duration.Seconds(), harmony.DefaultSampleRate)
	if err != nil {
		return nil, fmt.Errorf("failed to render mix: %w", err)
	}

	pipe, err := newRenderPipeline(harmony.DefaultSampleRate, j.targetRate)
	if err != nil {
		return nil, err
	}
	pipe.Gain = j.volume

	expected := int64(float64(len(mix.Samples)) * float64(j.targetRate) / float64(mix.SampleRate))
	tracker := newProgressTracker(expected, j.verbose)
	pipe.OnBlock = func(s pipeline.Stats) { tracker.reportIfNeeded(s.Samples) }

	out := device.NewWAV(j.outputPath)
	if err := out.Open(j.targetRate, 1); err != nil {
		return nil, err
	}
	stats, runErr := pipe.Run(context.Background(), mix.Samples, out)
	if err := out.Close(); err != nil && runErr == nil {
		runErr = err
	}
	if runErr != nil {
		return nil, runErr
	}

	if out.Frames() != stats.Samples {
		return nil, fmt.Errorf("wrote %d frames, pipeline produced %d samples", out.Frames(), stats.Samples)
	}

	return &renderStats{
		voices:     mix.Voices,
		outputRate: j.targetRate,
		samples:    out.Frames(),
		blocks:     stats.Blocks,
		peak:       mix.Peak,
		rms:        mix.RMS,
		dc:         mix.DC,
	}, nil
}

// newRenderPipeline returns a pipeline converting inputRate to outputRate.
func newRenderPipeline(inputRate, outputRate int) (*pipeline.Pipeline, error) {
	if inputRate == outputRate {
		return pipeline.New(), nil
	}
	rs, err := pipeline.NewResampleStage(float64(inputRate), float64(outputRate))
	if err != nil {
		return nil, fmt.Errorf("failed to create resampler: %w", err)
	}
	return pipeline.New(rs, pipeline.ClampStage{}), nil
}

// wavInputInfo holds validated input file information.
type wavInputInfo struct {
	file         *os.File
	decoder      *wav.Decoder
	rate         int
	channels     int
	bitDepth     int
	totalSamples int64
}

// openWAVInput opens and validates a WAV file, returning format information.
func openWAVInput(path string, verbose bool) (*wavInputInfo, error) {
	inputFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	decoder := wav.NewDecoder(inputFile)
	if !decoder.IsValidFile() {
		_ = inputFile.Close()
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	format := decoder.Format()
	bitDepth := int(decoder.BitDepth)
	if verbose {
		log.Printf("Written format: %d Hz, %d channels, %d-bit", format.SampleRate, format.NumChannels, bitDepth)
	}

	if err := decoder.FwdToPCM(); err != nil {
		_ = inputFile.Close()
		return nil, fmt.Errorf("failed to locate PCM data: %w", err)
	}
	var totalSamples int64
	if frameBytes := int64(bitDepth/bitsPerByte) * int64(format.NumChannels); frameBytes > 0 {
		totalSamples = decoder.PCMLen() / frameBytes
	}

	return &wavInputInfo{
		file:         inputFile,
		decoder:      decoder,
		rate:         format.SampleRate,
		channels:     format.NumChannels,
		bitDepth:     bitDepth,
		totalSamples: totalSamples,
	}, nil
}

// check compares the file against what was rendered.
func (w *wavInputInfo) check(stats *renderStats) error {
	switch {
	case w.rate != stats.outputRate:
		return fmt.Errorf("sample rate mismatch: file %d Hz, rendered %d Hz", w.rate, stats.outputRate)
	case w.channels != 1:
		return fmt.Errorf("expected mono file, got %d channels", w.channels)
	case w.bitDepth != bitsPerSample16:
		return fmt.Errorf("expected 16-bit file, got %d-bit", w.bitDepth)
	case w.totalSamples != stats.samples:
		return fmt.Errorf("length mismatch: file %d samples, rendered %d", w.totalSamples, stats.samples)
	}

	data, err := w.readAll()
	if err != nil {
		return err
	}
	if int64(len(data)) != stats.samples {
		return fmt.Errorf("decoded %d samples, rendered %d", len(data), stats.samples)
	}
	peak := 0
	for _, v := range data {
		peak = max(peak, v, -v)
	}
	if peak > pcm16Max {
		return fmt.Errorf("decoded peak %d exceeds 16-bit full scale", peak)
	}
	if peak == 0 && stats.peak > 0 {
		return errors.New("file is silent but the mix is not")
	}
	return nil
}

// Close closes the input file.
func (w *wavInputInfo) Close() error {
	return w.file.Close()
}

// progressTracker handles progress reporting.
type progressTracker struct {
	totalSamples int64
	lastProgress int
	verbose      bool
}

// newProgressTracker creates a new progress tracker.
func newProgressTracker(totalSamples int64, verbose bool) *progressTracker {
	return &progressTracker{
		totalSamples: totalSamples,
		verbose:      verbose,
	}
}

// reportIfNeeded reports progress if threshold crossed.
func (p *progressTracker) reportIfNeeded(currentSamples int64) {
	if !p.verbose || p.totalSamples == 0 {
		return
	}

	progress := int(float64(currentSamples) / float64(p.totalSamples) * percentScale)
	if progress >= p.lastProgress+progressInterval {
		log.Printf("Progress: %d%%", progress)
		p.lastProgress = progress
	}
}

// readAll decodes the remaining PCM data.
func (w *wavInputInfo) readAll() ([]int, error) {
	buf, err := w.decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to decode PCM data: %w", err)
	}
	return buf.Data, nil
}
