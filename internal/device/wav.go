package device

import (
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WAV writes 16-bit PCM to a file. Each Open truncates the file.
type WAV struct {
	path string

	file    *os.File
	encoder *wav.Encoder
	buf     *audio.IntBuffer
	written int64
}

// NewWAV returns a WAV output targeting path.
func NewWAV(path string) *WAV {
	return &WAV{path: path}
}

// Frames returns the number of samples written since the last Open.
func (w *WAV) Frames() int64 { return w.written }

// Open creates the file and writes the header.
func (w *WAV) Open(sampleRate, channels int) error {
	if w.file != nil {
		return fmt.Errorf("wav output %s already open", w.path)
	}
	if sampleRate <= 0 || channels <= 0 {
		return fmt.Errorf("invalid wav format: %d Hz, %d channels", sampleRate, channels)
	}

	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	w.file = f
	w.encoder = wav.NewEncoder(f, sampleRate, wavBitDepth, channels, wavFormatPCM)
	w.buf = &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
		SourceBitDepth: wavBitDepth,
	}
	w.written = 0
	return nil
}

// Write converts block to 16-bit PCM and appends it.
func (w *WAV) Write(block []float32) error {
	if w.encoder == nil {
		return ErrNotOpen
	}

	if cap(w.buf.Data) < len(block) {
		w.buf.Data = make([]int, len(block))
	}
	w.buf.Data = w.buf.Data[:len(block)]
	for i, v := range block {
		w.buf.Data[i] = toPCM16(v)
	}

	if err := w.encoder.Write(w.buf); err != nil {
		return fmt.Errorf("failed to write samples: %w", err)
	}
	w.written += int64(len(block))
	return nil
}

// Close finalises the header and closes the file. Closing a closed output is
// a no-op.
func (w *WAV) Close() error {
	if w.file == nil {
		return nil
	}
	encErr := w.encoder.Close()
	fileErr := w.file.Close()
	w.file, w.encoder = nil, nil

	if encErr != nil {
		return fmt.Errorf("failed to finalise wav: %w", encErr)
	}
	if fileErr != nil {
		return fmt.Errorf("failed to close output file: %w", fileErr)
	}
	return nil
}

func toPCM16(v float32) int {
	switch {
	case v >= 1:
		return int16Max
	case v <= -1:
		return -int16Max
	case math.IsNaN(float64(v)):
		return 0
	}
	return int(v * int16Max)
}
