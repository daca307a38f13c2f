// Package device provides the audio sinks a rendered mix can be streamed to:
// the default speaker through PortAudio, a 16-bit WAV file, or nowhere.
package device

import (
	"errors"
	"fmt"
)

// Errors returned by outputs.
var (
	// ErrUnavailable is returned when an output was not compiled in.
	ErrUnavailable = errors.New("audio output unavailable")

	// ErrNotOpen is returned when writing to an output that is not open.
	ErrNotOpen = errors.New("audio output not open")

	// ErrUnknownKind is returned by Open for unrecognised output kinds.
	ErrUnknownKind = errors.New("unknown audio output kind")
)

// Output is a mono or interleaved float32 sink. Open and Close bracket one
// playback; an output may be reopened after Close.
type Output interface {
	Open(sampleRate, channels int) error
	Write(block []float32) error
	Close() error
}

// Kind names an output implementation.
type Kind string

// Supported output kinds.
const (
	KindPortAudio Kind = "portaudio"
	KindWAV       Kind = "wav"
	KindNull      Kind = "null"
)

// Kinds lists the accepted values for New, in help-text order.
func Kinds() []Kind {
	return []Kind{KindPortAudio, KindWAV, KindNull}
}

// New builds an output of the given kind. path is only used by KindWAV.
func New(kind Kind, path string) (Output, error) {
	switch kind {
	case KindPortAudio:
		return NewPortAudio(DefaultFramesPerBuffer)
	case KindWAV:
		if path == "" {
			return nil, fmt.Errorf("%w: wav output needs a file path", ErrUnavailable)
		}
		return NewWAV(path), nil
	case KindNull:
		return &Discard{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}
