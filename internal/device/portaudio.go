//go:build portaudio

package device

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// PortAudio plays through the default output device using a blocking stream.
type PortAudio struct {
	framesPerBuffer int
	channels        int

	stream *portaudio.Stream
	buf    []float32
}

// NewPortAudio returns a speaker output writing framesPerBuffer frames per
// device write.
func NewPortAudio(framesPerBuffer int) (Output, error) {
	if framesPerBuffer <= 0 {
		framesPerBuffer = DefaultFramesPerBuffer
	}
	return &PortAudio{framesPerBuffer: framesPerBuffer}, nil
}

// Open initialises PortAudio and starts the default output stream.
func (p *PortAudio) Open(sampleRate, channels int) error {
	if p.stream != nil {
		return fmt.Errorf("portaudio stream already open")
	}
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("error initialising portaudio: %w", err)
	}

	p.channels = channels
	p.buf = make([]float32, p.framesPerBuffer*channels)
	stream, err := portaudio.OpenDefaultStream(0, channels, float64(sampleRate), p.framesPerBuffer, &p.buf)
	if err != nil {
		_ = portaudio.Terminate()
		return fmt.Errorf("error opening stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		_ = stream.Close()
		_ = portaudio.Terminate()
		return fmt.Errorf("error starting stream: %w", err)
	}

	p.stream = stream
	return nil
}

// Write plays block, splitting or zero-padding it to the device buffer size.
func (p *PortAudio) Write(block []float32) error {
	if p.stream == nil {
		return ErrNotOpen
	}
	for len(block) > 0 {
		n := copy(p.buf, block)
		clear(p.buf[n:])
		block = block[n:]
		if err := p.stream.Write(); err != nil {
			return fmt.Errorf("error writing stream: %w", err)
		}
	}
	return nil
}

// Close stops the stream and releases PortAudio.
func (p *PortAudio) Close() error {
	if p.stream == nil {
		return nil
	}
	stopErr := p.stream.Stop()
	closeErr := p.stream.Close()
	termErr := portaudio.Terminate()
	p.stream = nil

	switch {
	case stopErr != nil:
		return fmt.Errorf("error stopping stream: %w", stopErr)
	case closeErr != nil:
		return fmt.Errorf("error closing stream: %w", closeErr)
	case termErr != nil:
		return fmt.Errorf("error terminating portaudio: %w", termErr)
	}
	return nil
}
