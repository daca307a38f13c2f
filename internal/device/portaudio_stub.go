//go:build !portaudio

package device

import "fmt"

// NewPortAudio reports ErrUnavailable; build with -tags portaudio for speaker
// output.
func NewPortAudio(int) (Output, error) {
	return nil, fmt.Errorf("%w: built without portaudio support", ErrUnavailable)
}
