package pipeline

import (
	"fmt"

	resampling "github.com/tphakala/go-audio-resampler"
)

// NewResampleStage converts the stream from inputRate to outputRate with the
// high quality polyphase resampler.
func NewResampleStage(inputRate, outputRate float64) (Stage, error) {
	r, err := resampling.New(&resampling.Config{
		InputRate:  inputRate,
		OutputRate: outputRate,
		Channels:   1,
		Quality:    resampling.QualitySpec{Preset: resampling.QualityHigh},
		EnableSIMD: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create resampler %g Hz -> %g Hz: %w", inputRate, outputRate, err)
	}
	return r, nil
}

// ClampStage hard-limits samples to [-1, 1]. Filter overshoot after
// resampling can push a normalised mix slightly past full scale.
type ClampStage struct{}

// Process clamps input in place and returns it.
func (ClampStage) Process(input []float64) ([]float64, error) {
	for i, v := range input {
		if v > 1.0 {
			input[i] = 1.0
		} else if v < -1.0 {
			input[i] = -1.0
		}
	}
	return input, nil
}

// Flush returns nothing; the stage holds no state.
func (ClampStage) Flush() ([]float64, error) {
	return nil, nil
}
