package harmony

import (
	"errors"
	"fmt"
	"time"

	"github.com/tphakala/go-harmony-explorer/internal/pipeline"
	"github.com/tphakala/go-harmony-explorer/internal/signal"
)

// Common errors returned by the explorer.
var (
	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid harmony configuration")

	// ErrUnknownNote is returned for a note name outside the keyboard.
	ErrUnknownNote = errors.New("unknown note")

	// ErrPlaybackBusy is returned when a previous worker has not exited yet.
	ErrPlaybackBusy = errors.New("previous playback still running")
)

// Config holds the initial explorer state and playback settings.
type Config struct {
	// Start and Span define the initial sampling window, in seconds.
	Start float64
	Span  float64

	// AmplitudeTolerancePercent is a percentage of the plot Y range.
	AmplitudeTolerancePercent float64

	// TimeProximity is the grouping tolerance in units of 0.0001 s.
	TimeProximity float64

	Player PlayerConfig
}

// PlayerConfig configures mix rendering and streaming.
type PlayerConfig struct {
	// SampleRate is the rate the mix is rendered at.
	SampleRate int

	// DeviceRate is the rate the output is opened at. Zero means SampleRate;
	// any other value inserts a resampling stage.
	DeviceRate int

	Duration  time.Duration
	BlockSize int

	// Volume is applied to every block, in (0, 1].
	Volume float64

	StopTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// DefaultConfig returns the settings the interactive tool starts with.
func DefaultConfig() Config {
	return Config{
		Start:                     signal.DefaultStart,
		Span:                      signal.DefaultSpan,
		AmplitudeTolerancePercent: DefaultAmplitudeTolerancePercent,
		TimeProximity:             DefaultTimeProximity,
		Player:                    DefaultPlayerConfig(),
	}
}

// DefaultPlayerConfig returns three seconds at 44.1 kHz in 1024-sample blocks.
func DefaultPlayerConfig() PlayerConfig {
	return PlayerConfig{
		SampleRate:      DefaultSampleRate,
		Duration:        DefaultDuration,
		BlockSize:       pipeline.DefaultBlockSize,
		Volume:          DefaultVolume,
		StopTimeout:     StopTimeout,
		ShutdownTimeout: ShutdownTimeout,
	}
}

// Validate checks if the configuration is valid. Window and tolerance values
// are clamped rather than rejected, so only the player settings can fail.
func (c *Config) Validate() error {
	return c.Player.Validate()
}

// Validate checks if the player configuration is valid.
func (c *PlayerConfig) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive", ErrInvalidConfig)
	}
	if c.DeviceRate < 0 {
		return fmt.Errorf("%w: device rate must not be negative", ErrInvalidConfig)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidConfig)
	}
	if int(c.Duration.Seconds()*float64(c.SampleRate)) < 1 {
		return fmt.Errorf("%w: duration %v is shorter than one sample", ErrInvalidConfig, c.Duration)
	}
	if c.BlockSize < 1 {
		return fmt.Errorf("%w: block size must be at least 1", ErrInvalidConfig)
	}
	if !(c.Volume > 0) || c.Volume > maxVolume {
		return fmt.Errorf("%w: volume must be in (0, %v]", ErrInvalidConfig, maxVolume)
	}
	if c.StopTimeout < 0 || c.ShutdownTimeout < 0 {
		return fmt.Errorf("%w: timeouts must not be negative", ErrInvalidConfig)
	}
	return nil
}

func (c *PlayerConfig) deviceRate() int {
	if c.DeviceRate == 0 {
		return c.SampleRate
	}
	return c.DeviceRate
}
