package harmony

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/tphakala/go-harmony-explorer/internal/device"
	"github.com/tphakala/go-harmony-explorer/internal/mixer"
	"github.com/tphakala/go-harmony-explorer/internal/pipeline"
)

// Output is the audio sink a Player streams to.
type Output = device.Output

// PlaybackState is what the play control should show.
type PlaybackState int

// Playback states.
const (
	PlaybackIdle PlaybackState = iota
	PlaybackPlaying
)

func (s PlaybackState) String() string {
	switch s {
	case PlaybackIdle:
		return "idle"
	case PlaybackPlaying:
		return "playing"
	default:
		return fmt.Sprintf("PlaybackState(%d)", int(s))
	}
}

// PlaybackStats summarises what reached the device.
type PlaybackStats struct {
	Voices    int
	Blocks    int
	Samples   int64
	Cancelled bool
	Silent    bool
}

// Result is sent once by the worker when a playback ends.
type Result struct {
	Stats PlaybackStats
	Err   error
}

// Player renders the current waves and streams them on one worker goroutine.
// Its methods must be called from a single goroutine.
type Player struct {
	cfg    PlayerConfig
	out    Output
	logger *zap.Logger

	state  PlaybackState
	cancel context.CancelFunc
	done   chan Result
	exited chan struct{}
}

// NewPlayer creates a player streaming to out. A nil logger disables logging.
func NewPlayer(cfg PlayerConfig, out Output, logger *zap.Logger) (*Player, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, fmt.Errorf("%w: output is nil", ErrInvalidConfig)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Player{cfg: cfg, out: out, logger: logger}, nil
}

// State returns the current playback state.
func (p *Player) State() PlaybackState {
	return p.state
}

// Done delivers the Result of the running playback. It is nil when idle.
func (p *Player) Done() <-chan Result {
	return p.done
}

// Toggle stops a running playback, or starts one from a snapshot of waves.
// Stopping never restarts. With nothing playable the player stays idle.
func (p *Player) Toggle(waves []Wave) (PlaybackState, error) {
	if p.state == PlaybackPlaying {
		p.stop(p.cfg.StopTimeout)
		return p.state, nil
	}

	if len(waves) == 0 {
		return p.state, nil
	}
	if p.workerAlive() {
		return p.state, ErrPlaybackBusy
	}

	mix, err := mixer.Render(signalWaves(waves), p.cfg.Duration.Seconds(), p.cfg.SampleRate)
	if errors.Is(err, mixer.ErrNoVoices) {
		p.logger.Debug("no playable waves", zap.Int("waves", len(waves)))
		return p.state, nil
	}
	if err != nil {
		return p.state, fmt.Errorf("render mix: %w", err)
	}
	if mix.Silent() {
		p.logger.Info("waves destructively interfered to silence", zap.Int("voices", mix.Voices))
	}

	pipe, err := p.pipeline()
	if err != nil {
		return p.state, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan Result, 1)
	exited := make(chan struct{})
	go p.run(ctx, mix, pipe, done, exited)

	p.state = PlaybackPlaying
	p.cancel, p.done, p.exited = cancel, done, exited

	p.logger.Info("playback started",
		zap.Int("voices", mix.Voices),
		zap.Int("sample_rate", mix.SampleRate),
		zap.Float64("duration_s", mix.Duration()),
		zap.Float64("peak", mix.Peak),
		zap.Float64("rms", mix.RMS))
	return p.state, nil
}

// Finish records a Result received from Done and returns to idle.
func (p *Player) Finish(res Result) {
	if res.Err != nil {
		p.logger.Error("playback failed", zap.Error(res.Err))
	} else {
		p.logger.Info("playback finished",
			zap.Int("blocks", res.Stats.Blocks),
			zap.Int64("samples", res.Stats.Samples),
			zap.Bool("cancelled", res.Stats.Cancelled))
	}
	p.reset()
}

// Close cancels any playback and waits up to ShutdownTimeout for the worker.
func (p *Player) Close() {
	if p.state != PlaybackPlaying {
		return
	}
	p.stop(p.cfg.ShutdownTimeout)
}

func (p *Player) stop(timeout time.Duration) {
	p.cancel()

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-p.exited:
		select {
		case res := <-p.done:
			if res.Err != nil {
				p.logger.Error("playback failed", zap.Error(res.Err))
			}
		default:
		}
		p.logger.Info("playback stopped")
	case <-timer.C:
		p.logger.Warn("audio worker did not stop in time", zap.Duration("timeout", timeout))
	}
	p.reset()
}

func (p *Player) reset() {
	if p.cancel != nil {
		p.cancel()
	}
	p.state = PlaybackIdle
	p.cancel = nil
	p.done = nil
}

// workerAlive reports whether the last worker is still running, which only
// happens after a stop timed out.
func (p *Player) workerAlive() bool {
	if p.exited == nil {
		return false
	}
	select {
	case <-p.exited:
		return false
	default:
		return true
	}
}

func (p *Player) pipeline() (*pipeline.Pipeline, error) {
	var stages []pipeline.Stage
	if rate := p.cfg.deviceRate(); rate != p.cfg.SampleRate {
		rs, err := pipeline.NewResampleStage(float64(p.cfg.SampleRate), float64(rate))
		if err != nil {
			return nil, err
		}
		stages = append(stages, rs, pipeline.ClampStage{})
	}

	pipe := pipeline.New(stages...)
	pipe.BlockSize = p.cfg.BlockSize
	pipe.Gain = p.cfg.Volume
	return pipe, nil
}

// run is the worker. It touches only its arguments and the output.
func (p *Player) run(ctx context.Context, mix mixer.Mix, pipe *pipeline.Pipeline, done chan<- Result, exited chan<- struct{}) {
	defer close(exited)

	res := Result{Stats: PlaybackStats{Voices: mix.Voices, Silent: mix.Silent()}}
	if err := p.out.Open(p.cfg.deviceRate(), monoChannels); err != nil {
		res.Err = fmt.Errorf("open output: %w", err)
		done <- res
		return
	}

	stats, err := pipe.Run(ctx, mix.Samples, p.out)
	res.Stats.Blocks = stats.Blocks
	res.Stats.Samples = stats.Samples
	res.Stats.Cancelled = stats.Cancelled
	if err != nil {
		res.Err = multierr.Append(res.Err, err)
	}
	if err := p.out.Close(); err != nil {
		res.Err = multierr.Append(res.Err, fmt.Errorf("close output: %w", err))
	}
	done <- res
}
