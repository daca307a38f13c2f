package pipeline

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder is a BlockWriter that keeps copies of every block.
type recorder struct {
	blocks  [][]float32
	onWrite func(n int)
	err     error
}

func (r *recorder) Write(block []float32) error {
	if r.err != nil {
		return r.err
	}
	r.blocks = append(r.blocks, append([]float32(nil), block...))
	if r.onWrite != nil {
		r.onWrite(len(r.blocks))
	}
	return nil
}

func (r *recorder) samples() []float32 {
	var out []float32
	for _, b := range r.blocks {
		out = append(out, b...)
	}
	return out
}

func ramp(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i) / float64(n)
	}
	return out
}

func TestRun_FixedBlocksWithPartialTail(t *testing.T) {
	p := New()
	p.ChunkSize = 700
	input := ramp(3000)

	rec := &recorder{}
	stats, err := p.Run(context.Background(), input, rec)
	require.NoError(t, err)

	assert.False(t, stats.Cancelled)
	assert.Equal(t, 3, stats.Blocks)
	assert.Equal(t, int64(3000), stats.Samples)
	require.Len(t, rec.blocks, 3)
	assert.Len(t, rec.blocks[0], DefaultBlockSize)
	assert.Len(t, rec.blocks[1], DefaultBlockSize)
	assert.Len(t, rec.blocks[2], 3000-2*DefaultBlockSize)

	got := rec.samples()
	for i, v := range input {
		require.InDelta(t, v, float64(got[i]), 1e-6, "sample %d", i)
	}
}

func TestRun_EmptyInput(t *testing.T) {
	rec := &recorder{}
	stats, err := New().Run(context.Background(), nil, rec)
	require.NoError(t, err)
	assert.Equal(t, Stats{}, stats)
	assert.Empty(t, rec.blocks)
}

func TestRun_CancelStopsAtBlockBoundary(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec := &recorder{onWrite: func(n int) {
		if n == 3 {
			cancel()
		}
	}}

	stats, err := New().Run(ctx, ramp(20*DefaultBlockSize), rec)
	require.NoError(t, err)
	assert.True(t, stats.Cancelled)
	assert.Equal(t, 3, stats.Blocks)
	assert.Len(t, rec.blocks, 3)
}

func TestRun_AlreadyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := &recorder{}
	stats, err := New().Run(ctx, ramp(4096), rec)
	require.NoError(t, err)
	assert.True(t, stats.Cancelled)
	assert.Empty(t, rec.blocks)
}

func TestRun_WriteErrorIsWrapped(t *testing.T) {
	sentinel := errors.New("device gone")
	_, err := New().Run(context.Background(), ramp(4096), &recorder{err: sentinel})
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)
	assert.Contains(t, err.Error(), "write block 0")
}

func TestRun_Gain(t *testing.T) {
	p := New()
	p.Gain = 0.5
	input := []float64{1, -1, 0.5}

	rec := &recorder{}
	_, err := p.Run(context.Background(), input, rec)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float32{0.5, -0.5, 0.25}, rec.samples(), 1e-6)
}

func TestRun_OnBlockProgress(t *testing.T) {
	p := New()
	var seen []int
	p.OnBlock = func(s Stats) { seen = append(seen, s.Blocks) }

	_, err := p.Run(context.Background(), ramp(2*DefaultBlockSize+1), &recorder{})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, seen)
}

// delayStage holds back its last sample until Flush.
type delayStage struct {
	held    []float64
	flushed bool
}

func (d *delayStage) Process(input []float64) ([]float64, error) {
	all := append(d.held, input...)
	d.held = []float64{all[len(all)-1]}
	return all[:len(all)-1], nil
}

func (d *delayStage) Flush() ([]float64, error) {
	d.flushed = true
	out := d.held
	d.held = nil
	return out, nil
}

type failingStage struct{ err error }

func (f failingStage) Process([]float64) ([]float64, error) { return nil, f.err }
func (f failingStage) Flush() ([]float64, error)            { return nil, nil }

func TestRun_StagesAreFlushed(t *testing.T) {
	first, second := &delayStage{}, &delayStage{}
	p := New(first, second)
	input := []float64{0.1, 0.2, 0.3, 0.4}

	rec := &recorder{}
	stats, err := p.Run(context.Background(), input, rec)
	require.NoError(t, err)
	assert.True(t, first.flushed)
	assert.True(t, second.flushed)
	assert.Equal(t, int64(4), stats.Samples)
	assert.InDeltaSlice(t, []float32{0.1, 0.2, 0.3, 0.4}, rec.samples(), 1e-6)
}

func TestRun_StageError(t *testing.T) {
	sentinel := errors.New("bad stage")
	_, err := New(failingStage{err: sentinel}).Run(context.Background(), ramp(10), &recorder{})
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)
	assert.Contains(t, err.Error(), "stage 0")
}

func TestClampStage(t *testing.T) {
	out, err := ClampStage{}.Process([]float64{1.5, -2, 0.25})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, -1, 0.25}, out)

	tail, err := ClampStage{}.Flush()
	require.NoError(t, err)
	assert.Empty(t, tail)
}

func TestResampleStage_Length(t *testing.T) {
	const inRate, outRate = 44100.0, 48000.0
	input := make([]float64, int(inRate))
	for i := range input {
		input[i] = 0.5 * math.Sin(2*math.Pi*440*float64(i)/inRate)
	}

	stage, err := NewResampleStage(inRate, outRate)
	require.NoError(t, err)

	rec := &recorder{}
	stats, err := New(stage, ClampStage{}).Run(context.Background(), input, rec)
	require.NoError(t, err)
	assert.InEpsilon(t, outRate, float64(stats.Samples), 0.05)

	for _, v := range rec.samples() {
		require.LessOrEqual(t, math.Abs(float64(v)), 1.0)
	}
}

func TestResampleStage_InvalidRate(t *testing.T) {
	_, err := NewResampleStage(0, 48000)
	require.Error(t, err)
}
