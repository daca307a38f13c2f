// Package pipeline streams a rendered mix to an output device in fixed-size
// blocks, optionally passing it through conversion stages first.
package pipeline

import (
	"context"
	"fmt"

	"github.com/tphakala/go-harmony-explorer/internal/simdops"
)

// Stage transforms a stream of mono samples. Output length may differ from
// input length; Flush returns whatever the stage still holds.
type Stage interface {
	Process(input []float64) ([]float64, error)
	Flush() ([]float64, error)
}

// BlockWriter receives device blocks. Blocks are reused between calls.
type BlockWriter interface {
	Write(block []float32) error
}

// Stats summarises a streaming run.
type Stats struct {
	Blocks    int
	Samples   int64
	Cancelled bool
}

// Pipeline pushes input through Stages and writes BlockSize-sample blocks.
type Pipeline struct {
	BlockSize int
	ChunkSize int

	// Gain is applied to each float32 block. Zero is treated as unity.
	Gain float64

	Stages []Stage

	// OnBlock, if set, is called after every block written.
	OnBlock func(Stats)
}

// New returns a pipeline with default block and chunk sizes.
func New(stages ...Stage) *Pipeline {
	return &Pipeline{
		BlockSize: DefaultBlockSize,
		ChunkSize: DefaultChunkSize,
		Gain:      unityGain,
		Stages:    stages,
	}
}

// Run streams input to out. ctx is checked once before every block; a
// cancelled context stops the run between blocks and is reported through
// Stats.Cancelled rather than as an error.
func (p *Pipeline) Run(ctx context.Context, input []float64, out BlockWriter) (Stats, error) {
	blockSize := p.BlockSize
	if blockSize < 1 {
		blockSize = DefaultBlockSize
	}
	chunkSize := p.ChunkSize
	if chunkSize < 1 {
		chunkSize = DefaultChunkSize
	}
	gain := float32(p.Gain)
	if p.Gain == 0 {
		gain = unityGain
	}

	r := &run{
		ctx:     ctx,
		out:     out,
		ring:    NewRingBuffer(blockSize * ringBlocks),
		block64: make([]float64, blockSize),
		block32: make([]float32, blockSize),
		gain:    gain,
		onBlock: p.OnBlock,
	}

	for off := 0; off < len(input); off += chunkSize {
		data, err := p.process(0, input[off:min(off+chunkSize, len(input))])
		if err != nil {
			return r.stats, err
		}
		r.ring.Write(data)
		if done, err := r.drain(blockSize); done || err != nil {
			return r.stats, err
		}
	}

	for i, stage := range p.Stages {
		tail, err := stage.Flush()
		if err != nil {
			return r.stats, fmt.Errorf("flush stage %d: %w", i, err)
		}
		tail, err = p.process(i+1, tail)
		if err != nil {
			return r.stats, err
		}
		r.ring.Write(tail)
	}

	_, err := r.drain(1)
	return r.stats, err
}

// process runs data through Stages[from:].
func (p *Pipeline) process(from int, data []float64) ([]float64, error) {
	for i := from; i < len(p.Stages); i++ {
		if len(data) == 0 {
			return nil, nil
		}
		var err error
		data, err = p.Stages[i].Process(data)
		if err != nil {
			return nil, fmt.Errorf("stage %d: %w", i, err)
		}
	}
	return data, nil
}

type run struct {
	ctx     context.Context
	out     BlockWriter
	ring    *RingBuffer
	block64 []float64
	block32 []float32
	gain    float32
	onBlock func(Stats)
	stats   Stats
}

// drain writes blocks while at least minAvail samples are buffered.
// It reports done when the context was cancelled.
func (r *run) drain(minAvail int) (bool, error) {
	ops := simdops.Float32Ops()
	for r.ring.Available() >= minAvail && r.ring.Available() > 0 {
		if r.ctx.Err() != nil {
			r.stats.Cancelled = true
			return true, nil
		}

		n := r.ring.ReadInto(r.block64)
		blk := r.block32[:n]
		for i, v := range r.block64[:n] {
			blk[i] = float32(v)
		}
		if r.gain != unityGain {
			ops.Scale(blk, blk, r.gain)
		}

		if err := r.out.Write(blk); err != nil {
			return false, fmt.Errorf("write block %d: %w", r.stats.Blocks, err)
		}
		r.stats.Blocks++
		r.stats.Samples += int64(n)
		if r.onBlock != nil {
			r.onBlock(r.stats)
		}
	}
	return false, nil
}
