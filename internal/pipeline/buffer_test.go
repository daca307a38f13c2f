package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingBuffer_WriteRead(t *testing.T) {
	b := NewRingBuffer(4)
	b.Write([]float64{1, 2, 3})
	assert.Equal(t, 3, b.Available())

	dst := make([]float64, 2)
	require.Equal(t, 2, b.ReadInto(dst))
	assert.Equal(t, []float64{1, 2}, dst)

	// Wraps around the end of the backing array.
	b.Write([]float64{4, 5, 6})
	assert.Equal(t, 4, b.capacity)
	dst = make([]float64, 4)
	require.Equal(t, 4, b.ReadInto(dst))
	assert.Equal(t, []float64{3, 4, 5, 6}, dst)
	assert.Equal(t, 0, b.Available())
}

func TestRingBuffer_GrowPreservesOrder(t *testing.T) {
	b := NewRingBuffer(4)
	b.Write([]float64{1, 2, 3})
	dst := make([]float64, 2)
	b.ReadInto(dst)

	b.Write([]float64{4, 5, 6, 7, 8})
	assert.GreaterOrEqual(t, b.capacity, 6)
	assert.Equal(t, 6, b.Available())

	out := make([]float64, 10)
	n := b.ReadInto(out)
	assert.Equal(t, []float64{3, 4, 5, 6, 7, 8}, out[:n])
}

func TestRingBuffer_ShortRead(t *testing.T) {
	b := NewRingBuffer(0)
	assert.Equal(t, 1, b.capacity)
	assert.Equal(t, 0, b.ReadInto(make([]float64, 3)))

	b.Write([]float64{9})
	dst := make([]float64, 3)
	assert.Equal(t, 1, b.ReadInto(dst))
	assert.InDelta(t, 9.0, dst[0], 0)
}
