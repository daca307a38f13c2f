package pipeline

// RingBuffer is a growable circular sample buffer sitting between the stage
// chain, which produces variable-length output, and the fixed-size device
// blocks. It is owned by a single goroutine.
type RingBuffer struct {
	data     []float64
	capacity int
	size     int
	readPos  int
	writePos int
}

// NewRingBuffer creates a new ring buffer with the specified capacity.
func NewRingBuffer(capacity int) *RingBuffer {
	if capacity < 1 {
		capacity = 1
	}

	return &RingBuffer{
		data:     make([]float64, capacity),
		capacity: capacity,
	}
}

// Write appends samples, growing the buffer when it runs out of space.
func (b *RingBuffer) Write(samples []float64) {
	needed := len(samples)
	if needed == 0 {
		return
	}

	if b.size+needed > b.capacity {
		b.grow(b.size + needed)
	}

	// At most two copies: up to the end of the backing array, then the wrap.
	n := copy(b.data[b.writePos:], samples)
	copy(b.data, samples[n:])
	b.writePos = (b.writePos + needed) % b.capacity
	b.size += needed
}

// ReadInto moves up to len(dst) samples into dst and returns the count.
func (b *RingBuffer) ReadInto(dst []float64) int {
	n := min(len(dst), b.size)
	if n == 0 {
		return 0
	}

	end := b.readPos + n
	if end <= b.capacity {
		copy(dst, b.data[b.readPos:end])
	} else {
		first := copy(dst, b.data[b.readPos:])
		copy(dst[first:n], b.data[:n-first])
	}

	b.readPos = (b.readPos + n) % b.capacity
	b.size -= n
	return n
}

// Available returns the number of samples available for reading.
func (b *RingBuffer) Available() int {
	return b.size
}

// grow increases the buffer capacity to at least minCapacity, keeping order.
func (b *RingBuffer) grow(minCapacity int) {
	newCapacity := b.capacity
	for newCapacity < minCapacity {
		newCapacity *= bufferGrowthFactor
	}

	newData := make([]float64, newCapacity)
	if b.size > 0 {
		if b.readPos < b.writePos {
			copy(newData, b.data[b.readPos:b.writePos])
		} else {
			n1 := copy(newData, b.data[b.readPos:])
			copy(newData[n1:], b.data[:b.writePos])
		}
	}

	b.data = newData
	b.capacity = newCapacity
	b.readPos = 0
	b.writePos = b.size % newCapacity
}
