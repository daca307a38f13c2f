package pipeline

// Streaming defaults.
const (
	// DefaultBlockSize is the number of samples handed to the device per write.
	// Cancellation is observed at this granularity.
	DefaultBlockSize = 1024

	// DefaultChunkSize is the number of input samples pushed through the
	// stages at a time.
	DefaultChunkSize = 8192

	// bufferGrowthFactor is the ring buffer growth multiplier.
	bufferGrowthFactor = 2

	// ringBlocks is the initial ring capacity in blocks.
	ringBlocks = 4

	unityGain = 1.0
)
