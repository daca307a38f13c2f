package device

const (
	// DefaultFramesPerBuffer matches the streaming block size.
	DefaultFramesPerBuffer = 1024

	// wavBitDepth is the PCM depth of WAV output.
	wavBitDepth = 16

	// wavFormatPCM is the WAVE_FORMAT_PCM audio format tag.
	wavFormatPCM = 1

	// int16Max scales [-1, 1] floats to 16-bit PCM.
	int16Max = 32767
)
