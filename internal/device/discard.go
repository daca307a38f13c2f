package device

// Discard drops every block, keeping only counters. It backs headless runs.
type Discard struct {
	SampleRate int
	Channels   int
	Blocks     int
	Samples    int64

	open bool
}

// Open records the format.
func (d *Discard) Open(sampleRate, channels int) error {
	d.SampleRate, d.Channels = sampleRate, channels
	d.Blocks, d.Samples = 0, 0
	d.open = true
	return nil
}

// Write counts block.
func (d *Discard) Write(block []float32) error {
	if !d.open {
		return ErrNotOpen
	}
	d.Blocks++
	d.Samples += int64(len(block))
	return nil
}

// Close marks the output closed.
func (d *Discard) Close() error {
	d.open = false
	return nil
}
