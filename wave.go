package harmony

import "github.com/tphakala/go-harmony-explorer/internal/signal"

// Wave is one sine component. IDs are assigned by the Explorer and never
// reused.
type Wave struct {
	ID        int
	Frequency float64
	Amplitude float64
	Phase     float64

	Color string

	// Note is the piano key that created the wave, empty for manual waves.
	Note string
}

// Label is the note name or "Manual".
func (w Wave) Label() string {
	if w.Note == "" {
		return "Manual"
	}
	return w.Note
}

func (w Wave) signal() signal.Wave {
	return signal.Wave{Frequency: w.Frequency, Amplitude: w.Amplitude, Phase: w.Phase}
}

func signalWaves(waves []Wave) []signal.Wave {
	out := make([]signal.Wave, len(waves))
	for i, w := range waves {
		out[i] = w.signal()
	}
	return out
}
