package harmony

import (
	"math"
	"strings"
)

// A4Frequency is the tuning reference for the keyboard.
const A4Frequency = 440.0

const (
	semitonesPerOctave = 12.0
	frequencyDecimals  = 100.0

	// keyMatchTolerance is how close a wave must be to a key's frequency for
	// a key press to remove it.
	keyMatchTolerance = 0.01
)

// Key is one key of the virtual piano.
type Key struct {
	Name string

	// Semitones is the distance from A4.
	Semitones int

	Sharp bool

	// Frequency is rounded to two decimals.
	Frequency float64
}

// Keyboard is the one-octave piano, C4 through C5.
var Keyboard = []Key{
	newKey("C4", -9, false),
	newKey("C#4", -8, true),
	newKey("D4", -7, false),
	newKey("D#4", -6, true),
	newKey("E4", -5, false),
	newKey("F4", -4, false),
	newKey("F#4", -3, true),
	newKey("G4", -2, false),
	newKey("G#4", -1, true),
	newKey("A4", 0, false),
	newKey("A#4", 1, true),
	newKey("B4", 2, false),
	newKey("C5", 3, false),
}

func newKey(name string, semitones int, sharp bool) Key {
	return Key{Name: name, Semitones: semitones, Sharp: sharp, Frequency: NoteFrequency(semitones)}
}

// NoteFrequency returns the equal-tempered frequency semitones away from A4,
// rounded to two decimals.
func NoteFrequency(semitones int) float64 {
	f := A4Frequency * math.Pow(2, float64(semitones)/semitonesPerOctave)
	return math.Round(f*frequencyDecimals) / frequencyDecimals
}

// LookupNote finds a key by name, ignoring case.
func LookupNote(name string) (Key, bool) {
	name = strings.TrimSpace(name)
	for _, k := range Keyboard {
		if strings.EqualFold(k.Name, name) {
			return k, true
		}
	}
	return Key{}, false
}
