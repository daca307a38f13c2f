package harmony

import (
	"fmt"
	"math"
	"slices"

	"go.uber.org/zap"

	"github.com/tphakala/go-harmony-explorer/internal/crossing"
	"github.com/tphakala/go-harmony-explorer/internal/device"
	"github.com/tphakala/go-harmony-explorer/internal/mathutil"
	"github.com/tphakala/go-harmony-explorer/internal/signal"
)

// Explorer is the application state: the active waves, the sampling window,
// the tolerances and the player.
type Explorer struct {
	waves     []Wave
	nextID    int
	nextColor int

	window     Window
	ampPercent float64
	proximity  float64

	player *Player
	logger *zap.Logger
}

// Option configures an Explorer.
type Option func(*options)

type options struct {
	out    Output
	logger *zap.Logger
}

// WithOutput sets the audio output. The default discards audio.
func WithOutput(out Output) Option {
	return func(o *options) { o.out = out }
}

// WithLogger sets the logger. The default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// New creates an explorer with no waves.
func New(cfg Config, opts ...Option) (*Explorer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.out == nil {
		o.out = &device.Discard{}
	}

	player, err := NewPlayer(cfg.Player, o.out, o.logger.Named("player"))
	if err != nil {
		return nil, err
	}

	e := &Explorer{player: player, logger: o.logger}
	e.SetWindow(cfg.Start, cfg.Span)
	e.SetTolerances(cfg.AmplitudeTolerancePercent, cfg.TimeProximity)
	return e, nil
}

// Waves returns a copy of the active waves in insertion order.
func (e *Explorer) Waves() []Wave {
	return slices.Clone(e.waves)
}

// Wave returns the wave with the given id.
func (e *Explorer) Wave(id int) (Wave, bool) {
	i := e.index(id)
	if i < 0 {
		return Wave{}, false
	}
	return e.waves[i], true
}

// AddWave adds a wave at freq Hz (capped at 20000) with unit amplitude and
// zero phase. note may be empty.
func (e *Explorer) AddWave(freq float64, note string) Wave {
	w := Wave{
		ID:        e.nextID,
		Frequency: signal.LimitFrequency(freq),
		Amplitude: DefaultAmplitude,
		Phase:     DefaultPhase,
		Color:     Palette[e.nextColor%len(Palette)],
		Note:      note,
	}
	e.nextID++
	e.nextColor++
	e.waves = append(e.waves, w)

	e.logger.Debug("wave added",
		zap.Int("id", w.ID),
		zap.Float64("frequency", w.Frequency),
		zap.String("note", note))
	return w
}

// AddWaveText adds a manual wave from a frequency entry. Text that does not
// parse yields a DefaultFrequency wave and ok=false.
func (e *Explorer) AddWaveText(text string) (w Wave, ok bool) {
	freq, ok := ParseFrequency(text, DefaultFrequency)
	return e.AddWave(freq, ""), ok
}

// RemoveWave removes the wave with id. Its id is not reused.
func (e *Explorer) RemoveWave(id int) bool {
	i := e.index(id)
	if i < 0 {
		return false
	}
	e.waves = slices.Delete(e.waves, i, i+1)
	e.logger.Debug("wave removed", zap.Int("id", id))
	return true
}

// EditFrequency parses text as the new frequency of wave id. On a parse
// failure the last good frequency is kept; the returned value is the
// frequency now in effect.
func (e *Explorer) EditFrequency(id int, text string) (float64, bool) {
	i := e.index(id)
	if i < 0 {
		return 0, false
	}
	freq, ok := ParseFrequency(text, e.waves[i].Frequency)
	e.waves[i].Frequency = freq
	return freq, ok
}

// SetAmplitude sets the amplitude of wave id. Negative values become 0 and
// non-finite values are ignored.
func (e *Explorer) SetAmplitude(id int, amp float64) bool {
	i := e.index(id)
	if i < 0 || !mathutil.IsFinite(amp) {
		return false
	}
	e.waves[i].Amplitude = math.Max(0, amp)
	return true
}

// SetPhase sets the phase of wave id in radians. Non-finite values are
// ignored.
func (e *Explorer) SetPhase(id int, phase float64) bool {
	i := e.index(id)
	if i < 0 || !mathutil.IsFinite(phase) {
		return false
	}
	e.waves[i].Phase = phase
	return true
}

// PressKey toggles the wave for a piano key: an existing wave with the same
// note and frequency is removed, otherwise one is added. added reports which
// happened.
func (e *Explorer) PressKey(note string) (w Wave, added bool, err error) {
	key, ok := LookupNote(note)
	if !ok {
		return Wave{}, false, fmt.Errorf("%w: %q", ErrUnknownNote, note)
	}

	for _, existing := range e.waves {
		if existing.Note == key.Name && math.Abs(existing.Frequency-key.Frequency) < keyMatchTolerance {
			e.RemoveWave(existing.ID)
			return existing, false, nil
		}
	}
	return e.AddWave(key.Frequency, key.Name), true, nil
}

// Window returns the current sampling window.
func (e *Explorer) Window() Window {
	return e.window
}

// SetWindow sets the sampling window. A non-positive span is floored.
func (e *Explorer) SetWindow(start, span float64) {
	e.window = signal.NewWindow(start, span)
}

// EditWindow parses the window entries. If either fails both reset to the
// defaults and ok is false.
func (e *Explorer) EditWindow(startText, spanText string) (Window, bool) {
	start, span, ok := ParseWindow(startText, spanText)
	e.SetWindow(start, span)
	return e.window, ok
}

// Tolerances returns the amplitude percentage and time proximity units.
func (e *Explorer) Tolerances() (ampPercent, proximity float64) {
	return e.ampPercent, e.proximity
}

// SetTolerances clamps and stores both tolerances.
func (e *Explorer) SetTolerances(ampPercent, proximity float64) {
	e.ampPercent = ClampAmplitudeTolerance(ampPercent)
	e.proximity = ClampTimeProximity(proximity)
}

// EditTolerances parses the tolerance entries, keeping the previous value of
// any entry that fails to parse.
func (e *Explorer) EditTolerances(ampText, proxText string) bool {
	amp, prox, ok := ParseTolerances(ampText, proxText, e.ampPercent, e.proximity)
	e.ampPercent, e.proximity = amp, prox
	return ok
}

// Refresh samples every wave over the window and computes the alignment
// markers. It must be called after each mutation the caller wants to see.
func (e *Explorer) Refresh() Plot {
	plot := Plot{
		Window:        e.window,
		TimeTolerance: TimeTolerance(e.proximity),
	}
	plot.YMin, plot.YMax = yLimits(e.waves)
	plot.AmplitudeTolerance = AmplitudeTolerance(plot.YRange(), e.ampPercent)
	if len(e.waves) == 0 {
		return plot
	}

	plot.Axis = e.window.Axis()
	series := make([]crossing.Series, len(e.waves))
	plot.Traces = make([]Trace, len(e.waves))
	for i, w := range e.waves {
		samples := signal.Sample(w.signal(), plot.Axis)
		plot.Traces[i] = Trace{WaveID: w.ID, Color: w.Color, Label: w.Label(), Samples: samples}
		series[i] = crossing.Series{WaveID: w.ID, Samples: samples}
	}

	if len(e.waves) < 2 {
		return plot
	}

	det := crossing.Detector{
		AmplitudeTolerance: plot.AmplitudeTolerance,
		Start:              e.window.Start,
		End:                e.window.End(),
	}
	grp := crossing.Grouper{
		Tolerance:    plot.TimeTolerance,
		SamplePeriod: e.window.Step(),
	}
	groups := grp.Group(det.DetectAll(series, plot.Axis), len(e.waves))

	width := barWidth(plot.Axis, plot.TimeTolerance)
	plot.Markers = make([]Marker, 0, len(groups))
	for _, g := range groups {
		plot.Markers = append(plot.Markers, plot.marker(g, width))
	}

	e.logger.Debug("plot refreshed",
		zap.Int("waves", len(e.waves)),
		zap.Int("samples", len(plot.Axis)),
		zap.Int("markers", len(plot.Markers)))
	return plot
}

// TogglePlayback starts or stops playback of the current waves.
func (e *Explorer) TogglePlayback() (PlaybackState, error) {
	return e.player.Toggle(e.waves)
}

// Playback returns the playback state.
func (e *Explorer) Playback() PlaybackState {
	return e.player.State()
}

// PlaybackDone delivers the Result of the running playback; nil when idle.
func (e *Explorer) PlaybackDone() <-chan Result {
	return e.player.Done()
}

// FinishPlayback hands a Result received from PlaybackDone back to the player.
func (e *Explorer) FinishPlayback(res Result) {
	e.player.Finish(res)
}

// Close stops playback, waiting briefly for the worker.
func (e *Explorer) Close() {
	e.player.Close()
}

func (e *Explorer) index(id int) int {
	return slices.IndexFunc(e.waves, func(w Wave) bool { return w.ID == id })
}
