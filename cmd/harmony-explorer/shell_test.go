package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	harmony "github.com/tphakala/go-harmony-explorer"
)

func newTestShell(t *testing.T) (*shell, *bytes.Buffer) {
	t.Helper()
	cfg := harmony.DefaultConfig()
	cfg.Player.SampleRate = 8000
	cfg.Player.Duration = 20 * time.Millisecond

	ex, err := harmony.New(cfg)
	require.NoError(t, err)
	t.Cleanup(ex.Close)

	var buf bytes.Buffer
	return newShell(ex, &buf), &buf
}

func runScript(t *testing.T, sh *shell, script string) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	sh.run(ctx, strings.NewReader(script))
}

func TestShell_BeatAlignments(t *testing.T) {
	sh, buf := newTestShell(t)
	runScript(t, sh, "tol 1 5\nadd 100\nadd 100.5\nquit\n")

	out := buf.String()
	assert.Contains(t, out, "Added wave 0: 100.00 Hz")
	assert.Contains(t, out, "Added wave 1: 100.50 Hz")
	assert.Contains(t, out, "alignments:")
	assert.Contains(t, out, "100%")
	assert.Contains(t, out, "waves [0 1]")
}

func TestShell_BadInputRecovers(t *testing.T) {
	sh, buf := newTestShell(t)
	runScript(t, sh, strings.Join([]string{
		"add abc",
		"freq 0 xyz",
		"window 0 -5",
		"window x 1",
		"tol many 3",
		"rm 7",
		"rm x",
		"freq",
		"bogus",
		"",
	}, "\n"))

	out := buf.String()
	assert.Contains(t, out, `Not a number: "abc", using 1.00 Hz`)
	assert.Contains(t, out, `Not a number: "xyz", keeping 1.00 Hz`)
	assert.Contains(t, out, "Window 0 s .. 0.001 s (500 samples)")
	assert.Contains(t, out, "Invalid window, reset to 0 s + 0.1 s")
	assert.Contains(t, out, "Invalid tolerance kept as")
	assert.Contains(t, out, "No wave 7")
	assert.Contains(t, out, `Invalid wave id "x"`)
	assert.Contains(t, out, "Usage: freq <id> <hz>")
	assert.Contains(t, out, `Unknown command "bogus"`)
}

func TestShell_PianoToggle(t *testing.T) {
	sh, buf := newTestShell(t)
	runScript(t, sh, "note A4\nnote a4\nnote Z1\nlist\n")

	out := buf.String()
	assert.Contains(t, out, "Added wave 0: A4 440.00 Hz")
	assert.Contains(t, out, "Removed wave 0: A4")
	assert.Contains(t, out, "unknown note")
	assert.Contains(t, out, "No waves")
}

func TestShell_EmptyAndSingle(t *testing.T) {
	sh, buf := newTestShell(t)
	runScript(t, sh, "plot\nadd 440\n")

	out := buf.String()
	assert.Contains(t, out, "Add a sine wave to begin")
	assert.Contains(t, out, "No alignments")
}

func TestShell_PlayReportsCompletion(t *testing.T) {
	sh, buf := newTestShell(t)
	sh.exec("play")
	assert.Contains(t, buf.String(), "Add a wave first")

	sh.exec("add 440")
	sh.exec("play")
	assert.Contains(t, buf.String(), "Playing")

	res := <-sh.ex.PlaybackDone()
	sh.ex.FinishPlayback(res)
	sh.reportPlayback(res)
	assert.Contains(t, buf.String(), "Playback finished")
	assert.Equal(t, harmony.PlaybackIdle, sh.ex.Playback())
}

func TestShell_AmpAndPhase(t *testing.T) {
	sh, buf := newTestShell(t)
	runScript(t, sh, "add 10\namp 0 0.5\nphase 0 1.5\namp 0 loud\nphase 9 1\nlist\n")

	out := buf.String()
	assert.Contains(t, out, "amp 0.5  phase 1.5")
	assert.Contains(t, out, `Not a number: "loud"`)
	assert.Contains(t, out, "No wave 9")
}

func TestAddInitialWaves(t *testing.T) {
	ex, err := harmony.New(harmony.DefaultConfig())
	require.NoError(t, err)
	defer ex.Close()

	require.NoError(t, addInitialWaves(ex, "100, 100.5,,abc", "C4", zap.NewNop()))
	waves := ex.Waves()
	require.Len(t, waves, 4)
	assert.InDelta(t, 1.0, waves[2].Frequency, 0)
	assert.Equal(t, "C4", waves[3].Note)

	assert.ErrorIs(t, addInitialWaves(ex, "", "Q9", zap.NewNop()), harmony.ErrUnknownNote)
}

func TestPlayOnce(t *testing.T) {
	cfg := harmony.DefaultConfig()
	cfg.Player.Duration = 10 * time.Millisecond
	ex, err := harmony.New(cfg)
	require.NoError(t, err)
	defer ex.Close()

	var buf bytes.Buffer
	require.NoError(t, playOnce(ex, &buf, cfg.Player.Duration))
	assert.Contains(t, buf.String(), "Nothing to play.")

	ex.AddWave(440, "")
	require.NoError(t, playOnce(ex, &buf, cfg.Player.Duration))
	assert.Contains(t, buf.String(), "Played 441 samples in 1 blocks.")
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList(" a,, b ,"))
	assert.Nil(t, splitList(""))
}
