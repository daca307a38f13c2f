package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{" warn ", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"loud", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")
	logger, err := New(
		WithLevel("debug"),
		WithOutput(path),
		WithFields(map[string]any{"component": "player", "": "dropped"}),
	)
	require.NoError(t, err)

	logger.Debug("stream opened")
	require.NoError(t, Sync(logger))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := strings.TrimSpace(string(data))

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "stream opened", entry["msg"])
	assert.Equal(t, "player", entry["component"])
	assert.NotContains(t, entry, "")
}

func TestNew_LevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")
	logger, err := New(WithLevel("warn"), WithEncoding(EncodingConsole), WithOutput(path))
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown")
	require.NoError(t, Sync(logger))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "WARN")
	assert.Contains(t, string(data), "shown")
}

func TestNew_RejectsUnknownEncoding(t *testing.T) {
	_, err := New(WithEncoding("xml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported log encoding")
}

func TestWithDevelopment(t *testing.T) {
	logger, err := New(WithDevelopment(true), WithOutput(filepath.Join(t.TempDir(), "dev.log")))
	require.NoError(t, err)
	assert.NotNil(t, logger)
}
