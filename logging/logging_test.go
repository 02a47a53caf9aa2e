package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/termio/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestNewWithWriterFormats(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewWithWriter(&buf, slog.LevelInfo, "json")
	require.NoError(t, err)

	Component(l, "shm").Info("segment resized", "bytes", 64)
	l.Debug("hidden")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "segment resized", rec["msg"])
	assert.Equal(t, "shm", rec["component"])
	assert.EqualValues(t, 64, rec["bytes"])

	buf.Reset()
	l, err = NewWithWriter(&buf, slog.LevelDebug, "text")
	require.NoError(t, err)
	l.Debug("visible")
	assert.Contains(t, buf.String(), "msg=visible")

	_, err = NewWithWriter(&buf, slog.LevelInfo, "xml")
	assert.Error(t, err)
}

func TestNewFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "termio.log")
	l, closer, err := New(config.Logging{Level: "warn", Format: "text", Output: path})
	require.NoError(t, err)

	l.Info("dropped")
	l.Warn("kept")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dropped")
	assert.Contains(t, string(data), "kept")
}

func TestNewRejectsBadConfig(t *testing.T) {
	_, _, err := New(config.Logging{Level: "loud", Output: "stderr"})
	assert.Error(t, err)

	_, _, err = New(config.Logging{Level: "info", Format: "xml", Output: "stderr"})
	assert.Error(t, err)
}

func TestNewStandardStreams(t *testing.T) {
	for _, out := range []string{"", OutputStderr, OutputStdout} {
		l, closer, err := New(config.Logging{Output: out})
		require.NoError(t, err)
		assert.NotNil(t, l)
		assert.NoError(t, closer.Close())
	}
}
