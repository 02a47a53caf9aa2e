package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 10*time.Millisecond, cfg.Input.PollInterval.Duration)
	assert.Equal(t, 1, cfg.Input.QueueSize)
	assert.Equal(t, 31, cfg.Input.Keyboard)
	assert.Equal(t, 0, cfg.Graphics.AlignmentBytes())
}

func TestLoadFormats(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"termio.toml": `
[input]
poll_interval = "25ms"
queue_size = 4
mouse = false

[graphics]
segment_name = "/frames"
alignment = "16"

[logging]
level = "debug"
format = "json"
`,
		"termio.yaml": `
input:
  poll_interval: 25ms
  queue_size: 4
  mouse: false
graphics:
  segment_name: /frames
  alignment: "16"
logging:
  level: debug
  format: json
`,
		"termio.json": `{
  "input": {"poll_interval": "25ms", "queue_size": 4, "mouse": false},
  "graphics": {"segment_name": "/frames", "alignment": "16"},
  "logging": {"level": "debug", "format": "json"}
}`,
	}

	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			cfg, err := Load(writeFile(t, dir, name, content))
			require.NoError(t, err)

			assert.Equal(t, 25*time.Millisecond, cfg.Input.PollInterval.Duration)
			assert.Equal(t, 4, cfg.Input.QueueSize)
			assert.False(t, cfg.Input.Mouse)
			// Unset fields keep defaults
			assert.Equal(t, 31, cfg.Input.Keyboard)
			assert.Equal(t, "stderr", cfg.Logging.Output)
			assert.Equal(t, "/frames", cfg.Graphics.SegmentName)
			assert.Equal(t, 16, cfg.Graphics.AlignmentBytes())
			assert.Equal(t, "json", cfg.Logging.Format)
		})
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(writeFile(t, dir, "bad.toml", "input = ["))
	assert.ErrorContains(t, err, "decode TOML")

	_, err = Load(writeFile(t, dir, "termio.ini", "x=1"))
	assert.ErrorContains(t, err, "unsupported config extension")

	_, err = Load(writeFile(t, dir, "invalid.toml", "[input]\nqueue_size = 0\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidateReportsEveryField(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Input.PollInterval = Duration{}
	cfg.Input.Keyboard = 64
	cfg.Graphics.SegmentName = "a/b"
	cfg.Graphics.Alignment = "8"
	cfg.Logging.Level = "loud"

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := make([]string, 0, len(verrs))
	for _, v := range verrs {
		fields = append(fields, v.Field)
	}
	assert.ElementsMatch(t, []string{
		"input.poll_interval", "input.keyboard_flags", "graphics.segment_name",
		"graphics.alignment", "logging.level",
	}, fields)
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv(EnvLogLevel, "DEBUG")
	t.Setenv(EnvPollInterval, "5ms")
	t.Setenv(EnvSegment, "from-env")

	cfg := DefaultConfig()
	cfg.ApplyEnvOverrides()
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 5*time.Millisecond, cfg.Input.PollInterval.Duration)
	assert.Equal(t, "from-env", cfg.Graphics.SegmentName)
}

func TestApplyEnvOverridesBadInterval(t *testing.T) {
	t.Setenv(EnvPollInterval, "soon")
	cfg := DefaultConfig()
	cfg.ApplyEnvOverrides()
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "termio.toml")
	cfg := DefaultConfig()
	cfg.Input.QueueSize = 8
	cfg.Input.PollInterval = Duration{time.Second}
	require.NoError(t, Save(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoaderWatchReloads(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "termio.toml", "[input]\nqueue_size = 2\n")

	l := NewLoader(path)
	cfg, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Input.QueueSize)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan *Config, 1)
	require.NoError(t, l.Watch(ctx, func(c *Config) {
		select {
		case changed <- c:
		default:
		}
	}))

	writeFile(t, dir, "termio.toml", "[input]\nqueue_size = 9\n")

	select {
	case c := <-changed:
		assert.Equal(t, 9, c.Input.QueueSize)
		assert.Equal(t, 9, l.Config().Input.QueueSize)
	case <-time.After(5 * time.Second):
		t.Fatal("config change not observed")
	}
}

func TestLoaderWatchKeepsConfigOnBadReload(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "termio.toml", "[input]\nqueue_size = 2\n")

	l := NewLoader(path)
	_, err := l.Load()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, l.Watch(ctx, nil))

	writeFile(t, dir, "termio.toml", "[input]\nqueue_size = -1\n")

	select {
	case err := <-l.Errors():
		assert.ErrorIs(t, err, ErrInvalidConfig)
	case <-time.After(5 * time.Second):
		t.Fatal("reload error not reported")
	}
	assert.Equal(t, 2, l.Config().Input.QueueSize)
}
