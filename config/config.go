// Package config handles configuration loading and validation for termio tools.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the root configuration
type Config struct {
	Input    Input    `toml:"input" yaml:"input" json:"input"`
	Graphics Graphics `toml:"graphics" yaml:"graphics" json:"graphics"`
	Logging  Logging  `toml:"logging" yaml:"logging" json:"logging"`
}

// Input configures the terminal input pipeline
type Input struct {
	PollInterval Duration `toml:"poll_interval" yaml:"poll_interval" json:"poll_interval"`
	QueueSize    int      `toml:"queue_size" yaml:"queue_size" json:"queue_size"`
	Keyboard     int      `toml:"keyboard_flags" yaml:"keyboard_flags" json:"keyboard_flags"` // kitty progressive enhancement flags, 0 disables
	Mouse        bool     `toml:"mouse" yaml:"mouse" json:"mouse"`
}

// Graphics configures the shared memory frame writer
type Graphics struct {
	SegmentName string `toml:"segment_name" yaml:"segment_name" json:"segment_name"`
	Alignment   string `toml:"alignment" yaml:"alignment" json:"alignment"` // auto, 4, 16, 32
}

// Logging configures the slog logger
type Logging struct {
	Level  string `toml:"level" yaml:"level" json:"level"`    // debug, info, warn, error
	Format string `toml:"format" yaml:"format" json:"format"` // text, json
	Output string `toml:"output" yaml:"output" json:"output"` // stderr, stdout, or a file path
}

// Duration is a time.Duration that reads and writes as "10ms"-style text
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

// AlignmentBytes returns the forced kernel width, 0 for auto
func (g Graphics) AlignmentBytes() int {
	n, err := strconv.Atoi(g.Alignment)
	if err != nil {
		return 0
	}
	return n
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	return &Config{
		Input: Input{
			PollInterval: Duration{10 * time.Millisecond},
			QueueSize:    1,
			Keyboard:     31,
			Mouse:        true,
		},
		Graphics: Graphics{
			SegmentName: "termio-frame",
			Alignment:   "auto",
		},
		Logging: Logging{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// Environment variables applied over file values
const (
	EnvLogLevel     = "TERMIO_LOG_LEVEL"
	EnvPollInterval = "TERMIO_POLL_INTERVAL"
	EnvSegment      = "TERMIO_SEGMENT"
)

// ApplyEnvOverrides applies environment variable overrides
// Unparsable values are left for Validate to report
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	if v := os.Getenv(EnvPollInterval); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Input.PollInterval = Duration{d}
		} else {
			c.Input.PollInterval = Duration{-1}
		}
	}
	if v := os.Getenv(EnvSegment); v != "" {
		c.Graphics.SegmentName = v
	}
}

// Clone returns a copy of the configuration
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
