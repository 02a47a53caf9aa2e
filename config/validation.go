package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Unwrap lets errors.Is match ErrInvalidConfig
func (e ValidationErrors) Unwrap() error {
	return ErrInvalidConfig
}

// Validate checks every field and reports all problems at once
func (c *Config) Validate() error {
	var errs ValidationErrors
	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if c.Input.PollInterval.Duration <= 0 {
		add("input.poll_interval", "must be positive, got %v", c.Input.PollInterval.Duration)
	}
	if c.Input.QueueSize < 1 {
		add("input.queue_size", "must be at least 1, got %d", c.Input.QueueSize)
	}
	if c.Input.Keyboard < 0 || c.Input.Keyboard > 31 {
		add("input.keyboard_flags", "must be within 0-31, got %d", c.Input.Keyboard)
	}

	name := strings.TrimPrefix(c.Graphics.SegmentName, "/")
	if name == "" || strings.Contains(name, "/") {
		add("graphics.segment_name", "must be a single path component, got %q", c.Graphics.SegmentName)
	}
	switch c.Graphics.Alignment {
	case "auto", "4", "16", "32":
	default:
		add("graphics.alignment", "must be auto, 4, 16 or 32, got %q", c.Graphics.Alignment)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		add("logging.level", "unknown level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		add("logging.format", "unknown format %q", c.Logging.Format)
	}
	if c.Logging.Output == "" {
		add("logging.output", "must not be empty")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
