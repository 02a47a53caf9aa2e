package terminal

import "errors"

var (
	// ErrAlreadyListening is returned when a Source already has an active listener
	ErrAlreadyListening = errors.New("terminal: source already has an active listener")

	// ErrNilSource is returned when Listen is called without a Source
	ErrNilSource = errors.New("terminal: nil source")

	// ErrInvalidInterval is returned for non-positive poll intervals
	ErrInvalidInterval = errors.New("terminal: poll interval must be positive")

	// ErrNotTerminal is returned when raw mode is requested on a non-tty descriptor
	ErrNotTerminal = errors.New("terminal: not a terminal")
)
