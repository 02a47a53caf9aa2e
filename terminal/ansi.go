// @focus: #terminal { ansi }
package terminal

import (
	"fmt"
	"io"
	"os"
	"strconv"
)

// KeyboardFlags are kitty progressive enhancement flags
type KeyboardFlags int

const (
	KeyboardFlagDisambiguate   KeyboardFlags = 1 << iota // Disambiguate escape codes
	KeyboardFlagEventTypes                               // Report press, repeat, release
	KeyboardFlagAlternateKeys                            // Report shifted and base layout keys
	KeyboardFlagAllKeysAsCodes                           // Report all keys as escape codes
	KeyboardFlagAssociatedText                           // Report text with key events

	// DefaultKeyboardFlags enables every enhancement
	DefaultKeyboardFlags = KeyboardFlagDisambiguate | KeyboardFlagEventTypes |
		KeyboardFlagAlternateKeys | KeyboardFlagAllKeysAsCodes | KeyboardFlagAssociatedText
)

// Pre-allocated protocol sequences
var (
	csiKeyboardPop = []byte("\x1b[<u")

	// Any-event tracking + SGR extended coordinates
	csiMouseAnyOn  = []byte("\x1b[?1003h")
	csiMouseAnyOff = []byte("\x1b[?1003l")
	csiMouseSGROn  = []byte("\x1b[?1006h")
	csiMouseSGROff = []byte("\x1b[?1006l")

	csiCursorShow = []byte("\x1b[?25h")
	csiSGR0       = []byte("\x1b[0m")
)

// keyboardPush builds CSI > flags u
func keyboardPush(flags KeyboardFlags) []byte {
	b := make([]byte, 0, 8)
	b = append(b, "\x1b[>"...)
	b = strconv.AppendInt(b, int64(flags), 10)
	return append(b, 'u')
}

// EnableKeyboardProtocol pushes the kitty keyboard mode with flags
func EnableKeyboardProtocol(w io.Writer, flags KeyboardFlags) error {
	return writeSeq(w, keyboardPush(flags))
}

// DisableKeyboardProtocol pops the kitty keyboard mode
func DisableKeyboardProtocol(w io.Writer) error {
	return writeSeq(w, csiKeyboardPop)
}

// EnableSGRMouse turns on any-event tracking with SGR encoding
func EnableSGRMouse(w io.Writer) error {
	return writeSeq(w, csiMouseAnyOn, csiMouseSGROn)
}

// DisableSGRMouse turns off mouse reporting
func DisableSGRMouse(w io.Writer) error {
	return writeSeq(w, csiMouseAnyOff, csiMouseSGROff)
}

// Protocols selects the reporting modes SetupInput enables
type Protocols struct {
	Keyboard KeyboardFlags // 0 leaves the keyboard protocol off
	Mouse    bool
}

// DefaultProtocols enables every keyboard enhancement and SGR mouse reporting
var DefaultProtocols = Protocols{Keyboard: DefaultKeyboardFlags, Mouse: true}

// SetupInput puts src into raw mode, then enables the requested protocols on w
func SetupInput(src Source, w io.Writer, p Protocols) error {
	if err := src.Setup(); err != nil {
		return fmt.Errorf("setup source: %w", err)
	}
	if p.Keyboard != 0 {
		if err := EnableKeyboardProtocol(w, p.Keyboard); err != nil {
			return err
		}
	}
	if p.Mouse {
		if err := EnableSGRMouse(w); err != nil {
			return err
		}
	}
	return nil
}

// CleanupInput disables the protocols enabled by SetupInput, then restores src
// All steps run; the first error is returned
func CleanupInput(src Source, w io.Writer, p Protocols) error {
	var first error
	if p.Keyboard != 0 {
		first = DisableKeyboardProtocol(w)
	}
	if p.Mouse {
		if err := DisableSGRMouse(w); err != nil && first == nil {
			first = err
		}
	}
	if err := src.Cleanup(); err != nil && first == nil {
		first = fmt.Errorf("cleanup source: %w", err)
	}
	return first
}

// EmergencyReset attempts to restore terminal to sane state
// Call this from panic recovery if CleanupInput cannot be called normally
func EmergencyReset(w io.Writer) {
	writeResetSequences(w)

	// Escape sequences alone don't restore termios
	resetTerminalMode()
}

// writeResetSequences turns off every reporting mode, ignoring write errors
func writeResetSequences(w io.Writer) {
	w.Write(csiKeyboardPop)
	w.Write(csiMouseAnyOff)
	w.Write(csiMouseSGROff)
	w.Write(csiCursorShow)
	w.Write(csiSGR0)

	// Flush if it's a file
	if f, ok := w.(*os.File); ok {
		f.Sync()
	}
}

func writeSeq(w io.Writer, seqs ...[]byte) error {
	for _, s := range seqs {
		if _, err := w.Write(s); err != nil {
			return fmt.Errorf("write sequence: %w", err)
		}
	}
	return nil
}
