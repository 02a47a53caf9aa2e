package terminal

import "time"

// Source abstracts a readable terminal input stream.
// Implementations are used as map keys to track active listeners, so they must be
// comparable; pointer receivers satisfy this.
type Source interface {
	// Lifecycle
	// Setup prepares the stream for raw input (e.g. raw mode)
	Setup() error
	// Cleanup restores the state captured by Setup
	Cleanup() error

	// WaitForReady blocks up to timeout; false with nil error means timeout
	WaitForReady(timeout time.Duration) (bool, error)

	// Read returns whatever bytes are available; io.EOF ends the stream
	// A nil slice with nil error is a spurious wakeup
	Read() ([]byte, error)
}
