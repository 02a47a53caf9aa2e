//go:build unix

package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

const readChunk = 4096

// TTYSource reads raw input from a terminal file descriptor
type TTYSource struct {
	file    *os.File
	fd      int
	oldTerm *term.State
	buf     []byte
}

// NewTTYSource wraps f (typically os.Stdin)
func NewTTYSource(f *os.File) *TTYSource {
	return &TTYSource{
		file: f,
		fd:   int(f.Fd()),
		buf:  make([]byte, readChunk),
	}
}

// Setup switches the descriptor to raw mode
func (s *TTYSource) Setup() error {
	if !term.IsTerminal(s.fd) {
		return fmt.Errorf("%w: fd %d", ErrNotTerminal, s.fd)
	}
	if s.oldTerm != nil {
		return nil
	}
	old, err := term.MakeRaw(s.fd)
	if err != nil {
		return fmt.Errorf("raw mode: %w", err)
	}
	s.oldTerm = old
	return nil
}

// Cleanup restores the mode captured by Setup
func (s *TTYSource) Cleanup() error {
	if s.oldTerm == nil {
		return nil
	}
	err := term.Restore(s.fd, s.oldTerm)
	s.oldTerm = nil
	if err != nil {
		return fmt.Errorf("restore mode: %w", err)
	}
	return nil
}

// WaitForReady polls the descriptor for readability
func (s *TTYSource) WaitForReady(timeout time.Duration) (bool, error) {
	fds := []unix.PollFd{
		{Fd: int32(s.fd), Events: unix.POLLIN},
	}
	n, err := unix.Poll(fds, int(timeout.Milliseconds()))
	if err != nil {
		if errors.Is(err, unix.EINTR) {
			return false, nil
		}
		return false, fmt.Errorf("poll: %w", err)
	}
	if n == 0 {
		return false, nil
	}
	return fds[0].Revents&(unix.POLLIN|unix.POLLHUP|unix.POLLERR) != 0, nil
}

// Read returns a copy of the bytes currently available
func (s *TTYSource) Read() ([]byte, error) {
	n, err := unix.Read(s.fd, s.buf)
	if err != nil {
		if errors.Is(err, unix.EINTR) || errors.Is(err, unix.EAGAIN) {
			return nil, nil
		}
		// A pty whose peer closed reports EIO
		if errors.Is(err, unix.EIO) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("read: %w", err)
	}
	if n == 0 {
		return nil, io.EOF
	}
	ret := make([]byte, n)
	copy(ret, s.buf[:n])
	return ret, nil
}

// Size returns the terminal dimensions in cells
func (s *TTYSource) Size() (int, int) {
	ws, err := unix.IoctlGetWinsize(s.fd, unix.TIOCGWINSZ)
	if err != nil {
		return 80, 24 // Fallback
	}
	return int(ws.Col), int(ws.Row)
}

func stdinSource() (Source, error) {
	return NewTTYSource(os.Stdin), nil
}
