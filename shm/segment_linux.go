//go:build linux

package shm

import (
	"errors"
	"fmt"
	"path/filepath"

	"golang.org/x/sys/unix"
)

func openSegment(name string) (*segment, error) {
	fd, err := unix.Open(filepath.Join(shmDirPath, name), unix.O_CREAT|unix.O_RDWR|unix.O_CLOEXEC|unix.O_NOFOLLOW, 0o600)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrOpen, name, err)
	}
	return &segment{fd: fd, name: name}, nil
}

func (s *segment) close() error {
	return unix.Close(s.fd)
}

// size returns the current segment length
func (s *segment) size() (int, error) {
	var st unix.Stat_t
	if err := unix.Fstat(s.fd, &st); err != nil {
		return 0, fmt.Errorf("%w %q: %w", ErrOpen, s.name, err)
	}
	return int(st.Size), nil
}

func (s *segment) resize(n int) error {
	if err := unix.Ftruncate(s.fd, int64(n)); err != nil {
		return fmt.Errorf("%w %q to %d bytes: %w", ErrResize, s.name, n, err)
	}
	return nil
}

func (s *segment) mmap(n int) (mapping, error) {
	mem, err := unix.Mmap(s.fd, 0, n, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrMap, s.name, err)
	}
	return mapping(mem), nil
}

func (m mapping) unmap() error {
	return unix.Munmap(m)
}

func unlinkSegment(name string) error {
	err := unix.Unlink(filepath.Join(shmDirPath, name))
	if err != nil && !errors.Is(err, unix.ENOENT) {
		return fmt.Errorf("shm: unlink %q: %w", name, err)
	}
	return nil
}
