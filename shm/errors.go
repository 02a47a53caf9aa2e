package shm

import "errors"

var (
	// ErrInvalidArgument is returned before any syscall for bad names or frame geometry
	ErrInvalidArgument = errors.New("shm: invalid argument")

	// ErrOpen is returned when the segment cannot be opened or created
	ErrOpen = errors.New("shm: open segment")

	// ErrResize is returned when the segment cannot be resized
	ErrResize = errors.New("shm: resize segment")

	// ErrMap is returned when the segment cannot be mapped
	ErrMap = errors.New("shm: map segment")

	// ErrUnsupported is returned on platforms without named shared memory support
	ErrUnsupported = errors.New("shm: unsupported platform")
)
