// @focus: #sys { shm, graphics }
// Package shm writes pixel frames into named POSIX shared memory segments.
//
// Frames arrive as 32-bit BGRA and are stored as RGBA, the layout the kitty
// graphics protocol expects for f=32. Only the dirty region is copied, widened
// to the swizzle kernel width so whole blocks can be processed at once.
//
// Segments live under /dev/shm on Linux; other platforms return ErrUnsupported.
package shm
