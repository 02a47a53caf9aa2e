package shm

import (
	"fmt"
	"strings"
)

// shmDirPath is where Linux exposes named segments
const shmDirPath = "/dev/shm"

// segmentName validates a caller name and strips one leading slash
func segmentName(name string) (string, error) {
	n := strings.TrimPrefix(name, "/")
	if n == "" || n == "." || n == ".." || strings.ContainsAny(n, "/\x00") {
		return "", fmt.Errorf("%w: segment name %q", ErrInvalidArgument, name)
	}
	return n, nil
}

// segment is an open shared memory object
type segment struct {
	fd   int
	name string
}

// mapping is a mapped view of a segment
type mapping []byte
