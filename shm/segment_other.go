//go:build !linux

package shm

func openSegment(string) (*segment, error) { return nil, ErrUnsupported }

func (s *segment) close() error { return ErrUnsupported }

func (s *segment) size() (int, error) { return 0, ErrUnsupported }

func (s *segment) resize(int) error { return ErrUnsupported }

func (s *segment) mmap(int) (mapping, error) { return nil, ErrUnsupported }

func (m mapping) unmap() error { return ErrUnsupported }

func unlinkSegment(string) error { return ErrUnsupported }
