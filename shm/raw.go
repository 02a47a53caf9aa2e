package shm

// WriteAll replaces the segment contents with data, sized exactly to len(data)
func WriteAll(name string, data []byte) error {
	n, err := segmentName(name)
	if err != nil {
		return err
	}
	seg, err := openSegment(n)
	if err != nil {
		return err
	}
	defer seg.close()

	if err := seg.resize(len(data)); err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	mem, err := seg.mmap(len(data))
	if err != nil {
		return err
	}
	copy(mem, data)
	return mem.unmap()
}

// Unlink removes the named segment; a missing segment is not an error
func Unlink(name string) error {
	n, err := segmentName(name)
	if err != nil {
		return err
	}
	return unlinkSegment(n)
}
