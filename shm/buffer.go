package shm

import (
	"fmt"
	"log/slog"
)

// BytesPerPixel is the size of one BGRA/RGBA pixel
const BytesPerPixel = 4

// Size is a frame size in pixels
type Size struct {
	Width, Height int
}

// Bytes returns the packed frame length
func (s Size) Bytes() int {
	return s.Width * s.Height * BytesPerPixel
}

// Rect is a pixel region
type Rect struct {
	X, Y, Width, Height int
}

// Option configures a GraphicBuffer
type Option func(*GraphicBuffer) error

// WithAlignment forces a kernel width (4, 16 or 32 bytes)
func WithAlignment(n int) Option {
	return func(b *GraphicBuffer) error {
		k := kernelFor(n)
		if k == nil {
			return fmt.Errorf("%w: alignment %d", ErrInvalidArgument, n)
		}
		b.alignment = n
		b.kernel = k
		return nil
	}
}

// WithLogger sets the buffer logger
func WithLogger(l *slog.Logger) Option {
	return func(b *GraphicBuffer) error {
		b.SetLogger(l)
		return nil
	}
}

// GraphicBuffer writes frames into one named segment
// Not safe for concurrent use; buffers with distinct names are independent
type GraphicBuffer struct {
	name      string
	alignment int
	kernel    swizzleFunc
	lastSize  int // Aligned size of the last successful resize
	log       *slog.Logger
}

// NewGraphicBuffer binds a writer to a segment name
// The segment is created on first Write and never unlinked by the buffer
func NewGraphicBuffer(name string, opts ...Option) (*GraphicBuffer, error) {
	n, err := segmentName(name)
	if err != nil {
		return nil, err
	}
	b := &GraphicBuffer{
		name:      n,
		alignment: defaultAlignment,
		kernel:    kernelFor(defaultAlignment),
		log:       slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Name returns the segment name without a leading slash
func (b *GraphicBuffer) Name() string {
	return b.name
}

// Alignment returns the kernel width in bytes
func (b *GraphicBuffer) Alignment() int {
	return b.alignment
}

// SetLogger replaces the buffer logger; nil restores slog.Default
func (b *GraphicBuffer) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	b.log = l.With("component", "shm", "segment", b.name)
}

// Write swizzles the dirty region of a BGRA frame into the segment as RGBA
// nil dirty means the whole frame. The returned rect is the region actually
// written: the clamped dirty rect with its width widened to the kernel width
func (b *GraphicBuffer) Write(src []byte, size Size, dirty *Rect) (Rect, error) {
	if size.Width < 0 || size.Height < 0 {
		return Rect{}, fmt.Errorf("%w: frame size %dx%d", ErrInvalidArgument, size.Width, size.Height)
	}
	frameBytes := size.Bytes()
	if len(src) < frameBytes {
		return Rect{}, fmt.Errorf("%w: source has %d bytes, frame needs %d", ErrInvalidArgument, len(src), frameBytes)
	}
	if dirty != nil && (dirty.X < 0 || dirty.Y < 0 || dirty.Width < 0 || dirty.Height < 0) {
		return Rect{}, fmt.Errorf("%w: dirty rect %+v", ErrInvalidArgument, *dirty)
	}

	r := clampRect(size, dirty)
	alignedSize := alignUp(frameBytes, b.alignment)

	seg, err := openSegment(b.name)
	if err != nil {
		return Rect{}, err
	}
	defer func() {
		if err := seg.close(); err != nil {
			b.log.Warn("close segment failed", "error", err)
		}
	}()

	if err := b.ensureSize(seg, alignedSize); err != nil {
		return Rect{}, err
	}
	if alignedSize == 0 {
		return Rect{X: r.X, Y: r.Y}, nil
	}

	mem, err := seg.mmap(alignedSize)
	if err != nil {
		return Rect{}, err
	}
	span := b.copyRegion(mem, src, size, r)
	if err := mem.unmap(); err != nil {
		b.log.Warn("unmap segment failed", "error", err)
	}

	return Rect{X: r.X, Y: r.Y, Width: span / BytesPerPixel, Height: r.Height}, nil
}

// ensureSize resizes when the aligned size changed since the last resize, or when
// the segment was recreated behind our back (a reader that unlinks after consuming)
func (b *GraphicBuffer) ensureSize(seg *segment, alignedSize int) error {
	if alignedSize == b.lastSize {
		cur, err := seg.size()
		if err != nil {
			return err
		}
		if cur >= alignedSize {
			return nil
		}
	}
	if err := seg.resize(alignedSize); err != nil {
		return err
	}
	b.log.Debug("segment resized", "bytes", alignedSize)
	b.lastSize = alignedSize
	return nil
}

// copyRegion swizzles each dirty row and returns the aligned row span in bytes
func (b *GraphicBuffer) copyRegion(dst, src []byte, size Size, r Rect) int {
	stride := size.Width * BytesPerPixel
	span := alignUp(r.Width*BytesPerPixel, b.alignment)
	limit := size.Bytes()

	for y := 0; y < r.Height; y++ {
		off := (r.Y+y)*stride + r.X*BytesPerPixel
		// A widened span may run past the frame; kernels finish ragged tails with the scalar loop
		end := min(off+span, limit)
		b.kernel(dst[off:end], src[off:end])
	}
	return span
}

// clampRect fits dirty into the frame; nil selects the whole frame
func clampRect(size Size, dirty *Rect) Rect {
	if dirty == nil {
		return Rect{Width: size.Width, Height: size.Height}
	}
	r := *dirty
	if r.X >= size.Width {
		r.X = 0
	}
	if r.Y >= size.Height {
		r.Y = 0
	}
	// Compared by subtraction so huge extents cannot wrap
	if r.Width > size.Width-r.X {
		r.Width = size.Width - r.X
	}
	if r.Height > size.Height-r.Y {
		r.Height = size.Height - r.Y
	}
	return r
}

func alignUp(n, a int) int {
	return (n + a - 1) &^ (a - 1)
}
