// Package frame turns image files into BGRA frames for shm.GraphicBuffer
package frame

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/soniakeys/quant/median"
	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/lixenwraith/termio/shm"
)

// ErrEmptyImage is returned for images with no pixels
var ErrEmptyImage = errors.New("frame: empty image")

// Options controls conversion
type Options struct {
	Width, Height int // Target size; 0 keeps the source dimension
	Colors        int // Positive values reduce the palette by median cut
}

// Frame is a tightly packed BGRA pixel buffer, the layout GraphicBuffer.Write expects
type Frame struct {
	Pix  []byte
	Size shm.Size
}

// Load decodes an image file (png, jpeg, gif, bmp, tiff, webp)
func Load(path string, opts Options) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()
	return Decode(f, opts)
}

// Decode reads an image from r
func Decode(r io.Reader, opts Options) (*Frame, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("unsupported image format: %w", err)
	}
	fr, err := FromImage(img, opts)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", format, err)
	}
	return fr, nil
}

// FromImage converts img, scaling and quantizing per opts
func FromImage(img image.Image, opts Options) (*Frame, error) {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, ErrEmptyImage
	}
	w, h := b.Dx(), b.Dy()
	if opts.Width > 0 {
		w = opts.Width
	}
	if opts.Height > 0 {
		h = opts.Height
	}

	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	} else {
		xdraw.CatmullRom.Scale(rgba, rgba.Bounds(), img, b, xdraw.Src, nil)
	}

	if opts.Colors > 0 {
		paletted := median.Quantizer(opts.Colors).Paletted(rgba)
		draw.Draw(paletted, paletted.Bounds(), rgba, image.Point{}, draw.Src)
		draw.Draw(rgba, rgba.Bounds(), paletted, image.Point{}, draw.Src)
	}

	// image.RGBA stride equals w*4 for a freshly allocated image
	shm.SwapRB(rgba.Pix, rgba.Pix)
	return &Frame{Pix: rgba.Pix, Size: shm.Size{Width: w, Height: h}}, nil
}

// Gradient builds an opaque test pattern: red across, green down, blue constant
func Gradient(size shm.Size) *Frame {
	pix := make([]byte, size.Bytes())
	for y := 0; y < size.Height; y++ {
		for x := 0; x < size.Width; x++ {
			i := (y*size.Width + x) * shm.BytesPerPixel
			pix[i+0] = 0x80                                  // B
			pix[i+1] = byte(y * 255 / max(size.Height-1, 1)) // G
			pix[i+2] = byte(x * 255 / max(size.Width-1, 1))  // R
			pix[i+3] = 0xff                                  // A
		}
	}
	return &Frame{Pix: pix, Size: size}
}
