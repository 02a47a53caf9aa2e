package frame

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"github.com/lixenwraith/termio/shm"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 0xff, A: 0xff})
	img.Set(1, 0, color.RGBA{G: 0xff, A: 0xff})
	img.Set(0, 1, color.RGBA{B: 0xff, A: 0xff})
	img.Set(1, 1, color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff})
	return img
}

var wantBGRA = []byte{
	0x00, 0x00, 0xff, 0xff, 0x00, 0xff, 0x00, 0xff,
	0xff, 0x00, 0x00, 0xff, 0x30, 0x20, 0x10, 0xff,
}

func TestFromImage(t *testing.T) {
	fr, err := FromImage(testImage(), Options{})
	require.NoError(t, err)
	assert.Equal(t, shm.Size{Width: 2, Height: 2}, fr.Size)
	assert.Equal(t, wantBGRA, fr.Pix)
}

func TestFromImageEmpty(t *testing.T) {
	_, err := FromImage(image.NewRGBA(image.Rect(0, 0, 0, 5)), Options{})
	assert.ErrorIs(t, err, ErrEmptyImage)
}

func TestDecodeFormats(t *testing.T) {
	var pngBuf, bmpBuf bytes.Buffer
	require.NoError(t, png.Encode(&pngBuf, testImage()))
	require.NoError(t, bmp.Encode(&bmpBuf, testImage()))

	for name, buf := range map[string]*bytes.Buffer{"png": &pngBuf, "bmp": &bmpBuf} {
		t.Run(name, func(t *testing.T) {
			fr, err := Decode(buf, Options{})
			require.NoError(t, err)
			assert.Equal(t, wantBGRA, fr.Pix)
		})
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("not an image")), Options{})
	assert.Error(t, err)
}

func TestLoadScalesAndQuantizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, testImage()))
	require.NoError(t, f.Close())

	fr, err := Load(path, Options{Width: 8, Height: 6, Colors: 2})
	require.NoError(t, err)
	assert.Equal(t, shm.Size{Width: 8, Height: 6}, fr.Size)
	assert.Len(t, fr.Pix, 8*6*4)

	distinct := make(map[[4]byte]struct{})
	for i := 0; i < len(fr.Pix); i += 4 {
		distinct[[4]byte(fr.Pix[i:i+4])] = struct{}{}
	}
	assert.LessOrEqual(t, len(distinct), 2)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.png"), Options{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestGradient(t *testing.T) {
	fr := Gradient(shm.Size{Width: 3, Height: 2})
	require.Len(t, fr.Pix, 24)
	// Top-left: no red or green; bottom-right: full red and green
	assert.Equal(t, []byte{0x80, 0x00, 0x00, 0xff}, fr.Pix[0:4])
	assert.Equal(t, []byte{0x80, 0xff, 0xff, 0xff}, fr.Pix[20:24])
}
