package shm

import (
	"encoding/binary"

	"golang.org/x/sys/cpu"
)

// Kernel widths in bytes
const (
	WidthScalar = 4
	Width128    = 16
	Width256    = 32
)

// swizzleFunc converts 32-bit pixels between BGRA and RGBA
// dst and src may be the same slice; len(src) must be a multiple of 4
type swizzleFunc func(dst, src []byte)

// DetectAlignment returns the widest kernel width the CPU is expected to handle well
func DetectAlignment() int {
	switch {
	case cpu.X86.HasAVX2:
		return Width256
	case cpu.X86.HasSSSE3, cpu.ARM64.HasASIMD:
		return Width128
	default:
		return WidthScalar
	}
}

var defaultAlignment = DetectAlignment()

// kernelFor returns the kernel for a supported alignment, nil otherwise
func kernelFor(alignment int) swizzleFunc {
	switch alignment {
	case Width256:
		return swizzle32
	case Width128:
		return swizzle16
	case WidthScalar:
		return swizzle4
	}
	return nil
}

// SwapRB swaps the red and blue channels of 32-bit pixels in src into dst
// using the widest kernel for this CPU; dst may alias src
func SwapRB(dst, src []byte) {
	n := len(src) &^ 3
	kernelFor(defaultAlignment)(dst[:n], src[:n])
}

// swapRB64 swaps bytes 0 and 2 of each 32-bit lane in a little-endian word
func swapRB64(v uint64) uint64 {
	return v&0xff00ff00ff00ff00 |
		(v&0x000000ff000000ff)<<16 |
		(v>>16)&0x000000ff000000ff
}

func swizzle4(dst, src []byte) {
	dst = dst[:len(src)]
	for i := 0; i+3 < len(src); i += 4 {
		dst[i], dst[i+1], dst[i+2], dst[i+3] = src[i+2], src[i+1], src[i], src[i+3]
	}
}

// swizzle16 handles 16-byte blocks as two words, finishing the tail with swizzle4
func swizzle16(dst, src []byte) {
	i := 0
	for ; i+16 <= len(src); i += 16 {
		a := binary.LittleEndian.Uint64(src[i:])
		b := binary.LittleEndian.Uint64(src[i+8:])
		binary.LittleEndian.PutUint64(dst[i:], swapRB64(a))
		binary.LittleEndian.PutUint64(dst[i+8:], swapRB64(b))
	}
	swizzle4(dst[i:], src[i:])
}

// swizzle32 handles 32-byte blocks as four words, finishing the tail with swizzle4
func swizzle32(dst, src []byte) {
	i := 0
	for ; i+32 <= len(src); i += 32 {
		s := src[i : i+32 : i+32]
		d := dst[i : i+32 : i+32]
		a := binary.LittleEndian.Uint64(s[0:])
		b := binary.LittleEndian.Uint64(s[8:])
		c := binary.LittleEndian.Uint64(s[16:])
		e := binary.LittleEndian.Uint64(s[24:])
		binary.LittleEndian.PutUint64(d[0:], swapRB64(a))
		binary.LittleEndian.PutUint64(d[8:], swapRB64(b))
		binary.LittleEndian.PutUint64(d[16:], swapRB64(c))
		binary.LittleEndian.PutUint64(d[24:], swapRB64(e))
	}
	swizzle4(dst[i:], src[i:])
}
