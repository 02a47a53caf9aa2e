package terminal

import "unicode/utf8"

// utf8Status reports the outcome of feeding one byte to the decoder
type utf8Status uint8

const (
	utf8More    utf8Status = iota // Sequence in progress
	utf8Done                      // Codepoint complete
	utf8Invalid                   // Byte rejected and dropped
	utf8Retry                     // Pending sequence abandoned; byte must be fed again
)

// utf8Decoder assembles codepoints one byte at a time
// Overlong forms, surrogates and values above U+10FFFF are rejected
type utf8Decoder struct {
	cp   rune
	need int  // Continuation bytes still expected
	min  rune // Smallest legal value for the current sequence length
}

// idle reports whether no multi-byte sequence is pending
func (d *utf8Decoder) idle() bool {
	return d.need == 0
}

func (d *utf8Decoder) reset() {
	d.cp = 0
	d.need = 0
	d.min = 0
}

// feed consumes one byte
func (d *utf8Decoder) feed(b byte) (rune, utf8Status) {
	if d.need > 0 {
		if b&0xc0 != 0x80 {
			// Truncated sequence, caller re-feeds b as a fresh start
			d.reset()
			return 0, utf8Retry
		}
		d.cp = d.cp<<6 | rune(b&0x3f)
		d.need--
		if d.need > 0 {
			return 0, utf8More
		}
		r := d.cp
		min := d.min
		d.reset()
		if r < min || r > utf8.MaxRune || (r >= 0xd800 && r <= 0xdfff) {
			return 0, utf8Invalid
		}
		return r, utf8Done
	}

	switch {
	case b < 0x80:
		return rune(b), utf8Done
	case b >= 0xc2 && b <= 0xdf:
		d.cp, d.need, d.min = rune(b&0x1f), 1, 0x80
	case b >= 0xe0 && b <= 0xef:
		d.cp, d.need, d.min = rune(b&0x0f), 2, 0x800
	case b >= 0xf0 && b <= 0xf4:
		d.cp, d.need, d.min = rune(b&0x07), 3, 0x10000
	default:
		// Stray continuation, 0xc0/0xc1 overlong leads, 0xf5-0xff
		return 0, utf8Invalid
	}
	return 0, utf8More
}

// utf8LeadLen returns the continuation count announced by a lead byte, 0 otherwise
func utf8LeadLen(b byte) int {
	switch {
	case b&0xe0 == 0xc0:
		return 1
	case b&0xf0 == 0xe0:
		return 2
	case b&0xf8 == 0xf0:
		return 3
	}
	return 0
}

// EncodeCodepoint renders a codepoint as UTF-8 (1-4 bytes)
// Values outside the Unicode range or in the surrogate block encode as U+FFFD
func EncodeCodepoint(r rune) []byte {
	return utf8.AppendRune(make([]byte, 0, utf8.UTFMax), r)
}
