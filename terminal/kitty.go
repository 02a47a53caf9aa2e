// @focus: #sys { term, keyboard }
package terminal

import (
	"strings"
	"unicode/utf8"
)

// KeyEventType classifies a decoded key event
type KeyEventType int

const (
	KeyInvalid KeyEventType = iota
	KeyDown
	KeyRepeat
	KeyUp
	KeyUnicode // Text produced by the key rather than a named key
)

// String returns the event type name
func (t KeyEventType) String() string {
	switch t {
	case KeyDown:
		return "Down"
	case KeyRepeat:
		return "Repeat"
	case KeyUp:
		return "Up"
	case KeyUnicode:
		return "Unicode"
	default:
		return "Invalid"
	}
}

// KeyModifier is the kitty modifier bitmask (wire value minus one)
type KeyModifier int

const (
	ModShift KeyModifier = 1 << iota
	ModAlt
	ModCtrl
	ModSuper
	ModHyper
	ModMeta
	ModCapsLock
	ModNumLock
)

// Modifier names in accelerator order
const (
	ModNameMeta       = "meta"
	ModNameCtrl       = "ctrl"
	ModNameShift      = "shift"
	ModNameAlt        = "alt"
	ModNameCapsLock   = "capslock"
	ModNameNumLock    = "numlock"
	ModNameAutoRepeat = "isautorepeat"
)

// KeyEvent is a decoded keyboard event
type KeyEvent struct {
	Type      KeyEventType
	Modifiers []string // Ordered: meta, ctrl, shift, alt, capslock, numlock, isautorepeat
	Code      string   // Named key, printable character, or associated text
}

// Valid reports whether the event decoded successfully
func (e KeyEvent) Valid() bool {
	return e.Type != KeyInvalid
}

// HasModifier reports whether name is among the event modifiers
func (e KeyEvent) HasModifier(name string) bool {
	for _, m := range e.Modifiers {
		if m == name {
			return true
		}
	}
	return false
}

// Accelerator renders the event as "mod+mod+code", e.g. "ctrl+shift+a"
func (e KeyEvent) Accelerator() string {
	if len(e.Modifiers) == 0 {
		return e.Code
	}
	var sb strings.Builder
	for _, m := range e.Modifiers {
		sb.WriteString(m)
		sb.WriteByte('+')
	}
	sb.WriteString(e.Code)
	return sb.String()
}

// keyTrailers are the CSI final bytes the kitty protocol uses for key reports
const keyTrailers = "u~ABCDEHFPQRS"

// DecodeKeyFromCSI decodes a CSI body (parameters + final byte, no ESC [) as a kitty key report
// Returns a KeyInvalid event when the payload is not a key
func DecodeKeyFromCSI(payload string) KeyEvent {
	if payload == "" {
		return KeyEvent{}
	}
	trailer := payload[len(payload)-1]
	body := payload[:len(payload)-1]
	if strings.IndexByte(keyTrailers, trailer) < 0 {
		return KeyEvent{}
	}
	// Bracketed paste markers share the ~ trailer
	if trailer == '~' && (body == "200" || body == "201") {
		return KeyEvent{}
	}

	sections := strings.Split(body, ";")
	keyField := parseSubFields(sections[0], 0)
	var modField, textField []int
	if len(sections) > 1 {
		modField = parseSubFields(sections[1], 1)
	}
	if len(sections) > 2 {
		textField = parseSubFields(sections[2], 0)
	}

	keyNum, letter := letterTrailerKeys[trailer]
	if !letter {
		if len(keyField) == 0 {
			return KeyEvent{}
		}
		keyNum = keyField[0]
	}

	typ := KeyDown
	var mods KeyModifier
	if len(modField) > 0 && modField[0] > 1 {
		mods = KeyModifier(modField[0] - 1)
	}
	if len(modField) > 1 {
		switch modField[1] {
		case 1:
			typ = KeyDown
		case 2:
			typ = KeyRepeat
		case 3:
			typ = KeyUp
		default:
			return KeyEvent{}
		}
	}
	names := modifierNames(mods, typ == KeyRepeat)

	var code string
	switch {
	case keyNum == 13:
		// Enter under CSI u, F3 in the legacy ~ form
		if trailer == 'u' {
			code = "enter"
		} else {
			code = "f3"
		}
	case keyNum > 0:
		if fn, ok := legacyFunctionalKeys[keyNum]; ok {
			keyNum = fn
		}
		code = functionalKeyNames[keyNum]
	}

	if code == "" {
		switch {
		case keyNum >= 0x20 && keyNum <= 0x7e:
			code = string(rune(keyNum))
		default:
			text := associatedText(textField)
			if text == "" {
				return KeyEvent{}
			}
			typ = KeyUnicode
			code = text
		}
	}

	// Repeats surface as presses carrying the isautorepeat marker
	if typ == KeyRepeat {
		typ = KeyDown
	}
	return KeyEvent{Type: typ, Modifiers: names, Code: code}
}

// parseSubFields splits a ;-section on ':' into integers
// Empty sub-fields take missing; any non-numeric sub-field voids the whole section
func parseSubFields(section string, missing int) []int {
	parts := strings.Split(section, ":")
	out := make([]int, len(parts))
	for i, part := range parts {
		if part == "" {
			out[i] = missing
			continue
		}
		n, ok := parseDecimal(part)
		if !ok {
			return nil
		}
		out[i] = n
	}
	return out
}

// parseDecimal accepts unsigned ASCII digits only, saturating on overflow
func parseDecimal(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	const limit = 1 << 30
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		if n < limit {
			n = n*10 + int(c-'0')
		}
	}
	return n, true
}

func modifierNames(m KeyModifier, repeat bool) []string {
	var names []string
	if m&ModMeta != 0 {
		names = append(names, ModNameMeta)
	}
	if m&ModCtrl != 0 {
		names = append(names, ModNameCtrl)
	}
	if m&ModShift != 0 {
		names = append(names, ModNameShift)
	}
	if m&ModAlt != 0 {
		names = append(names, ModNameAlt)
	}
	if m&ModCapsLock != 0 {
		names = append(names, ModNameCapsLock)
	}
	if m&ModNumLock != 0 {
		names = append(names, ModNameNumLock)
	}
	if repeat {
		names = append(names, ModNameAutoRepeat)
	}
	return names
}

// associatedText renders the third section codepoints, skipping invalid ones
func associatedText(cps []int) string {
	if len(cps) == 0 {
		return ""
	}
	buf := make([]byte, 0, len(cps)*utf8.UTFMax)
	for _, cp := range cps {
		r := rune(cp)
		if cp <= 0 || cp > utf8.MaxRune || !utf8.ValidRune(r) {
			continue
		}
		buf = utf8.AppendRune(buf, r)
	}
	return string(buf)
}
