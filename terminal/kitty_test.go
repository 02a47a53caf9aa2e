package terminal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeKeyFromCSI(t *testing.T) {
	tests := []struct {
		payload string
		want    KeyEvent
	}{
		{"97u", KeyEvent{Type: KeyDown, Code: "a"}},
		{"97;5u", KeyEvent{Type: KeyDown, Modifiers: []string{"ctrl"}, Code: "a"}},
		{"97;6u", KeyEvent{Type: KeyDown, Modifiers: []string{"ctrl", "shift"}, Code: "a"}},
		{"97;1:2u", KeyEvent{Type: KeyDown, Modifiers: []string{"isautorepeat"}, Code: "a"}},
		{"97;1:3u", KeyEvent{Type: KeyUp, Code: "a"}},
		{"97;:3u", KeyEvent{Type: KeyUp, Code: "a"}},
		{"57358u", KeyEvent{Type: KeyDown, Code: "capslock"}},
		{"13u", KeyEvent{Type: KeyDown, Code: "enter"}},
		{"13~", KeyEvent{Type: KeyDown, Code: "f3"}},
		{"27u", KeyEvent{Type: KeyDown, Code: "esc"}},
		{"127u", KeyEvent{Type: KeyDown, Code: "backspace"}},
		{"3~", KeyEvent{Type: KeyDown, Code: "delete"}},
		{"5;3~", KeyEvent{Type: KeyDown, Modifiers: []string{"alt"}, Code: "pageup"}},
		{"24~", KeyEvent{Type: KeyDown, Code: "f12"}},
		{"A", KeyEvent{Type: KeyDown, Code: "up"}},
		{"1;2A", KeyEvent{Type: KeyDown, Modifiers: []string{"shift"}, Code: "up"}},
		{"1;1:3D", KeyEvent{Type: KeyUp, Code: "left"}},
		{"H", KeyEvent{Type: KeyDown, Code: "home"}},
		{"F", KeyEvent{Type: KeyDown, Code: "end"}},
		{"P", KeyEvent{Type: KeyDown, Code: "f1"}},
		{"1;5S", KeyEvent{Type: KeyDown, Modifiers: []string{"ctrl"}, Code: "f4"}},
		{"57399u", KeyEvent{Type: KeyDown, Code: "num0"}},
		{"57417u", KeyEvent{Type: KeyDown, Code: "left"}},
		{"57441u", KeyEvent{Type: KeyDown, Code: "left+shift"}},
		{"57440u", KeyEvent{Type: KeyDown, Code: "volumemute"}},
		// meta(32)+ctrl(4)+shift(1)+alt(2)+capslock(64)+numlock(128) = 231, wire value 232
		{"97;232u", KeyEvent{Type: KeyDown, Modifiers: []string{"meta", "ctrl", "shift", "alt", "capslock", "numlock"}, Code: "a"}},
		{"97;232:2u", KeyEvent{Type: KeyDown, Modifiers: []string{"meta", "ctrl", "shift", "alt", "capslock", "numlock", "isautorepeat"}, Code: "a"}},
		// Super and hyper have no accelerator name
		{"97;9u", KeyEvent{Type: KeyDown, Code: "a"}},
		// Associated text for keys without a name
		{"0;;228u", KeyEvent{Type: KeyUnicode, Code: "\u00e4"}},
		{"1089::99;1;1089u", KeyEvent{Type: KeyUnicode, Code: "\u0441"}},
		{"0;5;104:105u", KeyEvent{Type: KeyUnicode, Modifiers: []string{"ctrl"}, Code: "hi"}},
	}

	for _, tt := range tests {
		t.Run(tt.payload, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeKeyFromCSI(tt.payload))
		})
	}
}

func TestDecodeKeyFromCSIInvalid(t *testing.T) {
	payloads := []string{
		"",
		"200~", // Bracketed paste start
		"201~", // Bracketed paste end
		"97x",  // Unsupported trailer
		"<0;1;1M",
		"abcu",    // Non-numeric key
		"0u",      // Nothing to report
		"1089u",   // Not printable ASCII, no text
		"97;1:7u", // Unknown event type
		"0;;55296u",
		"57427u", // Keypad begin has no name
		"E",
	}
	for _, p := range payloads {
		assert.Equal(t, KeyInvalid, DecodeKeyFromCSI(p).Type, "payload %q", p)
	}
}

func TestDecodeKeyNonNumericModifierSection(t *testing.T) {
	// An unparsable section is treated as empty, so defaults apply
	assert.Equal(t, KeyEvent{Type: KeyDown, Code: "a"}, DecodeKeyFromCSI("97;x5u"))
}

func TestKeyEventAccelerator(t *testing.T) {
	tests := []struct {
		payload string
		want    string
	}{
		{"97;5u", "ctrl+a"},
		{"97u", "a"},
		{"1;6A", "ctrl+shift+up"},
		{"97;1:2u", "isautorepeat+a"},
	}
	for _, tt := range tests {
		ev := DecodeKeyFromCSI(tt.payload)
		assert.Equal(t, tt.want, ev.Accelerator(), "payload %q", tt.payload)
	}
}

func TestKeyEventHasModifier(t *testing.T) {
	ev := DecodeKeyFromCSI("97;7u")
	assert.True(t, ev.HasModifier(ModNameCtrl))
	assert.True(t, ev.HasModifier(ModNameAlt))
	assert.False(t, ev.HasModifier(ModNameShift))
}
