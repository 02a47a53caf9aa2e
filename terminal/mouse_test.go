package terminal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeMouseFromCSI(t *testing.T) {
	tests := []struct {
		payload string
		want    MouseEvent
	}{
		{"<0;10;5M", MouseEvent{Type: MouseDown, Buttons: MouseButtonLeft, X: 9, Y: 4}},
		{"<0;10;5m", MouseEvent{Type: MouseUp, Buttons: MouseButtonLeft, X: 9, Y: 4}},
		{"<1;1;1M", MouseEvent{Type: MouseDown, Buttons: MouseButtonMiddle, X: 0, Y: 0}},
		{"<2;3;4M", MouseEvent{Type: MouseDown, Buttons: MouseButtonRight, X: 2, Y: 3}},
		{"<35;7;8M", MouseEvent{Type: MouseMove, Buttons: MouseButtonNone, Modifiers: MouseMotion, X: 6, Y: 7}},
		{"<32;7;8M", MouseEvent{Type: MouseMove, Buttons: MouseButtonLeft, Modifiers: MouseMotion, X: 6, Y: 7}},
		{"<64;1;1M", MouseEvent{Type: MouseDown, Buttons: MouseWheelUp, X: 0, Y: 0}},
		{"<65;1;1M", MouseEvent{Type: MouseDown, Buttons: MouseWheelDown, X: 0, Y: 0}},
		{"<66;1;1M", MouseEvent{Type: MouseDown, Buttons: MouseWheelLeft, X: 0, Y: 0}},
		{"<67;1;1M", MouseEvent{Type: MouseDown, Buttons: MouseWheelRight, X: 0, Y: 0}},
		{"<128;1;1M", MouseEvent{Type: MouseDown, Buttons: MouseButtonFourth, X: 0, Y: 0}},
		{"<131;1;1m", MouseEvent{Type: MouseUp, Buttons: MouseButtonSeventh, X: 0, Y: 0}},
		{"<20;2;2M", MouseEvent{Type: MouseDown, Buttons: MouseButtonLeft, Modifiers: MouseShift | MouseCtrl, X: 1, Y: 1}},
		{"<8;2;2M", MouseEvent{Type: MouseDown, Buttons: MouseButtonLeft, Modifiers: MouseAlt, X: 1, Y: 1}},
		{"<0;;5M", MouseEvent{Type: MouseDown, Buttons: MouseButtonLeft, X: -1, Y: 4}},
		{"<0;0;0M", MouseEvent{Type: MouseDown, Buttons: MouseButtonLeft, X: -1, Y: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.payload, func(t *testing.T) {
			got, ok := DecodeMouseFromCSI(tt.payload)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeMouseFromCSIRejects(t *testing.T) {
	for _, p := range []string{"", "<", "0;1;1M", "<0;1M", "<0;1;1;1M", "<x;1;1M", "<0;a;1M", "<0;1;1u", "97;5u"} {
		_, ok := DecodeMouseFromCSI(p)
		assert.False(t, ok, "payload %q", p)
	}
}

func TestMouseEventHasPosition(t *testing.T) {
	ev, _ := DecodeMouseFromCSI("<0;;3M")
	assert.False(t, ev.HasPosition())
	ev, _ = DecodeMouseFromCSI("<0;1;3M")
	assert.True(t, ev.HasPosition())
}

func TestMouseStrings(t *testing.T) {
	assert.Equal(t, "Left|WheelUp", (MouseButtonLeft | MouseWheelUp).String())
	assert.Equal(t, "None", MouseButtonNone.String())
	assert.Equal(t, "Shift+Ctrl", (MouseShift | MouseCtrl).String())
	assert.Equal(t, "Move", MouseMove.String())
}
