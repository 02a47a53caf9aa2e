// @focus: #sys { term, mouse }
package terminal

import "strings"

// MouseEventType represents the type of mouse event
type MouseEventType uint8

const (
	MouseDown MouseEventType = iota
	MouseUp
	MouseMove
)

// MouseButton is a bitmask of mouse buttons
type MouseButton uint16

const (
	MouseButtonNone    MouseButton = 0
	MouseButtonLeft    MouseButton = 1 << 0
	MouseButtonMiddle  MouseButton = 1 << 1
	MouseButtonRight   MouseButton = 1 << 2
	MouseButtonFourth  MouseButton = 1 << 3
	MouseButtonFifth   MouseButton = 1 << 4
	MouseButtonSixth   MouseButton = 1 << 5
	MouseButtonSeventh MouseButton = 1 << 6
	MouseWheelUp       MouseButton = 1 << 7
	MouseWheelDown     MouseButton = 1 << 8
	MouseWheelLeft     MouseButton = 1 << 9
	MouseWheelRight    MouseButton = 1 << 10
)

// MouseModifier is a bitmask using the SGR button-code wire bits
type MouseModifier uint8

const (
	MouseShift  MouseModifier = 1 << 2
	MouseAlt    MouseModifier = 1 << 3
	MouseCtrl   MouseModifier = 1 << 4
	MouseMotion MouseModifier = 1 << 5
)

const mouseModifierMask = int(MouseShift | MouseAlt | MouseCtrl | MouseMotion)

// sgrButtons maps the SGR button code (modifier bits cleared) to buttons
var sgrButtons = map[int]MouseButton{
	0:   MouseButtonLeft,
	1:   MouseButtonMiddle,
	2:   MouseButtonRight,
	3:   MouseButtonNone,
	64:  MouseWheelUp,
	65:  MouseWheelDown,
	66:  MouseWheelLeft,
	67:  MouseWheelRight,
	128: MouseButtonFourth,
	129: MouseButtonFifth,
	130: MouseButtonSixth,
	131: MouseButtonSeventh,
}

// MouseEvent is a decoded SGR mouse report
type MouseEvent struct {
	Type      MouseEventType
	Buttons   MouseButton
	Modifiers MouseModifier
	X, Y      int // 0-based cell, -1 when absent
}

// HasPosition reports whether both coordinates are present
func (e MouseEvent) HasPosition() bool {
	return e.X >= 0 && e.Y >= 0
}

// DecodeMouseFromCSI decodes an SGR mouse body "<Cb;Cx;Cy" + 'M' or 'm'
func DecodeMouseFromCSI(payload string) (MouseEvent, bool) {
	if len(payload) < 2 || payload[0] != '<' {
		return MouseEvent{}, false
	}
	trailer := payload[len(payload)-1]
	if trailer != 'M' && trailer != 'm' {
		return MouseEvent{}, false
	}

	fields := strings.Split(payload[1:len(payload)-1], ";")
	if len(fields) != 3 {
		return MouseEvent{}, false
	}
	cb, ok := parseDecimal(fields[0])
	if !ok {
		return MouseEvent{}, false
	}
	x, ok := parseCoordinate(fields[1])
	if !ok {
		return MouseEvent{}, false
	}
	y, ok := parseCoordinate(fields[2])
	if !ok {
		return MouseEvent{}, false
	}

	ev := MouseEvent{
		Buttons:   sgrButtons[cb&^mouseModifierMask],
		Modifiers: MouseModifier(cb & mouseModifierMask),
		X:         x,
		Y:         y,
	}
	switch {
	case trailer == 'm':
		ev.Type = MouseUp
	case ev.Modifiers&MouseMotion != 0:
		ev.Type = MouseMove
	default:
		ev.Type = MouseDown
	}
	return ev, true
}

// parseCoordinate converts a 1-based wire coordinate; empty or zero means absent
func parseCoordinate(s string) (int, bool) {
	if s == "" {
		return -1, true
	}
	n, ok := parseDecimal(s)
	if !ok {
		return 0, false
	}
	if n < 1 {
		return -1, true
	}
	return n - 1, true
}

// String returns human-readable event type name
func (t MouseEventType) String() string {
	switch t {
	case MouseDown:
		return "Down"
	case MouseUp:
		return "Up"
	case MouseMove:
		return "Move"
	default:
		return "Unknown"
	}
}

var buttonNames = []struct {
	bit  MouseButton
	name string
}{
	{MouseButtonLeft, "Left"},
	{MouseButtonMiddle, "Middle"},
	{MouseButtonRight, "Right"},
	{MouseButtonFourth, "Fourth"},
	{MouseButtonFifth, "Fifth"},
	{MouseButtonSixth, "Sixth"},
	{MouseButtonSeventh, "Seventh"},
	{MouseWheelUp, "WheelUp"},
	{MouseWheelDown, "WheelDown"},
	{MouseWheelLeft, "WheelLeft"},
	{MouseWheelRight, "WheelRight"},
}

// String returns "|"-joined button names
func (b MouseButton) String() string {
	if b == MouseButtonNone {
		return "None"
	}
	var parts []string
	for _, bn := range buttonNames {
		if b&bn.bit != 0 {
			parts = append(parts, bn.name)
		}
	}
	return strings.Join(parts, "|")
}

// String returns "+"-joined modifier names
func (m MouseModifier) String() string {
	var parts []string
	if m&MouseShift != 0 {
		parts = append(parts, "Shift")
	}
	if m&MouseAlt != 0 {
		parts = append(parts, "Alt")
	}
	if m&MouseCtrl != 0 {
		parts = append(parts, "Ctrl")
	}
	if m&MouseMotion != 0 {
		parts = append(parts, "Motion")
	}
	if len(parts) == 0 {
		return "None"
	}
	return strings.Join(parts, "+")
}
