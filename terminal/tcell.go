package terminal

import (
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// tcellKeys maps decoded key names to tcell keys
var tcellKeys = map[string]tcell.Key{
	"esc":         tcell.KeyEscape,
	"enter":       tcell.KeyEnter,
	"return":      tcell.KeyEnter,
	"tab":         tcell.KeyTab,
	"backspace":   tcell.KeyBackspace2,
	"insert":      tcell.KeyInsert,
	"delete":      tcell.KeyDelete,
	"left":        tcell.KeyLeft,
	"right":       tcell.KeyRight,
	"up":          tcell.KeyUp,
	"down":        tcell.KeyDown,
	"pageup":      tcell.KeyPgUp,
	"pagedown":    tcell.KeyPgDn,
	"home":        tcell.KeyHome,
	"end":         tcell.KeyEnd,
	"printscreen": tcell.KeyPrint,
	"pause":       tcell.KeyPause,
}

func init() {
	fnames := [...]string{
		"f1", "f2", "f3", "f4", "f5", "f6", "f7", "f8", "f9", "f10", "f11", "f12",
		"f13", "f14", "f15", "f16", "f17", "f18", "f19", "f20", "f21", "f22", "f23", "f24",
	}
	for i, name := range fnames {
		tcellKeys[name] = tcell.KeyF1 + tcell.Key(i)
	}
}

// Tcell converts the event for tcell-based hosts
// Returns nil for releases and keys tcell cannot represent
func (e KeyEvent) Tcell() *tcell.EventKey {
	if e.Type != KeyDown && e.Type != KeyUnicode {
		return nil
	}

	var mod tcell.ModMask
	for _, m := range e.Modifiers {
		switch m {
		case ModNameShift:
			mod |= tcell.ModShift
		case ModNameCtrl:
			mod |= tcell.ModCtrl
		case ModNameAlt:
			mod |= tcell.ModAlt
		case ModNameMeta:
			mod |= tcell.ModMeta
		}
	}

	if e.Type == KeyDown {
		if k, ok := tcellKeys[e.Code]; ok {
			return tcell.NewEventKey(k, 0, mod)
		}
	}
	r, size := utf8.DecodeRuneInString(e.Code)
	if r == utf8.RuneError || size != len(e.Code) {
		return nil
	}
	return tcell.NewEventKey(tcell.KeyRune, r, mod)
}

var tcellButtons = []struct {
	bit  MouseButton
	mask tcell.ButtonMask
}{
	{MouseButtonLeft, tcell.Button1},
	{MouseButtonRight, tcell.Button2},
	{MouseButtonMiddle, tcell.Button3},
	{MouseButtonFourth, tcell.Button4},
	{MouseButtonFifth, tcell.Button5},
	{MouseButtonSixth, tcell.Button6},
	{MouseButtonSeventh, tcell.Button7},
	{MouseWheelUp, tcell.WheelUp},
	{MouseWheelDown, tcell.WheelDown},
	{MouseWheelLeft, tcell.WheelLeft},
	{MouseWheelRight, tcell.WheelRight},
}

// Tcell converts the event for tcell-based hosts
// Releases report no buttons, matching tcell's convention; absent coordinates become 0
func (e MouseEvent) Tcell() *tcell.EventMouse {
	var btn tcell.ButtonMask
	if e.Type != MouseUp {
		for _, b := range tcellButtons {
			if e.Buttons&b.bit != 0 {
				btn |= b.mask
			}
		}
	}

	var mod tcell.ModMask
	if e.Modifiers&MouseShift != 0 {
		mod |= tcell.ModShift
	}
	if e.Modifiers&MouseAlt != 0 {
		mod |= tcell.ModAlt
	}
	if e.Modifiers&MouseCtrl != 0 {
		mod |= tcell.ModCtrl
	}

	return tcell.NewEventMouse(max(e.X, 0), max(e.Y, 0), btn, mod)
}
