package tvinput

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// EventKind selects which payload of an Event is meaningful
type EventKind uint8

const (
	EvNothing EventKind = iota
	EvKeyDown
	EvMouse
	EvCommand
)

// Mouse buttons
const (
	MbLeftButton   = 0x01
	MbRightButton  = 0x02
	MbMiddleButton = 0x04
)

// Mouse event flags
const (
	MouseMoved       = 0x01
	MouseDoubleClick = 0x02
)

// Wheel directions
const (
	WheelNone  int8 = 0
	WheelUp    int8 = 1
	WheelDown  int8 = -1
	WheelLeft  int8 = 2
	WheelRight int8 = -2
)

// Command codes carried by EvCommand events
const (
	CmScreenChanged = 1
)

// maxCharSize is the capacity of KeyDownEvent.Text
const maxCharSize = 4

// KeyDownEvent is a single keypress
type KeyDownEvent struct {
	KeyCode         uint16
	ControlKeyState uint16
	Text            [maxCharSize]byte
	TextLength      uint8
}

// ScanCode returns the high byte of the key code
func (k KeyDownEvent) ScanCode() uint8 {
	return uint8(k.KeyCode >> 8)
}

// CharCode returns the low byte of the key code
func (k KeyDownEvent) CharCode() uint8 {
	return uint8(k.KeyCode)
}

// GetText returns the text attached to the keypress
func (k KeyDownEvent) GetText() string {
	return string(k.Text[:k.TextLength])
}

// SetText attaches the UTF-8 encoding of r, or clears the text if r is
// negative or does not fit.
func (k *KeyDownEvent) SetText(r rune) {
	k.Text = [maxCharSize]byte{}
	k.TextLength = 0
	if r < 0 || utf8.RuneLen(r) > maxCharSize {
		return
	}
	k.TextLength = uint8(utf8.EncodeRune(k.Text[:], r))
}

// textKey builds the key event for a printable rune: the character code
// is the code page 437 byte for r, if there is one.
func textKey(r rune) KeyDownEvent {
	var k KeyDownEvent
	switch {
	case r < 0x80:
		k.KeyCode = uint16(r)
	default:
		if b, ok := charmap.CodePage437.EncodeRune(r); ok && b >= 0x80 {
			k.KeyCode = uint16(b)
		}
	}
	k.SetText(r)
	return k
}

// MouseEvent is a mouse report, with 0-based coordinates
type MouseEvent struct {
	X, Y            int32
	Buttons         uint8
	EventFlags      uint8
	Wheel           int8
	ControlKeyState uint16
}

// CommandEvent carries out-of-band notifications such as screen resizes
type CommandEvent struct {
	Command       uint16
	Width, Height int
}

// Event is a decoded input event. Only the payload selected by What is
// meaningful.
type Event struct {
	What    EventKind
	KeyDown KeyDownEvent
	Mouse   MouseEvent
	Command CommandEvent
}

func (ev Event) String() string {
	switch ev.What {
	case EvKeyDown:
		return ev.KeyDown.String()
	case EvMouse:
		m := ev.Mouse
		return fmt.Sprintf("mouse x=%d y=%d buttons=%#x flags=%#x wheel=%d mods=%s",
			m.X, m.Y, m.Buttons, m.EventFlags, m.Wheel, modString(m.ControlKeyState))
	case EvCommand:
		if ev.Command.Command == CmScreenChanged {
			return fmt.Sprintf("resize %dx%d", ev.Command.Width, ev.Command.Height)
		}
		return fmt.Sprintf("command %d", ev.Command.Command)
	}
	return "nothing"
}

func (k KeyDownEvent) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "key %#04x", k.KeyCode)
	if name := KeyName(k.KeyCode); name != "" {
		sb.WriteString(" " + name)
	}
	if k.TextLength > 0 {
		fmt.Fprintf(&sb, " text=%q", k.GetText())
	}
	if mods := modString(k.ControlKeyState); mods != "" {
		sb.WriteString(" mods=" + mods)
	}
	return sb.String()
}

func modString(state uint16) string {
	var parts []string
	for _, m := range []struct {
		bit  uint16
		name string
	}{
		{KbShift, "shift"}, {KbCtrlShift, "ctrl"}, {KbAltShift, "alt"},
		{KbCapsState, "caps"}, {KbNumState, "num"}, {KbScrollState, "scroll"},
		{KbEnhanced, "enhanced"}, {KbPaste, "paste"},
	} {
		if state&m.bit != 0 {
			parts = append(parts, m.name)
		}
	}
	return strings.Join(parts, "|")
}
