package tvinput

import (
	"unicode/utf16"
	"unicode/utf8"
)

// Win32KeyRecord holds the fields of a console KEY_EVENT_RECORD, as read
// from the console or as encoded by win32-input-mode.
type Win32KeyRecord struct {
	KeyDown         bool
	RepeatCount     uint16
	VirtualKeyCode  uint16
	VirtualScanCode uint16
	UnicodeChar     uint16
	ControlKeyState uint32
}

// Win32MouseRecord holds the fields of a console MOUSE_EVENT_RECORD
type Win32MouseRecord struct {
	X, Y            int16
	ButtonState     uint32
	ControlKeyState uint32
	EventFlags      uint32
}

// Console control key state bits
const (
	win32RightAlt   = 0x0001
	win32LeftAlt    = 0x0002
	win32RightCtrl  = 0x0004
	win32LeftCtrl   = 0x0008
	win32Shift      = 0x0010
	win32NumLock    = 0x0020
	win32ScrollLock = 0x0040
	win32CapsLock   = 0x0080
	win32Enhanced   = 0x0100
)

// Console mouse bits
const (
	win32FromLeft1stButton = 0x0001
	win32RightmostButton   = 0x0002
	win32FromLeft2ndButton = 0x0004

	win32MouseMoved   = 0x0001
	win32DoubleClick  = 0x0002
	win32MouseWheeled = 0x0004
	win32MouseHWheel  = 0x0008
)

// win32ControlKeyState folds left and right modifiers into one bit each
func win32ControlKeyState(cs uint32) uint16 {
	var state uint16
	if cs&win32Shift != 0 {
		state |= KbShift
	}
	if cs&(win32LeftCtrl|win32RightCtrl) != 0 {
		state |= KbCtrlShift
	}
	if cs&(win32LeftAlt|win32RightAlt) != 0 {
		state |= KbAltShift
	}
	if cs&win32NumLock != 0 {
		state |= KbNumState
	}
	if cs&win32ScrollLock != 0 {
		state |= KbScrollState
	}
	if cs&win32CapsLock != 0 {
		state |= KbCapsState
	}
	if cs&win32Enhanced != 0 {
		state |= KbEnhanced
	}
	return state
}

// DecodeWin32KeyRecord turns a console key record into a key event. Key
// releases, lone modifier keys and the first half of a surrogate pair are
// Ignored.
//
// Ctrl+Alt together with a character is taken to be AltGr and produces
// the character without modifiers. Ctrl+Alt on a character key that
// produced no character is dropped.
func DecodeWin32KeyRecord(rec Win32KeyRecord, ev *Event, st *InputState) ParseResult {
	if !rec.KeyDown || vkModifiers[rec.VirtualKeyCode] {
		return Ignored
	}
	ch := rune(rec.UnicodeChar)
	switch {
	case ch >= 0xd800 && ch < 0xdc00:
		st.Surrogate = rec.UnicodeChar
		return Ignored
	case ch >= 0xdc00 && ch < 0xe000:
		if st.Surrogate == 0 {
			ch = utf8.RuneError
		} else {
			ch = utf16.DecodeRune(rune(st.Surrogate), ch)
		}
	}
	st.Surrogate = 0

	mods := win32ControlKeyState(rec.ControlKeyState)
	printable := ch >= 0x20 && ch != 0x7f
	if mods&(KbCtrlShift|KbAltShift) == KbCtrlShift|KbAltShift {
		switch {
		case printable:
			mods &^= KbCtrlShift | KbAltShift
		case ch == 0 && isCharacterVK(rec.VirtualKeyCode):
			return Ignored
		}
	}

	var key KeyDownEvent
	vk := rec.VirtualKeyCode
	if code, ok := vkKeys[vk]; ok {
		key.KeyCode = code
		if printable && (code == KbGrayMinus || code == KbGrayPlus) {
			key.SetText(ch)
		}
	} else {
		switch {
		case printable:
			key = textKey(ch)
		case ch > 0 && ch < 0x20:
			key.KeyCode = uint16(ch)
		case vk >= 'A' && vk <= 'Z':
			key.KeyCode = vk - 'A' + 'a'
		case vk >= '0' && vk <= '9', vk == ' ':
			key.KeyCode = vk
		default:
			return Ignored
		}
	}
	key.ControlKeyState = mods
	Normalize(&key)
	ev.What = EvKeyDown
	ev.KeyDown = key
	return Accepted
}

// DecodeWin32MouseRecord turns a console mouse record into a mouse event
func DecodeWin32MouseRecord(rec Win32MouseRecord, ev *Event, st *InputState) ParseResult {
	m := MouseEvent{
		X:               int32(rec.X),
		Y:               int32(rec.Y),
		ControlKeyState: win32ControlKeyState(rec.ControlKeyState),
	}
	if rec.ButtonState&win32FromLeft1stButton != 0 {
		m.Buttons |= MbLeftButton
	}
	if rec.ButtonState&win32RightmostButton != 0 {
		m.Buttons |= MbRightButton
	}
	if rec.ButtonState&win32FromLeft2ndButton != 0 {
		m.Buttons |= MbMiddleButton
	}
	// the wheel delta is the signed high word of the button state
	delta := int16(rec.ButtonState >> 16)
	switch {
	case rec.EventFlags&win32MouseWheeled != 0:
		m.Wheel = WheelDown
		if delta > 0 {
			m.Wheel = WheelUp
		}
		m.Buttons = st.Buttons
	case rec.EventFlags&win32MouseHWheel != 0:
		m.Wheel = WheelLeft
		if delta > 0 {
			m.Wheel = WheelRight
		}
		m.Buttons = st.Buttons
	default:
		st.Buttons = m.Buttons
	}
	if rec.EventFlags&win32MouseMoved != 0 {
		m.EventFlags |= MouseMoved
	}
	if rec.EventFlags&win32DoubleClick != 0 {
		m.EventFlags |= MouseDoubleClick
	}
	st.LastMouse = Point{m.X, m.Y}
	ev.What = EvMouse
	ev.Mouse = m
	return Accepted
}

// parseWin32InputMode decodes CSI Vk ; Sc ; Uc ; Kd ; Cs ; Rc _
func parseWin32InputMode(la *Lookahead, csi *CSIData, ev *Event, st *InputState, depth int) ParseResult {
	rec := Win32KeyRecord{
		VirtualKeyCode:  uint16(csi.Value(0, 0)),
		VirtualScanCode: uint16(csi.Value(1, 0)),
		UnicodeChar:     uint16(csi.Value(2, 0)),
		KeyDown:         csi.Value(3, 0) != 0,
		ControlKeyState: uint32(csi.Value(4, 0)),
		RepeatCount:     uint16(csi.Value(5, 1)),
	}
	if rec.KeyDown && rec.UnicodeChar == 0x1b && depth < maxEscapeDepth {
		// ConPTY sends escape sequences one character per record
		u := &win32Unwrapper{la: la}
		inner := NewLookahead(u)
		res := parseEscapeSeq(inner, ev, st, depth+1)
		if res != Rejected {
			u.restorePartial()
			return res
		}
		u.restore()
		if u.eof {
			return Rejected
		}
		*ev = Event{}
	}
	return DecodeWin32KeyRecord(rec, ev, st)
}

// win32Unwrapper is a ByteSource that reads win32-input-mode records from
// la and yields the characters of their key presses.
type win32Unwrapper struct {
	la     *Lookahead
	raw    []int // bytes taken from la
	good   int   // length of raw covering complete records
	pushed []int
	eof    bool
}

func (u *win32Unwrapper) Get() int {
	if n := len(u.pushed); n > 0 {
		k := u.pushed[n-1]
		u.pushed = u.pushed[:n-1]
		return k
	}
	for {
		rec, ok := u.readRecord()
		if !ok {
			return EOF
		}
		if !rec.KeyDown || rec.UnicodeChar == 0 {
			continue
		}
		return int(min(rec.UnicodeChar, 0xff))
	}
}

func (u *win32Unwrapper) Unget(k int) {
	u.pushed = append(u.pushed, k)
}

func (u *win32Unwrapper) next() int {
	k := u.la.getUnbuffered()
	if k == EOF {
		u.eof = true
		return EOF
	}
	u.raw = append(u.raw, k)
	return k
}

// readRecord reads one ESC [ ... _ sequence
func (u *win32Unwrapper) readRecord() (Win32KeyRecord, bool) {
	if u.next() != 0x1b || u.next() != '[' {
		return Win32KeyRecord{}, false
	}
	var vals [maxCSIParams]uint32
	var seen [maxCSIParams]bool
	i := 0
	for {
		k := u.next()
		switch {
		case k >= '0' && k <= '9':
			vals[i] = vals[i]*10 + uint32(k-'0')
			seen[i] = true
			continue
		case k == ';':
			i++
			if i == maxCSIParams {
				return Win32KeyRecord{}, false
			}
			continue
		case k != '_':
			return Win32KeyRecord{}, false
		}
		break
	}
	u.good = len(u.raw)
	if !seen[5] {
		vals[5] = 1
	}
	return Win32KeyRecord{
		VirtualKeyCode:  uint16(vals[0]),
		VirtualScanCode: uint16(vals[1]),
		UnicodeChar:     uint16(vals[2]),
		KeyDown:         vals[3] != 0,
		ControlKeyState: vals[4],
		RepeatCount:     uint16(vals[5]),
	}, true
}

// restore pushes every byte taken from la back to its source
func (u *win32Unwrapper) restore() {
	u.unread(0)
}

// restorePartial pushes back the bytes of an incomplete trailing record
func (u *win32Unwrapper) restorePartial() {
	u.unread(u.good)
}

func (u *win32Unwrapper) unread(from int) {
	for i := len(u.raw) - 1; i >= from; i-- {
		u.la.src.Unget(u.raw[i])
	}
	u.raw = u.raw[:from]
}
