package tvinput

// Bits of the button byte shared by the X10 and SGR encodings
const (
	mouseShift  = 0x04
	mouseAlt    = 0x08
	mouseCtrl   = 0x10
	mouseMotion = 0x20
	mouseButton = 0x43 // button number, including the wheel bit
)

// parseX10Mouse decodes ESC [ M b x y. The prefix has been read.
func parseX10Mouse(la *Lookahead, ev *Event, st *InputState) ParseResult {
	b := la.Get()
	x := la.Get()
	y := la.Get()
	if b == EOF || x == EOF || y == EOF || b < 32 {
		return Rejected
	}
	return mouseReport(uint(b-32), x10Coord(x), x10Coord(y), true, ev, st)
}

// x10Coord converts a coordinate byte, which is biased by 32 and wraps
// around at 256, into a 0-based coordinate
func x10Coord(b int) int32 {
	v := (b - 32) & 0xff
	if v == 0 {
		v = 256
	}
	return int32(v - 1)
}

// parseSGRMouse decodes ESC [ < b ; x ; y M (press) or m (release). The
// prefix has been read.
func parseSGRMouse(la *Lookahead, ev *Event, st *InputState) ParseResult {
	b, ok := la.GetNum()
	if !ok || la.Last(0) != ';' {
		return Rejected
	}
	x, ok := la.GetNum()
	if !ok || la.Last(0) != ';' {
		return Rejected
	}
	y, ok := la.GetNum()
	if !ok {
		return Rejected
	}
	term := la.Last(0)
	if term != 'M' && term != 'm' || max(b, x, y) >= maxNum {
		return Rejected
	}
	return mouseReport(b, sgrCoord(x), sgrCoord(y), term == 'M', ev, st)
}

func sgrCoord(v uint) int32 {
	if v == 0 {
		return 0
	}
	return int32(min(v-1, 1<<31-1))
}

// mouseReport fills ev from a decoded button code. The reported buttons
// come from the state accumulated in st, so that drags stay consistent
// when a terminal does not repeat the button on every report.
func mouseReport(code uint, x, y int32, press bool, ev *Event, st *InputState) ParseResult {
	m := MouseEvent{X: x, Y: y}
	if code&mouseShift != 0 {
		m.ControlKeyState |= KbShift
	}
	if code&mouseAlt != 0 {
		m.ControlKeyState |= KbAltShift
	}
	if code&mouseCtrl != 0 {
		m.ControlKeyState |= KbCtrlShift
	}
	motion := code&mouseMotion != 0
	prev := st.Buttons
	switch code & mouseButton {
	case 0, 1, 2:
		bit := [...]uint8{MbLeftButton, MbMiddleButton, MbRightButton}[code&3]
		if press {
			st.Buttons |= bit
		} else {
			st.Buttons &^= bit
		}
	case 3:
		// release, or motion with no button held
		st.Buttons = 0
	case 64:
		m.Wheel = WheelUp
	case 65:
		m.Wheel = WheelDown
	case 66:
		m.Wheel = WheelLeft
	case 67:
		m.Wheel = WheelRight
	}
	m.Buttons = st.Buttons
	pos := Point{x, y}
	if motion || (pos != st.LastMouse && prev == st.Buttons && m.Wheel == WheelNone) {
		m.EventFlags |= MouseMoved
	}
	st.LastMouse = pos
	ev.What = EvMouse
	ev.Mouse = m
	return Accepted
}
