package tvinput

import (
	"unicode"
	"unicode/utf8"
)

// maxEscapeDepth bounds the nesting of double ESC and wrapped
// win32-input-mode sequences
const maxEscapeDepth = 2

// ParseEvent decodes one event from la. On Accepted, ev is populated. On
// Rejected, every byte read is pushed back to the source. On Ignored, the
// bytes were protocol traffic and are consumed.
func ParseEvent(la *Lookahead, ev *Event, st *InputState) ParseResult {
	*ev = Event{}
	var res ParseResult
	switch k := la.Get(); k {
	case EOF:
		res = Rejected
	case '\x1b':
		res = parseEscapeSeq(la, ev, st, 0)
	default:
		res = parsePlainKey(la, k, ev)
	}
	finishParse(la, res, ev, st)
	return res
}

// ParseEscapeSeq decodes the rest of an escape sequence. The ESC must
// have been read from la already; on Rejected it is pushed back too.
func ParseEscapeSeq(la *Lookahead, ev *Event, st *InputState) ParseResult {
	*ev = Event{}
	res := parseEscapeSeq(la, ev, st, 0)
	finishParse(la, res, ev, st)
	return res
}

func finishParse(la *Lookahead, res ParseResult, ev *Event, st *InputState) {
	if res == Rejected {
		la.Reject()
		return
	}
	if res == Accepted && ev.What == EvKeyDown && st.BracketedPaste {
		ev.KeyDown.ControlKeyState |= KbPaste
	}
	la.Commit()
}

func parseEscapeSeq(la *Lookahead, ev *Event, st *InputState, depth int) ParseResult {
	switch la.Get() {
	case '[':
		switch la.Get() {
		case 'M':
			return parseX10Mouse(la, ev, st)
		case '<':
			return parseSGRMouse(la, ev, st)
		case '?', '>':
			return parseCSIReply(la, st)
		default:
			la.Unget()
			return parseCSIKey(la, ev, st, depth)
		}
	case 'O':
		return parseSS3Key(la, ev)
	case 'P':
		return parseDCS(la, st)
	case ']':
		return parseOSC(la, st)
	case '_':
		return parseAPC(la)
	case '\x1b':
		if depth >= maxEscapeDepth {
			return Rejected
		}
		// Alt applies once: ESC ESC ESC is an Escape key first
		if la.Get() == '\x1b' {
			return Rejected
		}
		la.Unget()
		res := parseEscapeSeq(la, ev, st, depth+1)
		if res == Accepted && ev.What == EvKeyDown {
			ev.KeyDown.ControlKeyState |= KbAltShift
			Normalize(&ev.KeyDown)
		}
		return res
	}
	return Rejected
}

// parsePlainKey decodes a key that does not start with ESC
func parsePlainKey(la *Lookahead, k int, ev *Event) ParseResult {
	var key KeyDownEvent
	switch {
	case k >= 0x80:
		r, ok := readRune(la, byte(k))
		if !ok {
			return Rejected
		}
		key = textKey(r)
	case k == '\r', k == '\n':
		key.KeyCode = KbEnter
	case k == '\t':
		key.KeyCode = KbTab
	case k == 0x7f:
		key.KeyCode = KbBack
	case k == 0x08:
		key.KeyCode = KbCtrlBack
	case k == 0:
		key.KeyCode = ' '
		key.ControlKeyState = KbCtrlShift
	case k < 0x20:
		key.KeyCode = uint16(k)
		key.ControlKeyState = KbCtrlShift
	default:
		key = textKey(rune(k))
	}
	Normalize(&key)
	ev.What = EvKeyDown
	ev.KeyDown = key
	return Accepted
}

// readRune assembles a UTF-8 sequence starting with first. A byte that
// breaks the sequence is pushed back and U+FFFD is returned.
func readRune(la *Lookahead, first byte) (rune, bool) {
	var a UTF8Assembler
	var buf [2]rune
	out := a.AddByte(first, buf[:0])
	for len(out) == 0 {
		k := la.Get()
		if k == EOF {
			return 0, false
		}
		out = a.AddByte(byte(k), out)
		if len(out) > 1 || (len(out) == 1 && a.Pending()) {
			la.Unget()
			return utf8.RuneError, true
		}
	}
	return out[0], true
}

// xtermModifiers converts an xterm modifier parameter (1 + bitmask) into
// control key state bits. Meta is reported as Alt.
func xtermModifiers(param uint) uint16 {
	if param == 0 {
		param = 1
	}
	m := param - 1
	var state uint16
	if m&1 != 0 {
		state |= KbShift
	}
	if m&(2|8) != 0 {
		state |= KbAltShift
	}
	if m&4 != 0 {
		state |= KbCtrlShift
	}
	if m&64 != 0 {
		state |= KbCapsState
	}
	if m&128 != 0 {
		state |= KbNumState
	}
	return state
}

func keyWithXTermMods(code uint16, param uint, ev *Event) ParseResult {
	key := KeyDownEvent{KeyCode: code, ControlKeyState: xtermModifiers(param)}
	if (code >= 0x20 && code < 0x7f) || code == KbGrayMinus || code == KbGrayPlus {
		key.SetText(rune(code & 0xff))
	}
	Normalize(&key)
	ev.What = EvKeyDown
	ev.KeyDown = key
	return Accepted
}

// codepointKey builds a key from a Unicode code point, as reported by the
// CSI u and FixTerm encodings
func codepointKey(cp, param uint, ev *Event) ParseResult {
	mods := xtermModifiers(param)
	var key KeyDownEvent
	switch cp {
	case '\t':
		key.KeyCode = KbTab
	case '\r', '\n':
		key.KeyCode = KbEnter
	case 0x1b:
		key.KeyCode = KbEsc
	case 0x7f, 0x08:
		key.KeyCode = KbBack
	default:
		if cp < 0x20 || cp > unicode.MaxRune || !utf8.ValidRune(rune(cp)) {
			return Rejected
		}
		r := rune(cp)
		if r >= 0xe000 && r <= 0xf8ff {
			// private use area: kitty functional keys
			return Rejected
		}
		if mods&kbModifierMask == KbShift {
			r = unicode.ToUpper(r)
		}
		key = textKey(r)
	}
	key.ControlKeyState = mods
	Normalize(&key)
	ev.What = EvKeyDown
	ev.KeyDown = key
	return Accepted
}

func parseCSIKey(la *Lookahead, ev *Event, st *InputState, depth int) ParseResult {
	csi, ok := readCSI(la)
	if !ok {
		return Rejected
	}
	switch csi.Terminator() {
	case '~':
		return parseCSITilde(&csi, ev, st)
	case 'R':
		// cursor position report
		st.GotResponse = true
		return Ignored
	case 'u':
		if csi.Omitted(0) {
			return Rejected
		}
		return codepointKey(csi.Value(0, 0), csi.Value(1, 1), ev)
	case '_':
		return parseWin32InputMode(la, &csi, ev, st, depth)
	case 'I', 'O':
		// focus in and out
		if csi.Len() == 1 && csi.Omitted(0) {
			return Ignored
		}
		return Rejected
	case '[':
		if csi.Len() == 1 && csi.Omitted(0) {
			if code, ok := linuxFKeys[byte(la.Get())]; ok {
				return keyWithXTermMods(code, 1, ev)
			}
		}
		return Rejected
	}
	code, ok := csiLetterKeys[csi.Terminator()]
	if !ok {
		return Rejected
	}
	switch {
	case csi.Len() == 1 && csi.Value(0, 1) == 1:
		return keyWithXTermMods(code, 1, ev)
	case csi.Len() == 2:
		return keyWithXTermMods(code, csi.Value(1, 1), ev)
	}
	return Rejected
}

func parseCSITilde(csi *CSIData, ev *Event, st *InputState) ParseResult {
	switch {
	case csi.Len() <= 2:
		switch n := csi.Value(0, 1); n {
		case 200:
			st.BracketedPaste = true
			return Ignored
		case 201:
			st.BracketedPaste = false
			return Ignored
		default:
			if code, ok := csiTildeKeys[n]; ok {
				return keyWithXTermMods(code, csi.Value(1, 1), ev)
			}
		}
	case csi.Len() == 3 && csi.Value(0, 0) == 27:
		// FixTerm: CSI 27 ; modifier ; code point ~
		return codepointKey(csi.Value(2, 0), csi.Value(1, 1), ev)
	}
	return Rejected
}

// parseCSIReply consumes replies to queries, which carry a private
// parameter prefix. The prefix has been read.
func parseCSIReply(la *Lookahead, st *InputState) ParseResult {
	csi, ok := readCSI(la)
	if !ok {
		return Rejected
	}
	switch csi.Terminator() {
	case 'c', 'u':
		// device attributes, keyboard protocol flags
		st.GotResponse = true
		return Ignored
	case '$':
		// mode report, CSI ? Pd ; Ps $ y
		if la.Get() == 'y' {
			return Ignored
		}
	}
	return Rejected
}

func parseSS3Key(la *Lookahead, ev *Event) ParseResult {
	param := uint(1)
	if n, ok := la.GetNum(); ok {
		param = n
	}
	k := la.Last(0)
	if k == EOF || param >= maxNum {
		return Rejected
	}
	code, ok := ss3Keys[byte(k)]
	if !ok {
		return Rejected
	}
	return keyWithXTermMods(code, param, ev)
}
