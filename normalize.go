package tvinput

type modClass uint8

const (
	modNone modClass = iota
	modShift
	modCtrl
	modAlt
)

func (m modClass) bit() uint16 {
	switch m {
	case modShift:
		return KbShift
	case modCtrl:
		return KbCtrlShift
	case modAlt:
		return KbAltShift
	}
	return 0
}

type keyMod struct {
	base uint16
	mod  modClass
}

var (
	// (base key, dominant modifier) -> canonical key
	canonicalKeys = map[keyMod]uint16{}
	// canonical key -> (base key, modifier it implies)
	baseKeys = map[uint16]keyMod{}
)

func addCanonical(base uint16, mod modClass, code uint16) {
	km := keyMod{base, mod}
	canonicalKeys[km] = code
	if _, ok := baseKeys[code]; !ok {
		baseKeys[code] = km
	}
}

func init() {
	for _, e := range []struct {
		base, ctrl, alt, shift uint16
	}{
		{KbUp, KbCtrlUp, KbAltUp, 0},
		{KbDown, KbCtrlDown, KbAltDown, 0},
		{KbLeft, KbCtrlLeft, KbAltLeft, 0},
		{KbRight, KbCtrlRight, KbAltRight, 0},
		{KbHome, KbCtrlHome, KbAltHome, 0},
		{KbEnd, KbCtrlEnd, KbAltEnd, 0},
		{KbPgUp, KbCtrlPgUp, KbAltPgUp, 0},
		{KbPgDn, KbCtrlPgDn, KbAltPgDn, 0},
		{KbIns, KbCtrlIns, KbAltIns, KbShiftIns},
		{KbDel, KbCtrlDel, KbAltDel, KbShiftDel},
		{KbBack, KbCtrlBack, KbAltBack, 0},
		{KbTab, KbCtrlTab, KbAltTab, KbShiftTab},
		{KbEnter, KbCtrlEnter, 0, 0},
		{' ', 0, KbAltSpace, 0},
		{'-', 0, KbAltMinus, 0},
		{'=', 0, KbAltEqual, 0},
		{KbF11, KbCtrlF11, KbAltF11, KbShiftF11},
		{KbF12, KbCtrlF12, KbAltF12, KbShiftF12},
	} {
		if e.ctrl != 0 {
			addCanonical(e.base, modCtrl, e.ctrl)
		}
		if e.alt != 0 {
			addCanonical(e.base, modAlt, e.alt)
		}
		if e.shift != 0 {
			addCanonical(e.base, modShift, e.shift)
		}
	}
	for i := range uint16(10) {
		f := KbF1 + i<<8
		addCanonical(f, modShift, KbShiftF1+i<<8)
		addCanonical(f, modCtrl, KbCtrlF1+i<<8)
		addCanonical(f, modAlt, KbAltF1+i<<8)
		// Alt+1 .. Alt+9, Alt+0
		addCanonical('0'+(i+1)%10, modAlt, KbAlt1+i<<8)
	}
	// lower case first, so that the reverse table prefers it
	for c := byte('a'); c <= 'z'; c++ {
		addCanonical(uint16(c), modCtrl, uint16(KbCtrlA+c-'a'))
		addCanonical(uint16(c), modAlt, altLetters[c])
	}
	for c := byte('A'); c <= 'Z'; c++ {
		addCanonical(uint16(c), modCtrl, uint16(KbCtrlA+c-'A'))
		addCanonical(uint16(c), modAlt, altLetters[c-'A'+'a'])
	}
}

// Normalize rewrites k into its canonical form. The dominant modifier
// (Alt over Ctrl over Shift) selects the canonical key code for the
// unmodified key, modifier bits implied by the key code are merged into
// the control key state, and the text is dropped if the resulting key is
// not printable. Normalizing twice is the same as normalizing once.
func Normalize(k *KeyDownEvent) {
	code := k.KeyCode
	if km, ok := baseKeys[code]; ok {
		code = km.base
		k.ControlKeyState |= km.mod.bit()
	}
	mods := k.ControlKeyState
	dominant := modNone
	switch {
	case mods&KbAltShift != 0:
		dominant = modAlt
	case mods&KbCtrlShift != 0:
		dominant = modCtrl
	case mods&KbShift != 0:
		dominant = modShift
	}
	if c, ok := canonicalKeys[keyMod{code, dominant}]; ok {
		k.KeyCode = c
	}
	if !isPrintableKey(k) {
		k.Text = [maxCharSize]byte{}
		k.TextLength = 0
	}
}

func isPrintableKey(k *KeyDownEvent) bool {
	if k.KeyCode == KbNoKey {
		return k.TextLength > 0
	}
	c := k.CharCode()
	return c >= 0x20 && c != 0x7f
}
