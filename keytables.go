package tvinput

// CSI n ~ sequences
var csiTildeKeys = map[uint]uint16{
	1:  KbHome,
	2:  KbIns,
	3:  KbDel,
	4:  KbEnd,
	5:  KbPgUp,
	6:  KbPgDn,
	7:  KbHome,
	8:  KbEnd,
	11: KbF1,
	12: KbF2,
	13: KbF3,
	14: KbF4,
	15: KbF5,
	17: KbF6,
	18: KbF7,
	19: KbF8,
	20: KbF9,
	21: KbF10,
	23: KbF11,
	24: KbF12,
}

// Final bytes shared by CSI and SS3 sequences. CSI R is a cursor position
// report and is handled before this table is consulted.
var csiLetterKeys = map[byte]uint16{
	'A': KbUp,
	'B': KbDown,
	'C': KbRight,
	'D': KbLeft,
	'F': KbEnd,
	'H': KbHome,
	'P': KbF1,
	'Q': KbF2,
	'R': KbF3,
	'S': KbF4,
	'Z': KbShiftTab,
}

// Final bytes of SS3 sequences, including the application keypad
var ss3Keys = map[byte]uint16{
	'A': KbUp,
	'B': KbDown,
	'C': KbRight,
	'D': KbLeft,
	'F': KbEnd,
	'H': KbHome,
	'P': KbF1,
	'Q': KbF2,
	'R': KbF3,
	'S': KbF4,
	'M': KbEnter,
	'X': '=',
	'j': '*',
	'k': KbGrayPlus,
	'l': ',',
	'm': KbGrayMinus,
	'n': '.',
	'o': '/',
	'p': '0',
	'q': '1',
	'r': '2',
	's': '3',
	't': '4',
	'u': '5',
	'v': '6',
	'w': '7',
	'x': '8',
	'y': '9',
}

// TERM=linux function keys, ESC [ [ A to ESC [ [ E
var linuxFKeys = map[byte]uint16{
	'A': KbF1,
	'B': KbF2,
	'C': KbF3,
	'D': KbF4,
	'E': KbF5,
}

var altLetters = map[byte]uint16{
	'q': KbAltQ, 'w': KbAltW, 'e': KbAltE, 'r': KbAltR, 't': KbAltT,
	'y': KbAltY, 'u': KbAltU, 'i': KbAltI, 'o': KbAltO, 'p': KbAltP,
	'a': KbAltA, 's': KbAltS, 'd': KbAltD, 'f': KbAltF, 'g': KbAltG,
	'h': KbAltH, 'j': KbAltJ, 'k': KbAltK, 'l': KbAltL, 'z': KbAltZ,
	'x': KbAltX, 'c': KbAltC, 'v': KbAltV, 'b': KbAltB, 'n': KbAltN,
	'm': KbAltM,
}

// Windows virtual key codes that map to a fixed key
var vkKeys = map[uint16]uint16{
	0x08: KbBack,
	0x09: KbTab,
	0x0d: KbEnter,
	0x1b: KbEsc,
	0x21: KbPgUp,
	0x22: KbPgDn,
	0x23: KbEnd,
	0x24: KbHome,
	0x25: KbLeft,
	0x26: KbUp,
	0x27: KbRight,
	0x28: KbDown,
	0x2d: KbIns,
	0x2e: KbDel,
	0x6b: KbGrayPlus,
	0x6d: KbGrayMinus,
	0x70: KbF1,
	0x71: KbF2,
	0x72: KbF3,
	0x73: KbF4,
	0x74: KbF5,
	0x75: KbF6,
	0x76: KbF7,
	0x77: KbF8,
	0x78: KbF9,
	0x79: KbF10,
	0x7a: KbF11,
	0x7b: KbF12,
}

// Virtual keys that only change the modifier state
var vkModifiers = map[uint16]bool{
	0x10: true, // shift
	0x11: true, // control
	0x12: true, // menu
	0x14: true, // caps lock
	0x5b: true, // left windows
	0x5c: true, // right windows
	0x90: true, // num lock
	0x91: true, // scroll lock
	0xa0: true, 0xa1: true, 0xa2: true, 0xa3: true, 0xa4: true, 0xa5: true,
}

// isCharacterVK reports whether vk normally produces text
func isCharacterVK(vk uint16) bool {
	switch {
	case vk >= '0' && vk <= '9', vk >= 'A' && vk <= 'Z':
		return true
	case vk >= 0xba && vk <= 0xc0, vk >= 0xdb && vk <= 0xdf, vk == 0xe2:
		// VK_OEM_*
		return true
	}
	return false
}
