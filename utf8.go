package tvinput

import "unicode/utf8"

// UTF8Assembler reassembles code points from bytes fed one at a time.
// Malformed input turns into utf8.RuneError, never into a panic.
type UTF8Assembler struct {
	r    rune
	need int // continuation bytes still expected
	size int // total length of the sequence being assembled
}

// Pending reports whether a multi-byte sequence is incomplete
func (a *UTF8Assembler) Pending() bool {
	return a.need > 0
}

// Reset drops any incomplete sequence
func (a *UTF8Assembler) Reset() {
	a.r, a.need, a.size = 0, 0, 0
}

// AddByte feeds b and appends any completed code points to dst. A byte
// that interrupts an incomplete sequence appends a replacement character
// and is then processed as the start of a new one.
func (a *UTF8Assembler) AddByte(b byte, dst []rune) []rune {
	if a.need > 0 {
		if b&0xC0 == 0x80 {
			a.r = a.r<<6 | rune(b&0x3F)
			a.need--
			if a.need == 0 {
				dst = append(dst, a.finish())
			}
			return dst
		}
		dst = append(dst, utf8.RuneError)
		a.Reset()
	}
	switch {
	case b < 0x80:
		return append(dst, rune(b))
	case b&0xE0 == 0xC0:
		a.r, a.need = rune(b&0x1F), 1
	case b&0xF0 == 0xE0:
		a.r, a.need = rune(b&0x0F), 2
	case b&0xF8 == 0xF0:
		a.r, a.need = rune(b&0x07), 3
	default:
		// stray continuation byte or 0xF8-0xFF
		return append(dst, utf8.RuneError)
	}
	a.size = a.need + 1
	return dst
}

// Flush appends a replacement character if a sequence was left incomplete
func (a *UTF8Assembler) Flush(dst []rune) []rune {
	if a.need > 0 {
		dst = append(dst, utf8.RuneError)
	}
	a.Reset()
	return dst
}

func (a *UTF8Assembler) finish() rune {
	r, size := a.r, a.size
	a.Reset()
	// reject overlong forms, surrogates and values past U+10FFFF
	if !utf8.ValidRune(r) || utf8.RuneLen(r) != size {
		return utf8.RuneError
	}
	return r
}
