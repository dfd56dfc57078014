package tvinput

import "math"

// maxLookahead bounds the bytes a single decode attempt may buffer
const maxLookahead = 31

// Lookahead wraps a ByteSource and remembers every byte read since the
// last Commit, so that a failed parse can be replayed with Reject.
type Lookahead struct {
	src  ByteSource
	keys [maxLookahead]int
	size int
	eof  bool
}

// NewLookahead wraps src
func NewLookahead(src ByteSource) *Lookahead {
	return &Lookahead{src: src}
}

// Get reads and buffers the next byte. EOF is buffered too, so that Last
// can report it, but it is never pushed back.
func (la *Lookahead) Get() int {
	if la.size == maxLookahead {
		if debugChecks {
			panic("tvinput: lookahead buffer overflow")
		}
		return EOF
	}
	k := la.src.Get()
	if k == EOF {
		la.eof = true
	}
	la.keys[la.size] = k
	la.size++
	return k
}

// getUnbuffered reads past the replay buffer. Callers that use it are
// responsible for pushing the bytes back themselves.
func (la *Lookahead) getUnbuffered() int {
	k := la.src.Get()
	if k == EOF {
		la.eof = true
	}
	return k
}

// Last returns the i-th most recently buffered byte, or EOF
func (la *Lookahead) Last(i int) int {
	if i < la.size {
		return la.keys[la.size-1-i]
	}
	return EOF
}

// Unget pushes back the most recently buffered byte
func (la *Lookahead) Unget() {
	if la.size == 0 {
		return
	}
	la.size--
	if k := la.keys[la.size]; k != EOF {
		la.src.Unget(k)
	}
}

// Reject pushes back everything buffered since the last Commit
func (la *Lookahead) Reject() {
	for la.size > 0 {
		la.Unget()
	}
}

// Commit forgets the buffered bytes; they can no longer be replayed
func (la *Lookahead) Commit() {
	la.size = 0
}

// Len returns the number of buffered bytes, EOF markers included
func (la *Lookahead) Len() int {
	return la.size
}

// HitEOF reports whether the source ran dry at any point
func (la *Lookahead) HitEOF() bool {
	return la.eof
}

// maxNum is what GetNum returns for a number that does not fit in 32 bits
const maxNum = math.MaxUint32

// GetNum reads a run of decimal digits. The byte that ends the run is
// consumed too and can be inspected with Last(0). Numbers of maxNum and
// above read as maxNum.
func (la *Lookahead) GetNum() (uint, bool) {
	var num uint
	digits := 0
	for {
		k := la.Get()
		if k < '0' || k > '9' {
			break
		}
		d := uint(k - '0')
		if num > (maxNum-d)/10 {
			num = maxNum
		} else {
			num = 10*num + d
		}
		digits++
	}
	return num, digits > 0
}

// GetInt is like GetNum but accepts a leading minus sign
func (la *Lookahead) GetInt() (int, bool) {
	sign := 1
	if la.Get() == '-' {
		sign = -1
	} else {
		la.Unget()
	}
	n, ok := la.GetNum()
	if !ok {
		if sign < 0 {
			// the sign becomes the terminator
			la.Unget()
		}
		return 0, false
	}
	return sign * int(n), true
}

// ReadExact consumes s if the input starts with it. Otherwise nothing is
// consumed.
func (la *Lookahead) ReadExact(s string) bool {
	for i := range len(s) {
		if la.Get() != int(s[i]) {
			for range i + 1 {
				la.Unget()
			}
			return false
		}
	}
	return true
}
