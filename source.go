package tvinput

// EOF is returned by ByteSource.Get when no byte is currently available
const EOF = -1

// ByteSource is a pull-style byte reader with pushback.
//
// Get returns the next byte (0-255) or EOF. Unget pushes a byte back so
// that the next Get returns it. Sources used with ParseEvent must accept
// as many Unget calls as there were Get calls during one decode attempt.
type ByteSource interface {
	Get() int
	Unget(k int)
}

// BytesSource reads from a byte slice
type BytesSource struct {
	data []byte
	pos  int
}

// NewBytesSource returns a source that yields the bytes of data
func NewBytesSource(data []byte) *BytesSource {
	return &BytesSource{data: data}
}

// Get returns the next byte, or EOF at the end of the data
func (s *BytesSource) Get() int {
	if s.pos >= len(s.data) {
		return EOF
	}
	k := s.data[s.pos]
	s.pos++
	return int(k)
}

// Unget steps back one byte. The pushed byte must be the one previously read.
func (s *BytesSource) Unget(k int) {
	if s.pos == 0 {
		panic("tvinput: Unget with nothing read")
	}
	s.pos--
}

// Len returns the number of bytes not yet read
func (s *BytesSource) Len() int {
	return len(s.data) - s.pos
}

// Rest returns the unread bytes
func (s *BytesSource) Rest() []byte {
	return s.data[s.pos:]
}
