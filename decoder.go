package tvinput

import (
	"time"
	"unicode/utf8"
)

// DefaultEscapeTimeout is how long a lone ESC waits for the rest of a
// sequence before it is reported as the Escape key
const DefaultEscapeTimeout = 400 * time.Millisecond

// Decoder turns a stream of terminal bytes into events. It sits on top of
// ParseEvent and resolves what the parser leaves open: an ESC that may
// start a sequence, sequences split across reads, and an unrecognized
// sequence after ESC, which is read as Alt plus the next key.
type Decoder struct {
	State   InputState
	Timeout time.Duration

	buf      []byte
	deadline time.Time
	stalled  bool
}

// NewDecoder returns a decoder that waits up to timeout for the rest of
// an incomplete sequence
func NewDecoder(timeout time.Duration) *Decoder {
	if timeout <= 0 {
		timeout = DefaultEscapeTimeout
	}
	return &Decoder{Timeout: timeout}
}

// Feed appends input bytes. New input restarts the timeout of an
// incomplete sequence.
func (d *Decoder) Feed(p []byte) {
	if len(p) == 0 {
		return
	}
	d.buf = append(d.buf, p...)
	d.stalled = false
	d.deadline = time.Time{}
}

// Buffered returns the number of bytes not yet decoded
func (d *Decoder) Buffered() int {
	return len(d.buf)
}

// Deadline returns when an incomplete sequence will be given up on
func (d *Decoder) Deadline() (time.Time, bool) {
	if !d.stalled {
		return time.Time{}, false
	}
	return d.deadline, true
}

// Ready reports whether Next may produce an event at time now
func (d *Decoder) Ready(now time.Time) bool {
	if len(d.buf) == 0 {
		return false
	}
	return !d.stalled || !now.Before(d.deadline)
}

// Next decodes the next event. It returns false when the buffered bytes
// hold no complete event yet.
func (d *Decoder) Next(ev *Event, now time.Time) bool {
	for len(d.buf) > 0 {
		src := NewBytesSource(d.buf)
		la := NewLookahead(src)
		switch ParseEvent(la, ev, &d.State) {
		case Accepted:
			d.consume(len(d.buf) - src.Len())
			return true
		case Ignored:
			d.consume(len(d.buf) - src.Len())
			continue
		}
		if la.HitEOF() && d.wait(now) {
			return false
		}
		deadline := d.deadline
		n, ok := d.fallback(ev, now)
		if n == 0 {
			return false
		}
		d.consume(n)
		if len(d.buf) > 0 {
			// what follows the given up bytes has waited long enough too
			d.deadline = deadline
		}
		if ok {
			return true
		}
	}
	return false
}

// wait starts or checks the timeout for an incomplete sequence. It
// returns true while the sequence may still be completed.
func (d *Decoder) wait(now time.Time) bool {
	if d.deadline.IsZero() {
		d.deadline = now.Add(d.Timeout)
	}
	if now.Before(d.deadline) {
		d.stalled = true
		return true
	}
	return false
}

// fallback interprets the head of the buffer after ParseEvent rejected it.
// It returns how many bytes to consume and whether ev was filled.
func (d *Decoder) fallback(ev *Event, now time.Time) (int, bool) {
	*ev = Event{}
	if d.buf[0] != '\x1b' {
		// a multi-byte character cut short
		d.emitKey(ev, textKey(utf8.RuneError))
		return len(d.buf), true
	}
	if len(d.buf) == 1 || d.buf[1] == '\x1b' {
		d.emitKey(ev, KeyDownEvent{KeyCode: KbEsc})
		return 1, true
	}
	if d.buf[1] == '[' {
		// a complete sequence that only failed while looking further
		// ahead, like a wrapped ESC record with nothing after it
		src := NewBytesSource(d.buf)
		la := NewLookahead(src)
		la.Get()
		if res := parseEscapeSeq(la, ev, &d.State, maxEscapeDepth); res != Rejected {
			finishParse(la, res, ev, &d.State)
			return len(d.buf) - src.Len(), res == Accepted
		}
		*ev = Event{}
	}
	src := NewBytesSource(d.buf[1:])
	la := NewLookahead(src)
	if parsePlainKey(la, la.Get(), ev) != Accepted {
		if la.HitEOF() && d.wait(now) {
			return 0, false
		}
		d.emitKey(ev, KeyDownEvent{KeyCode: KbEsc})
		return 1, true
	}
	n := len(d.buf) - src.Len()
	logger().Debug("escape sequence not recognized, reading as Alt+key", "seq", string(d.buf[:n]))
	key := ev.KeyDown
	key.ControlKeyState |= KbAltShift
	d.emitKey(ev, key)
	return n, true
}

func (d *Decoder) emitKey(ev *Event, key KeyDownEvent) {
	Normalize(&key)
	if d.State.BracketedPaste {
		key.ControlKeyState |= KbPaste
	}
	ev.What = EvKeyDown
	ev.KeyDown = key
}

func (d *Decoder) consume(n int) {
	d.buf = append(d.buf[:0], d.buf[n:]...)
	d.deadline = time.Time{}
	d.stalled = false
}
