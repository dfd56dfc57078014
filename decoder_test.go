package tvinput

import (
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func nextAll(d *Decoder, now time.Time) []Event {
	var events []Event
	var ev Event
	for d.Next(&ev, now) {
		events = append(events, ev)
	}
	return events
}

func TestDecoderLoneEscapeWaits(t *testing.T) {
	d := NewDecoder(100 * time.Millisecond)
	d.Feed([]byte("\x1b"))
	require.Empty(t, nextAll(d, epoch))
	deadline, ok := d.Deadline()
	require.True(t, ok)
	require.Equal(t, epoch.Add(100*time.Millisecond), deadline)
	require.False(t, d.Ready(epoch.Add(50*time.Millisecond)))
	require.True(t, d.Ready(deadline))

	events := nextAll(d, deadline)
	require.Len(t, events, 1)
	require.Equal(t, uint16(KbEsc), events[0].KeyDown.KeyCode)
	require.Zero(t, d.Buffered())
	_, ok = d.Deadline()
	require.False(t, ok)
}

func TestDecoderSequenceSplitAcrossReads(t *testing.T) {
	d := NewDecoder(0)
	require.Equal(t, DefaultEscapeTimeout, d.Timeout)
	d.Feed([]byte("\x1b[1;"))
	require.Empty(t, nextAll(d, epoch))
	d.Feed([]byte("5A"))
	require.True(t, d.Ready(epoch.Add(time.Millisecond)))
	events := nextAll(d, epoch.Add(time.Millisecond))
	require.Len(t, events, 1)
	require.Equal(t, uint16(KbCtrlUp), events[0].KeyDown.KeyCode)
}

func TestDecoderAltKey(t *testing.T) {
	d := NewDecoder(time.Second)
	d.Feed([]byte("\x1bx\x1b1"))
	events := nextAll(d, epoch)
	require.Len(t, events, 2)
	require.Equal(t, keyEv(KbAltX, KbAltShift, ""), events[0])
	require.Equal(t, keyEv(KbAlt1, KbAltShift, ""), events[1])
}

func TestDecoderAltMultibyte(t *testing.T) {
	d := NewDecoder(time.Second)
	d.Feed([]byte("\x1bé"))
	events := nextAll(d, epoch)
	require.Len(t, events, 1)
	require.Equal(t, keyEv(0x82, KbAltShift, "é"), events[0])
}

func TestDecoderDoubleEscape(t *testing.T) {
	d := NewDecoder(10 * time.Millisecond)
	d.Feed([]byte("\x1b\x1b"))
	require.Empty(t, nextAll(d, epoch))
	events := nextAll(d, epoch.Add(10*time.Millisecond))
	require.Len(t, events, 2)
	require.Equal(t, uint16(KbEsc), events[0].KeyDown.KeyCode)
	require.Equal(t, uint16(KbEsc), events[1].KeyDown.KeyCode)
}

func TestDecoderEscapeThenKeyAfterTimeout(t *testing.T) {
	d := NewDecoder(10 * time.Millisecond)
	d.Feed([]byte("\x1b"))
	require.Empty(t, nextAll(d, epoch))
	d.Feed([]byte("[A"))
	// bytes arriving in time complete the sequence
	events := nextAll(d, epoch.Add(5*time.Millisecond))
	require.Len(t, events, 1)
	require.Equal(t, uint16(KbUp), events[0].KeyDown.KeyCode)
}

func TestDecoderIncompleteUTF8(t *testing.T) {
	d := NewDecoder(10 * time.Millisecond)
	d.Feed([]byte("a\xe2\x82"))
	events := nextAll(d, epoch)
	require.Len(t, events, 1)
	require.Equal(t, 2, d.Buffered())

	events = nextAll(d, epoch.Add(20*time.Millisecond))
	require.Len(t, events, 1)
	require.Equal(t, string(utf8.RuneError), events[0].KeyDown.GetText())
	require.Zero(t, d.Buffered())
}

func TestDecoderUnknownSequence(t *testing.T) {
	d := NewDecoder(time.Second)
	d.Feed([]byte("\x1b[5yq"))
	events := nextAll(d, epoch)
	require.Len(t, events, 4)
	require.Equal(t, uint16(KbAltShift), events[0].KeyDown.ControlKeyState)
	require.Equal(t, "5", events[1].KeyDown.GetText())
	require.Equal(t, "y", events[2].KeyDown.GetText())
	require.Equal(t, "q", events[3].KeyDown.GetText())
}

func TestDecoderSkipsReplies(t *testing.T) {
	d := NewDecoder(time.Second)
	d.Feed([]byte("\x1b[?62;22c\x1b[I\x1b]11;rgb:ffff/ffff/ffff\x07\x1b_Gi=1;OK\x1b\\z"))
	events := nextAll(d, epoch)
	require.Len(t, events, 1)
	require.Equal(t, "z", events[0].KeyDown.GetText())
	require.True(t, d.State.GotResponse)
	require.Equal(t, "rgb:ffff/ffff/ffff", d.State.BackgroundColor)
}

func TestDecoderPasteAcrossReads(t *testing.T) {
	d := NewDecoder(time.Second)
	d.Feed([]byte("\x1b[200~he"))
	events := nextAll(d, epoch)
	d.Feed([]byte("y\x1b[201~!"))
	events = append(events, nextAll(d, epoch)...)
	require.Len(t, events, 4)
	for _, ev := range events[:3] {
		require.NotZero(t, ev.KeyDown.ControlKeyState&KbPaste)
	}
	require.Zero(t, events[3].KeyDown.ControlKeyState&KbPaste)
}

func TestDecoderWrappedEscapeRecordTimesOut(t *testing.T) {
	d := NewDecoder(10 * time.Millisecond)
	d.Feed([]byte(w32(0x1b, 1, 0x1b, true, 0)))
	require.Empty(t, nextAll(d, epoch))
	events := nextAll(d, epoch.Add(10*time.Millisecond))
	require.Len(t, events, 1)
	require.Equal(t, uint16(KbEsc), events[0].KeyDown.KeyCode)
	require.Zero(t, d.Buffered())
}

func TestDecoderSlowSequenceKeepsWaiting(t *testing.T) {
	d := NewDecoder(100 * time.Millisecond)
	var pasted []string
	d.State.PasteFunc = func(s string) { pasted = append(pasted, s) }

	now := epoch
	for _, part := range []string{"\x1b]52;c;aGVs", "bG8g", "d29y"} {
		d.Feed([]byte(part))
		require.Empty(t, nextAll(d, now))
		deadline, ok := d.Deadline()
		require.True(t, ok)
		require.Equal(t, now.Add(100*time.Millisecond), deadline)
		now = now.Add(80 * time.Millisecond)
	}
	d.Feed([]byte("bGQ=\a"))
	require.Empty(t, nextAll(d, now))
	require.Equal(t, []string{"hello world"}, pasted)
	require.Zero(t, d.Buffered())
}

func TestDecoderTripleEscape(t *testing.T) {
	d := NewDecoder(time.Second)
	d.Feed([]byte("\x1b\x1b\x1b[A"))
	events := nextAll(d, epoch)
	require.Len(t, events, 2)
	require.Equal(t, keyEv(KbEsc, 0, ""), events[0])
	require.Equal(t, keyEv(KbAltUp, KbAltShift, ""), events[1])
}
