package tvinput

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// w32 encodes a win32-input-mode record
func w32(vk, sc, uc uint16, down bool, cs uint32) string {
	kd := 0
	if down {
		kd = 1
	}
	return fmt.Sprintf("\x1b[%d;%d;%d;%d;%d;1_", vk, sc, uc, kd, cs)
}

func TestWin32InputModeKeys(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Event
	}{
		{"letter", w32('A', 30, 'a', true, 0), keyEv('a', 0, "a")},
		{"shifted letter", w32('A', 30, 'A', true, win32Shift), keyEv('A', KbShift, "A")},
		{"ctrl letter", w32('A', 30, 1, true, win32LeftCtrl), keyEv(KbCtrlA, KbCtrlShift, "")},
		{"alt letter", w32('X', 45, 'x', true, win32LeftAlt), keyEv(KbAltX, KbAltShift, "")},
		{"up", w32(0x26, 72, 0, true, win32Enhanced), keyEv(KbUp, KbEnhanced, "")},
		{"ctrl right", w32(0x27, 77, 0, true, win32RightCtrl|win32Enhanced), keyEv(KbCtrlRight, KbCtrlShift|KbEnhanced, "")},
		{"f1", w32(0x70, 59, 0, true, 0), keyEv(KbF1, 0, "")},
		{"shift f12", w32(0x7b, 88, 0, true, win32Shift), keyEv(KbShiftF12, KbShift, "")},
		{"enter", w32(0x0d, 28, '\r', true, 0), keyEv(KbEnter, 0, "")},
		{"gray minus", w32(0x6d, 74, '-', true, win32NumLock), keyEv(KbGrayMinus, KbNumState, "-")},
		{"altgr", w32('E', 18, '€', true, win32RightAlt|win32LeftCtrl), keyEv(KbNoKey, 0, "€")},
		{"ctrl digit", w32('2', 3, 0, true, win32LeftCtrl), keyEv('2', KbCtrlShift, "")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var st InputState
			events, src := decodeAll(tt.input, &st)
			require.Zero(t, src.Len())
			require.Len(t, events, 1)
			if diff := cmp.Diff(tt.want, events[0]); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWin32InputModeIgnored(t *testing.T) {
	for name, input := range map[string]string{
		"key up":           w32('A', 30, 'a', false, 0),
		"shift alone":      w32(0x10, 42, 0, true, win32Shift),
		"ctrl alt no char": w32('Q', 16, 0, true, win32LeftCtrl|win32LeftAlt),
		"high surrogate":   w32(0, 0, 0xd83d, true, 0),
	} {
		t.Run(name, func(t *testing.T) {
			var st InputState
			require.Equal(t, Ignored, parseOne(t, input, &st))
		})
	}
}

func TestWin32InputModeSurrogatePair(t *testing.T) {
	var st InputState
	events, src := decodeAll(w32(0, 0, 0xd83d, true, 0)+w32(0, 0, 0xde00, true, 0), &st)
	require.Zero(t, src.Len())
	require.Len(t, events, 1)
	require.Equal(t, "😀", events[0].KeyDown.GetText())
	require.Zero(t, st.Surrogate)
}

func TestWin32InputModeDefaults(t *testing.T) {
	var st InputState
	var ev Event
	la := NewLookahead(NewBytesSource([]byte("\x1b[65;30;97;1_")))
	require.Equal(t, Accepted, ParseEvent(la, &ev, &st))
	require.Equal(t, "a", ev.KeyDown.GetText())
}

func TestWin32InputModeWrappedEscape(t *testing.T) {
	// ConPTY sends ESC [ A as one record per character, key ups included
	input := w32(0x1b, 1, 0x1b, true, 0) + w32(0x1b, 1, 0x1b, false, 0) +
		w32(0xdb, 26, '[', true, 0) + w32(0xdb, 26, '[', false, 0) +
		w32('A', 30, 'A', true, win32Shift) + w32('A', 30, 'A', false, win32Shift)
	var st InputState
	events, src := decodeAll(input, &st)
	require.Zero(t, src.Len())
	require.Len(t, events, 1)
	require.Equal(t, uint16(KbUp), events[0].KeyDown.KeyCode)
}

func TestWin32InputModeLoneEscape(t *testing.T) {
	var st InputState
	input := w32(0x1b, 1, 0x1b, true, 0)
	src := NewBytesSource([]byte(input))
	la := NewLookahead(src)
	var ev Event
	// more records may follow
	require.Equal(t, Rejected, ParseEvent(la, &ev, &st))
	require.Equal(t, len(input), src.Len())

	// an escape followed by an ordinary key is the Escape key
	events, src := decodeAll(input+w32('A', 30, 'a', true, 0), &st)
	require.Zero(t, src.Len())
	require.Len(t, events, 2)
	require.Equal(t, uint16(KbEsc), events[0].KeyDown.KeyCode)
	require.Equal(t, "a", events[1].KeyDown.GetText())
}

func TestDecodeWin32MouseRecord(t *testing.T) {
	var st InputState
	var ev Event
	rec := Win32MouseRecord{X: 5, Y: 7, ButtonState: win32FromLeft1stButton, ControlKeyState: win32Shift}
	require.Equal(t, Accepted, DecodeWin32MouseRecord(rec, &ev, &st))
	require.Equal(t, mouseEv(5, 7, MbLeftButton, 0, WheelNone, KbShift), ev)

	rec = Win32MouseRecord{X: 5, Y: 7, ButtonState: 120 << 16, EventFlags: win32MouseWheeled}
	require.Equal(t, Accepted, DecodeWin32MouseRecord(rec, &ev, &st))
	require.Equal(t, WheelUp, ev.Mouse.Wheel)
	require.Equal(t, uint8(MbLeftButton), ev.Mouse.Buttons)

	rec = Win32MouseRecord{X: 6, Y: 7, ButtonState: uint32(0xff88) << 16, EventFlags: win32MouseWheeled}
	DecodeWin32MouseRecord(rec, &ev, &st)
	require.Equal(t, WheelDown, ev.Mouse.Wheel)

	rec = Win32MouseRecord{X: 8, Y: 7, EventFlags: win32MouseMoved}
	DecodeWin32MouseRecord(rec, &ev, &st)
	require.Equal(t, mouseEv(8, 7, 0, MouseMoved, WheelNone, 0), ev)
	require.Equal(t, Point{8, 7}, st.LastMouse)
}
