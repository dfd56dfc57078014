//go:build unix

package tvinput

import (
	"bytes"
	"os"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/creack/pty"
	"github.com/stretchr/testify/require"
)

// syncBuffer collects what the source writes to the terminal
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func openPTY(t *testing.T) (ptmx, tty *os.File) {
	t.Helper()
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("cannot open pty: %v", err)
	}
	t.Cleanup(func() {
		tty.Close()
		ptmx.Close()
	})
	return ptmx, tty
}

// waitEvent waits until the multiplexer yields an event
func waitEvent(t *testing.T, m *Multiplexer) Event {
	t.Helper()
	var ev Event
	deadline := time.Now().Add(5 * time.Second)
	for !m.GetEvent(&ev) {
		require.True(t, time.Now().Before(deadline), "no event")
		require.NoError(t, m.WaitForEvents(100*time.Millisecond))
	}
	return ev
}

func testOptions() Options {
	return Options{
		EscapeTimeout:     50 * time.Millisecond,
		Mouse:             true,
		BracketedPaste:    true,
		ProbeCapabilities: false,
	}
}

func TestTerminalSourceKeys(t *testing.T) {
	withoutTMUX(t)
	ptmx, tty := openPTY(t)
	out := &syncBuffer{}
	src, err := NewTerminalSource(tty, out, testOptions())
	require.NoError(t, err)
	defer src.Close()
	require.Contains(t, out.String(), enableBracketedPaste)

	m := newMux(t)
	m.AddSource(src)

	_, err = ptmx.Write([]byte("\x1b[1;5Aq\x1b[<0;3;4M"))
	require.NoError(t, err)

	ev := waitEvent(t, m)
	require.Equal(t, uint16(KbCtrlUp), ev.KeyDown.KeyCode)
	ev = waitEvent(t, m)
	require.Equal(t, "q", ev.KeyDown.GetText())
	ev = waitEvent(t, m)
	require.Equal(t, EvMouse, ev.What)
	require.Equal(t, int32(2), ev.Mouse.X)
	require.Equal(t, int32(3), ev.Mouse.Y)
}

func TestTerminalSourceLoneEscape(t *testing.T) {
	ptmx, tty := openPTY(t)
	src, err := NewTerminalSource(tty, &syncBuffer{}, testOptions())
	require.NoError(t, err)
	defer src.Close()

	m := newMux(t)
	m.AddSource(src)

	start := time.Now()
	_, err = ptmx.Write([]byte("\x1b"))
	require.NoError(t, err)
	ev := waitEvent(t, m)
	require.Equal(t, uint16(KbEsc), ev.KeyDown.KeyCode)
	require.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestTerminalSourceClipboard(t *testing.T) {
	withoutTMUX(t)
	ptmx, tty := openPTY(t)
	out := &syncBuffer{}
	src, err := NewTerminalSource(tty, out, testOptions())
	require.NoError(t, err)
	defer src.Close()

	require.NoError(t, src.SetClipboardText("hi"))
	require.Contains(t, out.String(), "\x1b]52;c;aGk=\a")
	require.False(t, src.RequestClipboardText(func(string) {}))

	m := newMux(t)
	m.AddSource(src)

	// the capability reply and a key after it
	_, err = ptmx.Write([]byte("\x1bP1+r4d73=1\x1b\\x"))
	require.NoError(t, err)
	ev := waitEvent(t, m)
	require.Equal(t, "x", ev.KeyDown.GetText())
	require.True(t, src.State().HasOSC52)

	got := make(chan string, 1)
	require.True(t, src.RequestClipboardText(func(s string) { got <- s }))
	require.Contains(t, out.String(), OSC52Query())

	_, err = ptmx.Write([]byte("\x1b]52;c;aGVsbG8=\x07y"))
	require.NoError(t, err)
	ev = waitEvent(t, m)
	require.Equal(t, "y", ev.KeyDown.GetText())
	select {
	case s := <-got:
		require.Equal(t, "hello", s)
	default:
		t.Fatal("clipboard callback not called")
	}
}

func TestTerminalSourceRestoresMode(t *testing.T) {
	_, tty := openPTY(t)
	out := &syncBuffer{}
	src, err := NewTerminalSource(tty, out, testOptions())
	require.NoError(t, err)
	require.NoError(t, src.Close())
	require.NoError(t, src.Close())
	require.Contains(t, out.String(), disableBracketedPaste)
	require.Contains(t, out.String(), disableMouse)

	var ev Event
	require.False(t, src.GetEvent(&ev))
}

func TestTerminalSourceNotATerminal(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()
	_, err = NewTerminalSource(r, w, testOptions())
	require.ErrorIs(t, err, ErrNotTerminal)
}

func TestOpenTerminalByPath(t *testing.T) {
	ptmx, tty := openPTY(t)
	opts := testOptions()
	opts.TTY = tty.Name()
	src, err := OpenTerminal(opts)
	require.NoError(t, err)
	defer src.Close()

	m := newMux(t)
	m.AddSource(src)
	_, err = ptmx.Write([]byte("\x1bOQ"))
	require.NoError(t, err)
	ev := waitEvent(t, m)
	require.Equal(t, uint16(KbF2), ev.KeyDown.KeyCode)
}

func TestResizeSource(t *testing.T) {
	ptmx, tty := openPTY(t)
	require.NoError(t, pty.Setsize(ptmx, &pty.Winsize{Rows: 30, Cols: 100}))

	r, err := NewResizeSource(int(tty.Fd()))
	require.NoError(t, err)
	defer r.Close()

	m := newMux(t)
	m.AddSource(r)
	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGWINCH))

	ev := waitEvent(t, m)
	require.Equal(t, EvCommand, ev.What)
	require.Equal(t, CommandEvent{Command: CmScreenChanged, Width: 100, Height: 30}, ev.Command)

	// one signal, one event
	require.NoError(t, m.WaitForEvents(20*time.Millisecond))
	require.False(t, m.GetEvent(&ev))
}
