//go:build windows

package tvinput

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	keyEvent              = 0x0001
	mouseEvent            = 0x0002
	windowBufferSizeEvent = 0x0004
)

type inputRecord struct {
	EventType uint16
	_         [2]byte // alignment padding
	Event     [16]byte
}

type keyEventRecord struct {
	KeyDown         int32
	RepeatCount     uint16
	VirtualKeyCode  uint16
	VirtualScanCode uint16
	UnicodeChar     uint16
	ControlKeyState uint32
}

type mouseEventRecord struct {
	X, Y            int16
	ButtonState     uint32
	ControlKeyState uint32
	EventFlags      uint32
}

var (
	modkernel32           = windows.NewLazySystemDLL("kernel32.dll")
	procReadConsoleInputW = modkernel32.NewProc("ReadConsoleInputW")
)

// ConsoleSource is an EventSource reading input records from the Windows
// console
type ConsoleSource struct {
	mu      sync.Mutex
	in      windows.Handle
	out     windows.Handle
	conin   *os.File
	mode    uint32
	state   InputState
	pending []Event
	closed  bool
}

// OpenConsole opens the console input and switches it to deliver key,
// mouse and window size records
func OpenConsole(opts Options) (*ConsoleSource, error) {
	opts.apply()
	c := &ConsoleSource{}
	in, err := windows.GetStdHandle(windows.STD_INPUT_HANDLE)
	if err != nil || windows.GetConsoleMode(in, &c.mode) != nil {
		f, err := os.OpenFile("CONIN$", os.O_RDWR, 0)
		if err != nil {
			return nil, fmt.Errorf("stdin is not a console and CONIN$ could not be opened: %w", err)
		}
		in = windows.Handle(f.Fd())
		if err := windows.GetConsoleMode(in, &c.mode); err != nil {
			f.Close()
			return nil, ErrNotTerminal
		}
		c.conin = f
	}
	c.in = in
	c.out, _ = windows.GetStdHandle(windows.STD_OUTPUT_HANDLE)

	mode := c.mode
	mode &^= windows.ENABLE_PROCESSED_INPUT | windows.ENABLE_LINE_INPUT | windows.ENABLE_ECHO_INPUT |
		windows.ENABLE_QUICK_EDIT_MODE | windows.ENABLE_VIRTUAL_TERMINAL_INPUT
	mode |= windows.ENABLE_WINDOW_INPUT | windows.ENABLE_EXTENDED_FLAGS
	if opts.Mouse {
		mode |= windows.ENABLE_MOUSE_INPUT
	}
	if err := windows.SetConsoleMode(in, mode); err != nil {
		c.closeFiles()
		return nil, err
	}
	return c, nil
}

func (c *ConsoleSource) Handle() (SysHandle, bool) {
	return c.in, true
}

func (c *ConsoleSource) HasPendingEvents() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending) > 0
}

// GetEvent reads the available input records and returns the first
// event they produce
func (c *ConsoleSource) GetEvent(ev *Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	if len(c.pending) == 0 {
		if err := c.read(); err != nil {
			logger().Warn("console read failed", "err", err)
		}
	}
	if len(c.pending) == 0 {
		return false
	}
	*ev = c.pending[0]
	c.pending = c.pending[1:]
	return true
}

func (c *ConsoleSource) read() error {
	var count uint32
	if err := windows.GetNumberOfConsoleInputEvents(c.in, &count); err != nil {
		return err
	}
	if count == 0 {
		return nil
	}
	recs := make([]inputRecord, min(count, 128))
	var n uint32
	r1, _, err := procReadConsoleInputW.Call(
		uintptr(c.in),
		uintptr(unsafe.Pointer(&recs[0])),
		uintptr(len(recs)),
		uintptr(unsafe.Pointer(&n)),
	)
	if r1 == 0 {
		return fmt.Errorf("ReadConsoleInputW: %w", err)
	}
	for _, rec := range recs[:n] {
		c.decode(rec)
	}
	return nil
}

func (c *ConsoleSource) decode(rec inputRecord) {
	var ev Event
	switch rec.EventType {
	case keyEvent:
		ke := *(*keyEventRecord)(unsafe.Pointer(&rec.Event[0]))
		kr := Win32KeyRecord{
			KeyDown:         ke.KeyDown != 0,
			RepeatCount:     ke.RepeatCount,
			VirtualKeyCode:  ke.VirtualKeyCode,
			VirtualScanCode: ke.VirtualScanCode,
			UnicodeChar:     ke.UnicodeChar,
			ControlKeyState: ke.ControlKeyState,
		}
		if DecodeWin32KeyRecord(kr, &ev, &c.state) != Accepted {
			return
		}
		for range max(kr.RepeatCount, 1) {
			c.pending = append(c.pending, ev)
		}
	case mouseEvent:
		me := *(*mouseEventRecord)(unsafe.Pointer(&rec.Event[0]))
		mr := Win32MouseRecord{
			X:               me.X,
			Y:               me.Y,
			ButtonState:     me.ButtonState,
			ControlKeyState: me.ControlKeyState,
			EventFlags:      me.EventFlags,
		}
		if DecodeWin32MouseRecord(mr, &ev, &c.state) == Accepted {
			c.pending = append(c.pending, ev)
		}
	case windowBufferSizeEvent:
		w, h := c.Size()
		screenChanged(&ev, w, h)
		c.pending = append(c.pending, ev)
	}
}

// Size returns the width and height of the console window
func (c *ConsoleSource) Size() (uint, uint) {
	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(c.out, &info); err == nil {
		return uint(info.Window.Right - info.Window.Left + 1), uint(info.Window.Bottom - info.Window.Top + 1)
	}
	return termSize(int(c.out))
}

// Close restores the console mode
func (c *ConsoleSource) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return errors.Join(windows.SetConsoleMode(c.in, c.mode), c.closeFiles())
}

func (c *ConsoleSource) closeFiles() error {
	if c.conin == nil {
		return nil
	}
	return c.conin.Close()
}
