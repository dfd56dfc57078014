//go:build windows

package tvinput

import (
	"sync"
	"sync/atomic"

	"golang.org/x/sys/windows"
)

// WakeUp is a manual-reset signal that can be waited on together with
// other handles. It stays signaled until Clear is called, no matter how
// many times Signal was called.
type WakeUp struct {
	event    windows.Handle
	signaled atomic.Bool

	mu     sync.Mutex
	closed bool
}

// NewWakeUp creates the manual-reset event behind a WakeUp
func NewWakeUp() (*WakeUp, error) {
	h, err := windows.CreateEvent(nil, 1, 0, nil)
	if err != nil {
		return nil, err
	}
	return &WakeUp{event: h}, nil
}

// Signal sets the event. Safe to call from any goroutine. It does nothing
// after Close.
func (w *WakeUp) Signal() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed || w.signaled.Swap(true) {
		return nil
	}
	return windows.SetEvent(w.event)
}

// Clear resets the signal and reports whether it was set
func (w *WakeUp) Clear() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	was := w.signaled.Swap(false)
	if !w.closed {
		windows.ResetEvent(w.event)
	}
	return was
}

// Signaled reports whether Signal was called since the last Clear
func (w *WakeUp) Signaled() bool {
	return w.signaled.Load()
}

// Handle returns the event handle
func (w *WakeUp) Handle() SysHandle {
	return w.event
}

// Close closes the event handle
func (w *WakeUp) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	return windows.CloseHandle(w.event)
}
