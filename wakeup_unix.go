//go:build unix

package tvinput

import (
	"errors"
	"sync"
	"sync/atomic"

	"golang.org/x/sys/unix"
)

// WakeUp is a manual-reset signal that can be waited on together with
// other handles. It stays signaled until Clear is called, no matter how
// many times Signal was called.
type WakeUp struct {
	r, w     int
	signaled atomic.Bool

	// mu keeps the descriptors from being closed under a write or drain
	mu     sync.Mutex
	closed bool
}

// NewWakeUp creates the self-pipe behind a WakeUp
func NewWakeUp() (*WakeUp, error) {
	var p [2]int
	if err := unix.Pipe(p[:]); err != nil {
		return nil, err
	}
	for _, fd := range p {
		unix.CloseOnExec(fd)
		if err := unix.SetNonblock(fd, true); err != nil {
			unix.Close(p[0])
			unix.Close(p[1])
			return nil, err
		}
	}
	return &WakeUp{r: p[0], w: p[1]}, nil
}

// Signal makes the handle readable. Safe to call from any goroutine and
// from a signal-handling goroutine. It does nothing after Close.
func (w *WakeUp) Signal() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed || w.signaled.Swap(true) {
		return nil
	}
	return w.writeByte()
}

// Clear resets the signal and reports whether it was set
func (w *WakeUp) Clear() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	was := w.signaled.Swap(false)
	if !w.closed {
		w.drain()
	}
	return was
}

// Signaled reports whether Signal was called since the last Clear
func (w *WakeUp) Signaled() bool {
	return w.signaled.Load()
}

// Handle returns the read end of the pipe
func (w *WakeUp) Handle() SysHandle {
	return w.r
}

// Close closes both ends of the pipe
func (w *WakeUp) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	return errors.Join(unix.Close(w.r), unix.Close(w.w))
}

func (w *WakeUp) writeByte() error {
	for {
		_, err := unix.Write(w.w, []byte{1})
		switch {
		case errors.Is(err, unix.EINTR):
			continue
		case errors.Is(err, unix.EAGAIN):
			// the pipe is full, so it is readable already
			return nil
		}
		return err
	}
}

func (w *WakeUp) drain() {
	var buf [64]byte
	for {
		n, err := unix.Read(w.r, buf[:])
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if n <= 0 || err != nil {
			return
		}
	}
}
