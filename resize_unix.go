//go:build unix

package tvinput

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// ResizeSource is an EventSource that reports CmScreenChanged when the
// process receives SIGWINCH
type ResizeSource struct {
	fd   int
	wake *WakeUp
	sigs chan os.Signal
	done chan struct{}
	once sync.Once
}

// NewResizeSource watches for size changes of the terminal on fd
func NewResizeSource(fd int) (*ResizeSource, error) {
	w, err := NewWakeUp()
	if err != nil {
		return nil, err
	}
	r := &ResizeSource{
		fd:   fd,
		wake: w,
		sigs: make(chan os.Signal, 1),
		done: make(chan struct{}),
	}
	SetupResizeHandler(r.sigs)
	go r.run()
	return r, nil
}

// SetupResizeHandler sets up a terminal resize signal handler
func SetupResizeHandler(sigChan chan os.Signal) {
	signal.Notify(sigChan, syscall.SIGWINCH)
}

func (r *ResizeSource) run() {
	for {
		select {
		case <-r.sigs:
			if err := r.wake.Signal(); err != nil {
				logger().Warn("could not signal resize", "err", err)
			}
		case <-r.done:
			return
		}
	}
}

func (r *ResizeSource) Handle() (SysHandle, bool) {
	return r.wake.Handle(), true
}

func (r *ResizeSource) HasPendingEvents() bool {
	return r.wake.Signaled()
}

// GetEvent reports the new size. Several signals arriving before the
// event is taken produce one event.
func (r *ResizeSource) GetEvent(ev *Event) bool {
	if !r.wake.Clear() {
		return false
	}
	w, h := termSize(r.fd)
	logger().Debug("terminal resized", "width", w, "height", h)
	screenChanged(ev, w, h)
	return true
}

// Close stops watching for SIGWINCH
func (r *ResizeSource) Close() error {
	r.once.Do(func() {
		signal.Stop(r.sigs)
		close(r.done)
	})
	return r.wake.Close()
}
