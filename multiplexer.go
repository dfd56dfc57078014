package tvinput

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"
)

// ErrClosed is returned when using a closed multiplexer or source
var ErrClosed = errors.New("tvinput: closed")

// PollState is the readiness of one source after a wait
type PollState int

const (
	PollNothing PollState = iota
	PollReady
	PollDisconnect
)

func (p PollState) String() string {
	switch p {
	case PollReady:
		return "ready"
	case PollDisconnect:
		return "disconnect"
	}
	return "nothing"
}

// EventSource is something the multiplexer can wait on and take events from.
//
// Handle returns the OS handle that becomes readable or signaled when
// input arrives, and false if the source has none and is only asked via
// HasPendingEvents. GetEvent returns false when no event could be
// produced after all.
type EventSource interface {
	Handle() (SysHandle, bool)
	HasPendingEvents() bool
	GetEvent(ev *Event) bool
}

// Deadliner is implemented by sources that need to be polled again at a
// certain time even if no input arrives, such as a decoder holding a lone
// ESC.
type Deadliner interface {
	Deadline() (time.Time, bool)
}

// Closer is implemented by sources with resources to release when the
// multiplexer is closed
type Closer interface {
	Close() error
}

// Multiplexer waits on any number of event sources and hands out their
// events one at a time, in the order sources became ready.
type Multiplexer struct {
	mu      sync.Mutex
	sources []EventSource
	ready   []EventSource
	wake    *WakeUp
	closed  bool
}

// NewMultiplexer returns a multiplexer with only its wake-up source
func NewMultiplexer() (*Multiplexer, error) {
	w, err := NewWakeUp()
	if err != nil {
		return nil, err
	}
	m := &Multiplexer{wake: w}
	m.sources = append(m.sources, &wakeSource{w})
	return m, nil
}

// AddSource starts waiting on src
func (m *Multiplexer) AddSource(src EventSource) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if slices.Contains(m.sources, src) {
		return
	}
	m.sources = append(m.sources, src)
}

// RemoveSource stops waiting on src. Ready events it had not yet handed
// out are dropped.
func (m *Multiplexer) RemoveSource(src EventSource) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sources = slices.DeleteFunc(m.sources, func(s EventSource) bool { return s == src })
	m.ready = slices.DeleteFunc(m.ready, func(s EventSource) bool { return s == src })
}

// Sources returns the number of sources, counting the wake-up source
func (m *Multiplexer) Sources() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sources)
}

// WaitForEvents blocks until a source has input, the timeout expires or
// InterruptEventWait is called. A negative timeout waits forever. It
// returns right away if a previous wait left ready sources behind.
// Sources that hang up are removed and closed, and the wait goes on with
// what is left of the timeout.
func (m *Multiplexer) WaitForEvents(timeout time.Duration) error {
	var end time.Time
	if timeout >= 0 {
		end = time.Now().Add(timeout)
	}
	for {
		m.mu.Lock()
		if m.closed {
			m.mu.Unlock()
			return ErrClosed
		}
		if len(m.ready) > 0 {
			m.mu.Unlock()
			return nil
		}
		sources := slices.Clone(m.sources)
		m.mu.Unlock()

		now := time.Now()
		remaining := time.Duration(-1)
		if !end.IsZero() {
			remaining = max(end.Sub(now), 0)
		}
		ready, gone, err := pollSources(sources, remaining, now)
		if err != nil {
			return err
		}
		for _, src := range gone {
			m.dropSource(src)
		}

		m.mu.Lock()
		for _, src := range ready {
			if slices.Contains(m.sources, src) {
				m.ready = append(m.ready, src)
			}
		}
		found := len(m.ready) > 0
		m.mu.Unlock()
		if found || len(gone) == 0 || (!end.IsZero() && !time.Now().Before(end)) {
			return nil
		}
	}
}

// pollSources waits once on sources and sorts them into those with
// events and those that hung up
func pollSources(sources []EventSource, timeout time.Duration, now time.Time) (ready, gone []EventSource, err error) {
	var (
		handles []SysHandle
		owners  []EventSource
	)
	for _, src := range sources {
		if src.HasPendingEvents() {
			ready = append(ready, src)
			continue
		}
		if d, ok := src.(Deadliner); ok {
			if t, ok := d.Deadline(); ok {
				timeout = clampTimeout(timeout, t.Sub(now))
			}
		}
		if h, ok := src.Handle(); ok {
			handles = append(handles, h)
			owners = append(owners, src)
		}
	}
	if len(ready) > 0 {
		return ready, nil, nil
	}

	states, err := pollHandles(handles, timeout)
	if err != nil {
		return nil, nil, err
	}
	for i, st := range states {
		switch st {
		case PollReady:
			ready = append(ready, owners[i])
		case PollDisconnect:
			gone = append(gone, owners[i])
		}
	}
	// deadlines may have passed while waiting
	for _, src := range sources {
		if _, ok := src.(Deadliner); ok && !slices.Contains(ready, src) && src.HasPendingEvents() {
			ready = append(ready, src)
		}
	}
	return ready, gone, nil
}

// dropSource removes a source that hung up and releases it
func (m *Multiplexer) dropSource(src EventSource) {
	logger().Debug("event source disconnected")
	m.RemoveSource(src)
	if c, ok := src.(Closer); ok {
		if err := c.Close(); err != nil {
			logger().Warn("closing disconnected source failed", "err", err)
		}
	}
}

// WaitForEventsContext is WaitForEvents that also returns when ctx is done
func (m *Multiplexer) WaitForEventsContext(ctx context.Context, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	stop := context.AfterFunc(ctx, m.InterruptEventWait)
	defer stop()
	if err := m.WaitForEvents(timeout); err != nil {
		return err
	}
	return ctx.Err()
}

// GetEvent takes the next event from the ready sources. It returns false
// when none of them produced one, and the caller should wait again.
func (m *Multiplexer) GetEvent(ev *Event) bool {
	for {
		m.mu.Lock()
		if len(m.ready) == 0 {
			m.mu.Unlock()
			return false
		}
		src := m.ready[0]
		m.ready = m.ready[1:]
		m.mu.Unlock()

		*ev = Event{}
		if src.GetEvent(ev) {
			// a source may hold more than one event
			if src.HasPendingEvents() {
				m.mu.Lock()
				if slices.Contains(m.sources, src) {
					m.ready = append(m.ready, src)
				}
				m.mu.Unlock()
			}
			return true
		}
	}
}

// InterruptEventWait makes a current or the next WaitForEvents return. It
// may be called from any goroutine.
func (m *Multiplexer) InterruptEventWait() {
	if err := m.wake.Signal(); err != nil {
		logger().Warn("could not signal wake-up", "err", err)
	}
}

// Close closes the wake-up primitive and every source implementing Closer
func (m *Multiplexer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true
	var errs []error
	for _, src := range m.sources {
		if c, ok := src.(Closer); ok {
			errs = append(errs, c.Close())
		}
	}
	m.sources = nil
	m.ready = nil
	return errors.Join(errs...)
}

func clampTimeout(timeout, d time.Duration) time.Duration {
	if d < 0 {
		d = 0
	}
	if timeout < 0 || d < timeout {
		return d
	}
	return timeout
}

// wakeSource puts a WakeUp into the multiplexer. It never produces events;
// becoming ready is enough to end the wait.
type wakeSource struct {
	w *WakeUp
}

func (s *wakeSource) Handle() (SysHandle, bool) {
	return s.w.Handle(), true
}

func (s *wakeSource) HasPendingEvents() bool {
	return false
}

func (s *wakeSource) GetEvent(*Event) bool {
	s.w.Clear()
	return false
}

func (s *wakeSource) Close() error {
	return s.w.Close()
}
