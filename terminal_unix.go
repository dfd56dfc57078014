//go:build unix

package tvinput

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	pterm "github.com/pkg/term"
	"github.com/xyproto/env/v2"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

const maxReadSize = 4096

// TerminalSource is an EventSource reading escape sequences from a
// terminal in raw mode
type TerminalSource struct {
	mu     sync.Mutex
	fd     int
	ownFD  bool
	out    io.Writer
	tty    *pterm.Term
	saved  *term.State
	opts   Options
	dec    *Decoder
	closed bool
}

// OpenTerminal opens the terminal device named by opts.TTY, or the
// controlling terminal, puts it in raw mode and turns on the input
// modes in opts.
func OpenTerminal(opts Options) (*TerminalSource, error) {
	opts.apply()
	path := opts.TTY
	if path == "" {
		path = getTTYPath()
	}
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NOCTTY|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if !isatty.IsTerminal(uintptr(fd)) {
		unix.Close(fd)
		return nil, fmt.Errorf("%s: %w", path, ErrNotTerminal)
	}
	t, err := pterm.Open(path, pterm.RawMode)
	if err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("raw mode on %s: %w", path, err)
	}
	s := &TerminalSource{
		fd:    fd,
		ownFD: true,
		out:   t,
		tty:   t,
		opts:  opts,
		dec:   NewDecoder(opts.escapeTimeout()),
	}
	logger().Debug("terminal opened", "path", path, "multiplexed", Multiplexed)
	if err := s.setup(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewTerminalSource reads from in, which must be a terminal, and writes
// mode changes and queries to out. in is put in raw mode until Close.
func NewTerminalSource(in *os.File, out io.Writer, opts Options) (*TerminalSource, error) {
	opts.apply()
	fd := int(in.Fd())
	if !isatty.IsTerminal(in.Fd()) {
		return nil, ErrNotTerminal
	}
	saved, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	s := &TerminalSource{
		fd:    fd,
		out:   out,
		saved: saved,
		opts:  opts,
		dec:   NewDecoder(opts.escapeTimeout()),
	}
	if err := s.setup(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *TerminalSource) setup() error {
	if err := s.write(setupSequence(s.opts)); err != nil {
		return errors.Join(err, s.Close())
	}
	return nil
}

// getTTYPath returns the terminal device to use when none is configured
func getTTYPath() string {
	if tmuxTTY := env.Str("TMUX_PANE_TTY"); tmuxTTY != "" {
		return tmuxTTY
	}
	if sshTTY := env.Str("SSH_TTY"); sshTTY != "" {
		return sshTTY
	}
	defaultTTY := "/dev/tty"
	if _, err := os.Stat(defaultTTY); err == nil {
		return defaultTTY
	}
	return "/dev/stdin"
}

// Handle returns the input file descriptor
func (s *TerminalSource) Handle() (SysHandle, bool) {
	return s.fd, true
}

// Deadline returns when a held back ESC will be reported on its own
func (s *TerminalSource) Deadline() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dec.Deadline()
}

// HasPendingEvents reports whether events can be produced without
// reading more input
func (s *TerminalSource) HasPendingEvents() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dec.Ready(time.Now())
}

// GetEvent reads what input is available and decodes one event
func (s *TerminalSource) GetEvent(ev *Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	if err := s.fill(); err != nil {
		logger().Warn("terminal read failed", "err", err)
	}
	return s.dec.Next(ev, time.Now())
}

// fill reads the bytes that can be read without blocking
func (s *TerminalSource) fill() error {
	n, err := s.available()
	if err != nil || n <= 0 {
		return err
	}
	buf := make([]byte, min(n, maxReadSize))
	for {
		n, err = unix.Read(s.fd, buf)
		if !errors.Is(err, unix.EINTR) {
			break
		}
	}
	if n > 0 {
		s.dec.Feed(buf[:n])
	}
	return err
}

// available returns how many bytes a read may take without blocking. A
// terminal opened by path asks the driver for the queue length. For other
// terminals a zero-timeout poll tells whether input is waiting, and a raw
// mode read then returns what is there.
func (s *TerminalSource) available() (int, error) {
	if s.tty != nil {
		return s.tty.Available()
	}
	states, err := pollHandles([]SysHandle{s.fd}, 0)
	if err != nil || states[0] != PollReady {
		return 0, err
	}
	return maxReadSize, nil
}

// Feed hands bytes to the decoder as if they had been read from the
// terminal
func (s *TerminalSource) Feed(p []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dec.Feed(p)
}

// State returns a copy of the decoder state
func (s *TerminalSource) State() InputState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.dec.State
	st.PasteFunc = nil
	return st
}

// SetClipboardText copies text to the system clipboard through OSC 52
func (s *TerminalSource) SetClipboardText(text string) error {
	return s.write(OSC52Set(text))
}

// RequestClipboardText asks the terminal for the clipboard contents.
// fn is called from GetEvent once the reply is decoded. It returns false
// if the terminal has not shown OSC 52 support.
func (s *TerminalSource) RequestClipboardText(fn func(text string)) bool {
	s.mu.Lock()
	if !s.dec.State.HasOSC52 {
		s.mu.Unlock()
		return false
	}
	s.dec.State.PasteFunc = fn
	s.mu.Unlock()
	if err := s.write(OSC52Query()); err != nil {
		logger().Warn("clipboard query failed", "err", err)
		return false
	}
	return true
}

// Size returns the terminal width and height
func (s *TerminalSource) Size() (uint, uint) {
	return termSize(s.fd)
}

func (s *TerminalSource) write(seq string) error {
	if seq == "" || s.out == nil {
		return nil
	}
	_, err := io.WriteString(s.out, seq)
	return err
}

// Close turns off the input modes and restores the terminal
func (s *TerminalSource) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	errs := []error{s.write(restoreSequence(s.opts))}
	if s.saved != nil {
		errs = append(errs, term.Restore(s.fd, s.saved))
	}
	if s.tty != nil {
		errs = append(errs, s.tty.Restore(), s.tty.Close())
	}
	if s.ownFD {
		errs = append(errs, unix.Close(s.fd))
	}
	return errors.Join(errs...)
}
