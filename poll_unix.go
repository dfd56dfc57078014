//go:build unix

package tvinput

import (
	"errors"
	"time"

	"golang.org/x/sys/unix"
)

// SysHandle is a file descriptor
type SysHandle = int

// pollHandles waits until one of fds is readable or hung up, or until
// timeout passes. A negative timeout waits forever.
func pollHandles(fds []SysHandle, timeout time.Duration) ([]PollState, error) {
	pfds := make([]unix.PollFd, len(fds))
	for i, fd := range fds {
		pfds[i] = unix.PollFd{Fd: int32(fd), Events: unix.POLLIN}
	}
	ms := -1
	if timeout >= 0 {
		// round up so a short deadline is not polled as zero over and over
		ms = int((timeout + time.Millisecond - 1) / time.Millisecond)
	}
	for {
		_, err := unix.Poll(pfds, ms)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return nil, err
		}
		break
	}
	states := make([]PollState, len(fds))
	for i, p := range pfds {
		switch {
		case p.Revents&unix.POLLIN != 0:
			states[i] = PollReady
		case p.Revents&(unix.POLLHUP|unix.POLLERR|unix.POLLNVAL) != 0:
			states[i] = PollDisconnect
		}
	}
	return states, nil
}
