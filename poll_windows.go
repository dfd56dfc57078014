//go:build windows

package tvinput

import (
	"fmt"
	"time"

	"golang.org/x/sys/windows"
)

// SysHandle is a waitable object handle
type SysHandle = windows.Handle

// pollHandles waits until one of handles is signaled, or until timeout
// passes. A negative timeout waits forever. Only the first signaled
// handle is reported, the others are picked up by the next wait.
func pollHandles(handles []SysHandle, timeout time.Duration) ([]PollState, error) {
	states := make([]PollState, len(handles))
	if len(handles) == 0 {
		if timeout > 0 {
			time.Sleep(timeout)
		}
		return states, nil
	}
	ms := uint32(windows.INFINITE)
	if timeout >= 0 {
		ms = uint32((timeout + time.Millisecond - 1) / time.Millisecond)
	}
	event, err := windows.WaitForMultipleObjects(handles, false, ms)
	switch {
	case event == uint32(windows.WAIT_TIMEOUT):
		return states, nil
	case event < windows.WAIT_OBJECT_0+uint32(len(handles)):
		states[event-windows.WAIT_OBJECT_0] = PollReady
		return states, nil
	case event >= windows.WAIT_ABANDONED && event < windows.WAIT_ABANDONED+uint32(len(handles)):
		states[event-windows.WAIT_ABANDONED] = PollDisconnect
		return states, nil
	}
	if err == nil {
		err = fmt.Errorf("unexpected wait result %#x", event)
	}
	return nil, err
}
