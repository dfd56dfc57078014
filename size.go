package tvinput

import (
	"github.com/xyproto/env/v2"
	"golang.org/x/term"
)

// termSize returns the width and height of the terminal on fd. If fd is
// not a terminal, COLS, COLUMNS and LINES are consulted.
func termSize(fd int) (uint, uint) {
	if term.IsTerminal(fd) {
		width, height, err := term.GetSize(fd)
		if err == nil && width > 0 && height > 0 {
			return uint(width), uint(height)
		}
	}
	var w uint = 80
	if cols := env.Int("COLS", 0); cols > 0 {
		w = uint(cols)
	} else if cols := env.Int("COLUMNS", 0); cols > 0 {
		w = uint(cols)
	}
	return w, uint(env.Int("LINES", 25))
}

// screenChanged fills ev with a screen size change
func screenChanged(ev *Event, width, height uint) {
	*ev = Event{
		What:    EvCommand,
		Command: CommandEvent{Command: CmScreenChanged, Width: int(width), Height: int(height)},
	}
}
