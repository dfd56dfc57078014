package tvinput

import (
	"errors"
	"strings"

	"github.com/xyproto/env/v2"
)

const (
	enableMouse           = "\033[?1000h\033[?1002h\033[?1006h"
	disableMouse          = "\033[?1006l\033[?1002l\033[?1000l"
	enableBracketedPaste  = "\033[?2004h"
	disableBracketedPaste = "\033[?2004l"
	enableWin32Input      = "\033[?9001h"
	disableWin32Input     = "\033[?9001l"
	enableFocusEvents     = "\033[?1004h"
	disableFocusEvents    = "\033[?1004l"
	queryOSC52Support     = "\033P+q4d73\033\\" // XTGETTCAP Ms
	queryDeviceAttributes = "\033[c"
)

// ErrNotTerminal is returned when the input is not a terminal
var ErrNotTerminal = errors.New("tvinput: not a terminal")

// UnderTMUX reports whether the process is running inside a TMUX session.
var UnderTMUX = env.Has("TMUX")

// UnderScreen reports whether the process is running inside a GNU Screen session.
var UnderScreen = env.Has("STY")

// UnderZellij reports whether the process is running inside a Zellij session.
var UnderZellij = env.Has("ZELLIJ")

// Multiplexed is true when running inside any known terminal multiplexer.
var Multiplexed = UnderTMUX || UnderScreen || UnderZellij

// setupSequence returns what to write to the terminal to turn on the
// input modes in opts
func setupSequence(opts Options) string {
	var sb strings.Builder
	if opts.Mouse {
		sb.WriteString(enableMouse)
	}
	if opts.BracketedPaste {
		sb.WriteString(enableBracketedPaste)
	}
	if opts.Win32InputMode {
		sb.WriteString(enableWin32Input)
	}
	sb.WriteString(enableFocusEvents)
	if opts.ProbeCapabilities {
		// multiplexers swallow XTGETTCAP replies
		if !Multiplexed {
			sb.WriteString(queryOSC52Support)
		}
		sb.WriteString(queryDeviceAttributes)
	}
	return sb.String()
}

// restoreSequence undoes setupSequence
func restoreSequence(opts Options) string {
	var sb strings.Builder
	sb.WriteString(disableFocusEvents)
	if opts.Win32InputMode {
		sb.WriteString(disableWin32Input)
	}
	if opts.BracketedPaste {
		sb.WriteString(disableBracketedPaste)
	}
	if opts.Mouse {
		sb.WriteString(disableMouse)
	}
	return sb.String()
}
