package tvinput

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/xyproto/env/v2"
	"gopkg.in/yaml.v3"
)

// Options configures a terminal or console source
type Options struct {
	// TTY is the terminal device to open. Empty means autodetect.
	TTY string `yaml:"tty"`
	// EscapeTimeout is how long a lone ESC waits for the rest of a sequence
	EscapeTimeout time.Duration `yaml:"escape_timeout"`
	// Mouse enables mouse reporting
	Mouse bool `yaml:"mouse"`
	// BracketedPaste enables bracketed paste mode
	BracketedPaste bool `yaml:"bracketed_paste"`
	// Win32InputMode asks ConPTY to report keys as win32-input-mode records
	Win32InputMode bool `yaml:"win32_input_mode"`
	// ProbeCapabilities sends the OSC 52 and device attribute queries
	ProbeCapabilities bool `yaml:"probe_capabilities"`

	Logger *slog.Logger `yaml:"-"`
}

// DefaultOptions returns the options from the environment:
//
//	TVINPUT_TTY             device to open
//	TVINPUT_ESCAPE_TIMEOUT  escape timeout in milliseconds
//	TVINPUT_NO_MOUSE        disable mouse reporting
//	TVINPUT_NO_PASTE        disable bracketed paste
//	TVINPUT_WIN32_INPUT     enable win32-input-mode
//	TVINPUT_NO_PROBE        do not query terminal capabilities
func DefaultOptions() Options {
	return Options{
		TTY:               env.Str("TVINPUT_TTY"),
		EscapeTimeout:     time.Duration(env.Int("TVINPUT_ESCAPE_TIMEOUT", int(DefaultEscapeTimeout/time.Millisecond))) * time.Millisecond,
		Mouse:             !env.Has("TVINPUT_NO_MOUSE"),
		BracketedPaste:    !env.Has("TVINPUT_NO_PASTE"),
		Win32InputMode:    env.Has("TVINPUT_WIN32_INPUT"),
		ProbeCapabilities: !env.Has("TVINPUT_NO_PROBE"),
	}
}

// LoadOptions reads a YAML file on top of DefaultOptions
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, err
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("parse %s: %w", path, err)
	}
	return opts, nil
}

func (o Options) escapeTimeout() time.Duration {
	if o.EscapeTimeout <= 0 {
		return DefaultEscapeTimeout
	}
	return o.EscapeTimeout
}

func (o Options) apply() {
	if o.Logger != nil {
		SetLogger(o.Logger)
	}
}
