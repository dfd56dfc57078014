package tvinput

import (
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/xyproto/env/v2"
)

var pkgLogger atomic.Pointer[slog.Logger]

func init() {
	pkgLogger.Store(slog.New(slog.DiscardHandler))
}

// SetLogger sets the logger used for diagnostics. A nil logger discards
// everything.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	pkgLogger.Store(l.With(slog.String("component", "tvinput")))
}

func logger() *slog.Logger {
	return pkgLogger.Load()
}

// NewDebugLogger returns a JSON logger writing to stderr. The level is
// Debug if TVINPUT_DEBUG is set and Warn otherwise.
func NewDebugLogger() *slog.Logger {
	level := slog.LevelWarn
	if env.Has("TVINPUT_DEBUG") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
