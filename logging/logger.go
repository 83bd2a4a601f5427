// Package logging holds the *slog.Logger used for tablescan debug output.
//
// Nothing is logged unless a logger is installed:
//
//	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
package logging

import (
	"log/slog"
	"sync/atomic"
)

var logger atomic.Pointer[slog.Logger]

var discard = slog.New(slog.DiscardHandler)

// SetLogger installs sl as the package logger. Passing nil disables logging.
// SetLogger is safe for concurrent use.
func SetLogger(sl *slog.Logger) {
	if sl == nil {
		sl = discard
	}
	logger.Store(sl)
}

// Logger returns the installed logger, or a discarding logger if none was set.
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return discard
}

// Component returns the package logger tagged with a component attribute.
func Component(name string) *slog.Logger {
	return Logger().With(slog.String("component", name))
}
