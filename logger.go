package sortreel

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// discard drops every record. Enabled reports false, so callers skip
// attribute formatting altogether.
type discard struct{}

func (discard) Enabled(context.Context, slog.Level) bool  { return false }
func (discard) Handle(context.Context, slog.Record) error { return nil }
func (d discard) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discard) WithGroup(string) slog.Handler           { return d }

var silent = slog.New(discard{})

// active holds the logger shared by every package in the module.
var active atomic.Pointer[slog.Logger]

func init() { active.Store(silent) }

// SetLogger installs l as the logger for sortreel and its sub-packages.
// Nothing is logged until SetLogger is called; nil restores that state.
// It may be called while renders are running.
//
// Levels:
//   - [slog.LevelDebug]: per-run details such as encoder arguments
//   - [slog.LevelInfo]: render start and finish
//   - [slog.LevelWarn]: encoder stderr and cleanup failures
//
// The CLI installs a text handler on stderr:
//
//	sortreel.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	active.Store(l)
}

// Logger returns the installed logger.
func Logger() *slog.Logger {
	return active.Load()
}

// Component returns the installed logger tagged with a component attribute.
// The result reflects the logger at call time, so callers should not keep it
// across a SetLogger.
func Component(name string) *slog.Logger {
	return active.Load().With("component", name)
}
