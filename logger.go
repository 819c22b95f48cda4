package invcolors

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// discard drops every record. Enabled is false, so callers never build the
// attributes of a record nobody reads.
type discard struct{}

func (discard) Enabled(context.Context, slog.Level) bool  { return false }
func (discard) Handle(context.Context, slog.Record) error { return nil }
func (discard) WithAttrs([]slog.Attr) slog.Handler        { return discard{} }
func (discard) WithGroup(string) slog.Handler             { return discard{} }

var silent = slog.New(discard{})

// current holds the logger installed with SetLogger; nil means silent.
var current atomic.Pointer[slog.Logger]

// SetLogger routes InvColors diagnostics, including those of the settings
// and softhost packages, to l. Nothing is logged until it is called, and
// SetLogger(nil) silences the module again. It may be called while
// bindings are drawing.
//
// Records carry tag=InvColors and the bound package. Levels:
//   - [slog.LevelDebug]: skipped excluded packages, settings that could not
//     be read and fell back to the defaults
//   - [slog.LevelInfo]: colors loaded for a package, hooks installed, the
//     first few filtered frames
//   - [slog.LevelWarn]: hooks that could not be installed, layers that
//     failed to save or restore, settings writes that failed
//
// To see them on stderr:
//
//	invcolors.SetLogger(slog.New(slog.NewTextHandler(os.Stderr,
//		&slog.HandlerOptions{Level: slog.LevelDebug})))
func SetLogger(l *slog.Logger) {
	current.Store(l)
}

// Logger returns the logger set with SetLogger, or a silent one.
// A Channel built with a nil logger asks for it on every record.
func Logger() *slog.Logger {
	if l := current.Load(); l != nil {
		return l
	}
	return silent
}
