package functor

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler drops every record. Enabled reports false so callers never
// build attributes for a silent runtime.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr holds the runtime logger; render loops read it per frame.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger installs l as the logger of the geometry core, the renderer
// and the CLI. The runtime is silent until it is called; nil silences it
// again. It may be called while frames are being drawn.
//
// Log levels used by functor:
//   - [slog.LevelDebug]: GPU resource creation, buffer sizes, per-frame counters
//   - [slog.LevelInfo]: lifecycle events (device opened, develop loop started)
//   - [slog.LevelWarn]: skipped shapes, draws issued outside a render pass
//
// Example:
//
//	functor.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by functor.
// Sub-packages (geometry/, render/, model/) call this to share the same
// logger configuration.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
