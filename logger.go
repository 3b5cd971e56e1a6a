package softrast

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called while another goroutine is logging.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for softrast and its sub-packages.
// By default softrast produces no log output.
//
// Pass nil to restore the default silent logger.
//
// Log levels used by softrast:
//   - [slog.LevelDebug]: buffer allocation, target swaps, atlas bakes
//   - [slog.LevelInfo]: texture loads, scene setup
//   - [slog.LevelWarn]: recoverable asset problems
//
// Nothing is logged from the per-triangle or per-pixel paths.
//
// Example:
//
//	softrast.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by softrast.
// Sub-packages (shade, mesh, glyph, demo) call this to share the same
// configuration.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
