package repaint

import (
	"log/slog"
	"sync/atomic"
)

var discard = slog.New(slog.DiscardHandler)

var logger atomic.Pointer[slog.Logger]

func init() {
	logger.Store(discard)
}

// SetLogger sets the logger used by repaint and its sub-packages. Nothing
// is logged by default; nil restores that.
//
// Frame statistics are logged at Debug, skipped primitives and clamped
// bounds at Warn.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = discard
	}
	logger.Store(l)
}

// Logger returns the logger set by SetLogger.
func Logger() *slog.Logger {
	return logger.Load()
}
