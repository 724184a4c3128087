// Package log configures the process-wide slog handler and hands out
// module-scoped loggers. Engine types never reach for the default logger
// themselves; they receive a *slog.Logger explicitly.
package log

import (
	"log/slog"
	"os"
)

// Setup installs a text handler on the default slog logger at the given
// level. Unknown level strings fall back to info.
func Setup(logLevel string) {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: ParseLevel(logLevel),
	})))
}

// ParseLevel maps a level name to a slog.Level, defaulting to info.
func ParseLevel(logLevel string) slog.Level {
	switch logLevel {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithModule returns a logger tagged with the given module name.
func WithModule(module string) *slog.Logger {
	return slog.With("module", module)
}

// Discard returns a logger that drops everything. Used as the fallback when
// a constructor receives a nil logger.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
