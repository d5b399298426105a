// Package log provides structured logging for cross-validation runs.
//
// The package sets up a JSON slog handler whose records carry a stacktrace
// attribute whenever an error produced by pkg/errors is logged, so fold and
// sweep failures can be traced back to the collaborator that raised them.
package log

import (
	"fmt"
	"log/slog"
	"os"
)

// SetupLogger configures the default slog logger with a JSON handler at the
// given level. Valid levels are "debug", "info", "warn" and "error".
func SetupLogger(loglevel string) {
	ops := slog.HandlerOptions{
		Level: ToLogLevel(loglevel),
	}
	handler := slog.NewJSONHandler(os.Stdout, &ops)
	errFmtHandler := WrapByErrFmtHandler(handler)
	slog.SetDefault(slog.New(errFmtHandler))
}

// ToLogLevel converts a level name to a slog.Level. It panics on an unknown
// name since a bad level is a programming error, not a runtime condition.
func ToLogLevel(level string) slog.Level {
	switch level {
	case "info":
		return slog.LevelInfo
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		panic(fmt.Sprintf("invalid log level :%s", level))
	}
}

const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
)

// ErrAttr is a wrapper to pass err to slog.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}
