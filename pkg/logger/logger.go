// Package logger provides a structured zerolog logger for toolbox.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// ParseLevel maps a config level name onto a zerolog level.
// Supported levels: debug, info, warn, error. Anything else is info.
func ParseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Init creates and returns a zerolog.Logger writing to stderr at the given level.
// Reports go to stdout, so logs must never share it.
func Init(level string) zerolog.Logger {
	return New(os.Stderr, level)
}

// New is Init with an explicit destination.
func New(out io.Writer, level string) zerolog.Logger {
	return zerolog.New(
		zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
			NoColor:    out != os.Stderr,
		},
	).Level(ParseLevel(level)).With().Timestamp().Logger()
}
