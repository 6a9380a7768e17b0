// Package logger builds the bullets loggers used by auto-close.
//
// Logs go to stderr so that stdout stays reserved for per-item JSON results.
//
//	log := logger.NewLogger("debug")
//	log.Debug("Starting operation")
//
//	silentLog := logger.NoLogger() // Suppresses all output
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sgaunet/bullets"
)

// ParseLevel maps "debug", "info", "warn" and "error" to a bullets level.
// Unknown values yield InfoLevel.
func ParseLevel(logLevel string) bullets.Level {
	switch strings.ToLower(strings.TrimSpace(logLevel)) {
	case "debug":
		return bullets.DebugLevel
	case "warn", "warning":
		return bullets.WarnLevel
	case "error":
		return bullets.ErrorLevel
	default:
		return bullets.InfoLevel
	}
}

// NewLogger creates a logger that writes to stderr at the given level.
func NewLogger(logLevel string) *bullets.Logger {
	return NewLoggerTo(os.Stderr, logLevel)
}

// NewLoggerTo creates a logger writing to w.
func NewLoggerTo(w io.Writer, logLevel string) *bullets.Logger {
	logger := bullets.New(w)
	logger.SetLevel(ParseLevel(logLevel))
	return logger
}

// NoLogger creates a logger that suppresses all output by setting the level to Fatal.
func NoLogger() *bullets.Logger {
	logger := bullets.New(io.Discard)
	logger.SetLevel(bullets.FatalLevel)
	return logger
}
