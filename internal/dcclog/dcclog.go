// Package dcclog provides the structured logger shared across dccrx's
// command-line tools and background services.
package dcclog

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Logger is the structured logger interface the rest of dccrx depends on,
// so tests can inject a discard logger without configuring charmbracelet/log.
type Logger interface {
	Debug(msg interface{}, keyvals ...interface{})
	Info(msg interface{}, keyvals ...interface{})
	Warn(msg interface{}, keyvals ...interface{})
	Error(msg interface{}, keyvals ...interface{})
}

// New returns a logger writing to stderr with the given minimum level name
// ("debug", "info", "warn", "error"; anything else defaults to "info").
func New(levelName string) *log.Logger {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.000",
	})
	l.SetLevel(parseLevel(levelName))
	return l
}

func parseLevel(name string) log.Level {
	switch name {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// Discard is a Logger that drops everything, for tests and library callers
// that don't want dccrx's decoder logging its own activity.
var Discard Logger = log.NewWithOptions(io.Discard, log.Options{})
