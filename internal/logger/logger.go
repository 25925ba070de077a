// Package logger provides the process-wide structured logger.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Log is the global logger instance.
var Log zerolog.Logger

func init() {
	Init(false)
}

// Init configures the global logger, which writes through a console writer
// to stderr. debug lowers the threshold so DEBUG and above are emitted;
// otherwise INFO and above are emitted.
func Init(debug bool) {
	var output io.Writer = zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    false,
	}

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	Log = zerolog.New(output).Level(level).With().Timestamp().Logger()
}

// Debug starts a debug-level log event.
func Debug() *zerolog.Event { return Log.Debug() }

// Info starts an info-level log event.
func Info() *zerolog.Event { return Log.Info() }

// Warn starts a warn-level log event.
func Warn() *zerolog.Event { return Log.Warn() }

// Error starts an error-level log event.
func Error() *zerolog.Event { return Log.Error() }

// WithField returns a logger enriched with one additional field, for
// components (like the audit driver) that want a sub-scoped logger instead
// of repeating the same key on every call.
func WithField(key string, value interface{}) zerolog.Logger {
	return Log.With().Interface(key, value).Logger()
}
