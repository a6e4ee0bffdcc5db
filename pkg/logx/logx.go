// Package logx is a thin facade over zerolog. It keeps the call sites of the
// rest of the codebase decoupled from the logging backend and provides the
// structured-fields helpers the services use.
package logx

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Fields holds structured log fields.
type Fields map[string]any

var defaultLogger zerolog.Logger

func init() {
	defaultLogger = newLogger(os.Stdout, os.Getenv("LOG_FORMAT"))
	SetLevelFromString(os.Getenv("LOG_LEVEL"))
}

func newLogger(w io.Writer, format string) zerolog.Logger {
	if format != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).With().Timestamp().Logger()
}

// SetOutput redirects the default logger to w. Mainly used by tests.
func SetOutput(w io.Writer) {
	defaultLogger = newLogger(w, os.Getenv("LOG_FORMAT"))
}

// SetLevelFromString sets the global level from its textual name.
// Unknown names fall back to info.
func SetLevelFromString(level string) {
	switch level {
	case "trace":
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// Debug logs a debug level message.
func Debug(msg string) { defaultLogger.Debug().Msg(msg) }

// Info logs an info level message.
func Info(msg string) { defaultLogger.Info().Msg(msg) }

// Warn logs a warning level message.
func Warn(msg string) { defaultLogger.Warn().Msg(msg) }

// Error logs an error level message.
func Error(msg string) { defaultLogger.Error().Msg(msg) }

// Fatal logs a fatal level message and exits.
func Fatal(msg string) { defaultLogger.Fatal().Msg(msg) }

// Debugf logs a formatted debug message.
func Debugf(format string, args ...any) { defaultLogger.Debug().Msg(fmt.Sprintf(format, args...)) }

// Infof logs a formatted info message.
func Infof(format string, args ...any) { defaultLogger.Info().Msg(fmt.Sprintf(format, args...)) }

// Warnf logs a formatted warning message.
func Warnf(format string, args ...any) { defaultLogger.Warn().Msg(fmt.Sprintf(format, args...)) }

// Errorf logs a formatted error message.
func Errorf(format string, args ...any) { defaultLogger.Error().Msg(fmt.Sprintf(format, args...)) }

// Fatalf logs a formatted fatal message and exits.
func Fatalf(format string, args ...any) { defaultLogger.Fatal().Msg(fmt.Sprintf(format, args...)) }

// Entry is a logger with bound structured fields.
type Entry struct {
	zl zerolog.Logger
}

// WithFields binds structured fields to a new log entry.
func WithFields(fields Fields) *Entry {
	ctx := defaultLogger.With()
	for k, v := range fields {
		ctx = ctx.Interface(k, v)
	}
	return &Entry{zl: ctx.Logger()}
}

// WithError binds an error to a new log entry.
func WithError(err error) *Entry {
	return &Entry{zl: defaultLogger.With().Err(err).Logger()}
}

// Debug logs a debug level message with the bound fields.
func (e *Entry) Debug(msg string) { e.zl.Debug().Msg(msg) }

// Info logs an info level message with the bound fields.
func (e *Entry) Info(msg string) { e.zl.Info().Msg(msg) }

// Warn logs a warning level message with the bound fields.
func (e *Entry) Warn(msg string) { e.zl.Warn().Msg(msg) }

// Error logs an error level message with the bound fields.
func (e *Entry) Error(msg string) { e.zl.Error().Msg(msg) }

// Debugf logs a formatted debug message with the bound fields.
func (e *Entry) Debugf(format string, args ...any) { e.zl.Debug().Msg(fmt.Sprintf(format, args...)) }

// Infof logs a formatted info message with the bound fields.
func (e *Entry) Infof(format string, args ...any) { e.zl.Info().Msg(fmt.Sprintf(format, args...)) }

// Warnf logs a formatted warning message with the bound fields.
func (e *Entry) Warnf(format string, args ...any) { e.zl.Warn().Msg(fmt.Sprintf(format, args...)) }

// Errorf logs a formatted error message with the bound fields.
func (e *Entry) Errorf(format string, args ...any) { e.zl.Error().Msg(fmt.Sprintf(format, args...)) }
