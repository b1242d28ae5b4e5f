// Package logging provides the unified logging interface for the
// application's long-running components. It adapts zerolog to a small
// printf-style interface so the server does not depend on a concrete
// logging backend, which keeps tests free to inject buffers or no-ops.
package logging

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/rs/zerolog"
)

// Logger is the minimal logging surface used by the server and tooling.
type Logger interface {
	// Printf logs a formatted message at info level.
	Printf(format string, v ...any)
	// Println logs its arguments at info level, space-separated.
	Println(v ...any)
}

// zerologLogger adapts a zerolog.Logger to the Logger interface.
type zerologLogger struct {
	logger zerolog.Logger
}

// NewLogger creates a structured logger writing to w, tagged with the
// originating component name.
//
// Parameters:
//   - w: The destination writer (typically os.Stdout or a test buffer).
//   - component: The component name attached to every record.
//
// Returns:
//   - Logger: A zerolog-backed logger.
func NewLogger(w io.Writer, component string) Logger {
	return &zerologLogger{
		logger: zerolog.New(w).With().Timestamp().Str("component", component).Logger(),
	}
}

// NewZerologAdapter wraps an existing zerolog.Logger in the Logger interface.
func NewZerologAdapter(logger zerolog.Logger) Logger {
	return &zerologLogger{logger: logger}
}

// Printf logs a formatted message at info level.
func (l *zerologLogger) Printf(format string, v ...any) {
	l.logger.Info().Msg(strings.TrimRight(fmt.Sprintf(format, v...), "\n"))
}

// Println logs its arguments at info level.
func (l *zerologLogger) Println(v ...any) {
	l.logger.Info().Msg(strings.TrimRight(fmt.Sprintln(v...), "\n"))
}

// stdLoggerAdapter adapts a standard library log.Logger to the Logger
// interface for callers that already carry one.
type stdLoggerAdapter struct {
	logger *log.Logger
}

// NewStdLoggerAdapter wraps a standard library logger in the Logger interface.
func NewStdLoggerAdapter(logger *log.Logger) Logger {
	return &stdLoggerAdapter{logger: logger}
}

// Printf logs a formatted message via the wrapped standard logger.
func (l *stdLoggerAdapter) Printf(format string, v ...any) {
	l.logger.Printf(format, v...)
}

// Println logs its arguments via the wrapped standard logger.
func (l *stdLoggerAdapter) Println(v ...any) {
	l.logger.Println(v...)
}
