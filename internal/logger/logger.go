// Package logger provides the structured logger used by the slice pipeline
// and the command line tool.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger tags every event with the component that emitted it.
type Logger struct {
	logger zerolog.Logger
}

// New returns a JSON logger writing to w at the given level.
func New(w io.Writer, level zerolog.Level) *Logger {
	l := zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Logger()

	return &Logger{logger: l}
}

// NewConsole returns a human readable logger on stdout.
func NewConsole(level zerolog.Level) *Logger {
	return New(zerolog.ConsoleWriter{Out: os.Stdout}, level)
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{logger: zerolog.Nop()}
}

// LevelFor maps the verbose switch of the configuration to a level.
func LevelFor(verbose bool) zerolog.Level {
	if verbose {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}

func (l *Logger) Info(component, message string, fields map[string]interface{}) {
	event := l.logger.Info().Str("component", component)
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	event.Msg(message)
}

func (l *Logger) Warn(component, message string, fields map[string]interface{}) {
	event := l.logger.Warn().Str("component", component)
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	event.Msg(message)
}

func (l *Logger) Debug(component, message string, fields map[string]interface{}) {
	event := l.logger.Debug().Str("component", component)
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	event.Msg(message)
}

func (l *Logger) Error(component string, err error, fields map[string]interface{}) {
	event := l.logger.Error().Str("component", component).Err(err)
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	event.Msg("operation failed")
}
