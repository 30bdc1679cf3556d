package core

import (
	"io"
	"log/slog"

	"github.com/pterm/pterm"
)

// DefaultLogger prints a pterm prefix line for humans and mirrors the record
// (with its attributes) through slog. Both go to the same writer, which the
// CLI points at stderr.
type DefaultLogger struct {
	level   LogLevel
	slogLvl *slog.LevelVar
	handler *slog.Logger
	output  io.Writer
}

func NewDefaultLogger(output io.Writer, level LogLevel) *DefaultLogger {
	lvl := new(slog.LevelVar)
	lvl.Set(slogLevel(level))
	handler := slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{
		Level: lvl,
	}))

	return &DefaultLogger{
		level:   level,
		slogLvl: lvl,
		handler: handler,
		output:  output,
	}
}

func slogLevel(level LogLevel) slog.Level {
	switch level {
	case LevelTrace, LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *DefaultLogger) Trace(msg string, args ...any) {
	if l.level <= LevelTrace {
		pterm.Debug.WithWriter(l.output).Println("TRACE: " + msg)
		l.handler.Debug(msg, args...)
	}
}

func (l *DefaultLogger) Debug(msg string, args ...any) {
	if l.level <= LevelDebug {
		pterm.Debug.WithWriter(l.output).Println(msg)
		l.handler.Debug(msg, args...)
	}
}

func (l *DefaultLogger) Info(msg string, args ...any) {
	if l.level <= LevelInfo {
		pterm.Info.WithWriter(l.output).Println(msg)
		l.handler.Info(msg, args...)
	}
}

func (l *DefaultLogger) Warn(msg string, args ...any) {
	if l.level <= LevelWarn {
		pterm.Warning.WithWriter(l.output).Println(msg)
		l.handler.Warn(msg, args...)
	}
}

func (l *DefaultLogger) Error(msg string, args ...any) {
	if l.level <= LevelError {
		pterm.Error.WithWriter(l.output).Println(msg)
		l.handler.Error(msg, args...)
	}
}

func (l *DefaultLogger) With(args ...any) Logger {
	return &DefaultLogger{
		level:   l.level,
		slogLvl: l.slogLvl,
		handler: l.handler.With(args...),
		output:  l.output,
	}
}

// SetLevel also moves the shared slog level, so loggers derived through With
// follow the handler threshold.
func (l *DefaultLogger) SetLevel(level LogLevel) {
	l.level = level
	l.slogLvl.Set(slogLevel(level))
}
