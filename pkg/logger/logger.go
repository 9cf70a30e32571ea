// Package logger provides a simple leveled logging interface and implementation
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Logger defines the logging interface
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})
	Info(v ...interface{})
	Infof(format string, v ...interface{})
	Warn(v ...interface{})
	Warnf(format string, v ...interface{})
	Error(v ...interface{})
	Errorf(format string, v ...interface{})
	Fatal(v ...interface{})
	Fatalf(format string, v ...interface{})
}

// Level represents logging levels
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	// LevelOff discards everything except Fatal.
	LevelOff
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "off"
	}
}

// logger implements the Logger interface
type logger struct {
	level   Level
	loggers map[Level]*log.Logger
	mu      sync.RWMutex
}

// New creates a logger writing to stdout/stderr at the level named by LOG_LEVEL.
func New() Logger {
	return NewWithLevel(ParseLevel(os.Getenv("LOG_LEVEL")), os.Stdout, os.Stderr)
}

// NewWithLevel creates a logger writing debug to warn messages to out and
// errors to errOut.
func NewWithLevel(level Level, out, errOut io.Writer) Logger {
	return &logger{
		level: level,
		loggers: map[Level]*log.Logger{
			LevelDebug: log.New(out, "[DEBUG] ", log.LstdFlags|log.Lshortfile),
			LevelInfo:  log.New(out, "[INFO] ", log.LstdFlags),
			LevelWarn:  log.New(out, "[WARN] ", log.LstdFlags),
			LevelError: log.New(errOut, "[ERROR] ", log.LstdFlags|log.Lshortfile),
		},
	}
}

// Nop returns a logger that discards all output. Library code defaults to it.
func Nop() Logger {
	return NewWithLevel(LevelOff, io.Discard, io.Discard)
}

// ParseLevel converts a string log level to Level; unknown values map to info.
func ParseLevel(levelStr string) Level {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "off", "none":
		return LevelOff
	default:
		return LevelInfo
	}
}

// IsKnownLevel reports whether levelStr names a level ParseLevel understands.
func IsKnownLevel(levelStr string) bool {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "", "debug", "info", "warn", "warning", "error", "off", "none":
		return true
	}
	return false
}

// shouldLog checks if a message should be logged at given level
func (l *logger) shouldLog(level Level) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return level >= l.level && l.level != LevelOff
}

// output logs a message at the specified level
func (l *logger) output(level Level, v ...interface{}) {
	if !l.shouldLog(level) {
		return
	}

	l.mu.RLock()
	logger := l.loggers[level]
	l.mu.RUnlock()

	logger.Output(3, fmt.Sprint(v...))
}

// outputf logs a formatted message at the specified level
func (l *logger) outputf(level Level, format string, v ...interface{}) {
	if !l.shouldLog(level) {
		return
	}

	l.mu.RLock()
	logger := l.loggers[level]
	l.mu.RUnlock()

	logger.Output(3, fmt.Sprintf(format, v...))
}

func (l *logger) Debug(v ...interface{}) {
	l.output(LevelDebug, v...)
}

func (l *logger) Debugf(format string, v ...interface{}) {
	l.outputf(LevelDebug, format, v...)
}

func (l *logger) Info(v ...interface{}) {
	l.output(LevelInfo, v...)
}

func (l *logger) Infof(format string, v ...interface{}) {
	l.outputf(LevelInfo, format, v...)
}

func (l *logger) Warn(v ...interface{}) {
	l.output(LevelWarn, v...)
}

func (l *logger) Warnf(format string, v ...interface{}) {
	l.outputf(LevelWarn, format, v...)
}

func (l *logger) Error(v ...interface{}) {
	l.output(LevelError, v...)
}

func (l *logger) Errorf(format string, v ...interface{}) {
	l.outputf(LevelError, format, v...)
}

// Fatal logs an error message and exits
func (l *logger) Fatal(v ...interface{}) {
	l.loggers[LevelError].Output(2, fmt.Sprint(v...))
	os.Exit(1)
}

// Fatalf logs a formatted error message and exits
func (l *logger) Fatalf(format string, v ...interface{}) {
	l.loggers[LevelError].Output(2, fmt.Sprintf(format, v...))
	os.Exit(1)
}
