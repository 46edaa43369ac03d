package internal

import (
	"log"
	"os"
	"strings"
)

// Level orders log verbosity from quietest to noisiest
type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
	LevelTrace
)

var levelNames = map[string]Level{
	"ERROR": LevelError,
	"WARN":  LevelWarn,
	"INFO":  LevelInfo,
	"DEBUG": LevelDebug,
	"TRACE": LevelTrace,
}

// ParseLevel maps a LOG_LEVEL string onto a Level. Unrecognized or empty
// input falls back to Info rather than erroring; logging config should
// never stop the engine from starting.
func ParseLevel(s string) Level {
	if lvl, ok := levelNames[strings.ToUpper(strings.TrimSpace(s))]; ok {
		return lvl
	}
	return LevelInfo
}

// Logger is a leveled front over the stdlib logger. Messages above the
// configured verbosity are dropped before formatting.
type Logger struct {
	level Level
}

// NewLogger returns a logger fixed at the given level
func NewLogger(level Level) *Logger {
	return &Logger{level: level}
}

// NewDefaultLogger reads the level from the LOG_LEVEL environment variable
func NewDefaultLogger() *Logger {
	return NewLogger(ParseLevel(os.Getenv("LOG_LEVEL")))
}

func (l *Logger) emit(at Level, tag, format string, args ...interface{}) {
	if l.level >= at {
		log.Printf(tag+format, args...)
	}
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.emit(LevelError, "[ERROR] ", format, args...)
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.emit(LevelWarn, "[WARN] ", format, args...)
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.emit(LevelInfo, "[INFO] ", format, args...)
}

func (l *Logger) Debug(format string, args ...interface{}) {
	l.emit(LevelDebug, "[DEBUG] ", format, args...)
}

func (l *Logger) Trace(format string, args ...interface{}) {
	l.emit(LevelTrace, "[TRACE] ", format, args...)
}

// Level returns the configured verbosity
func (l *Logger) Level() Level {
	return l.level
}

// DefaultLogger is the process-wide logger shared by the service wiring
var DefaultLogger = NewDefaultLogger()
