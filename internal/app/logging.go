// Package app runs the terminal editor: it owns the event loop, maps keys to
// engine operations and reports results on the status line.
package app

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"
	"time"
)

// LogLevel is the severity of a log line.
type LogLevel int

// Log levels, lowest first.
const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l LogLevel) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLogLevel maps a level name to a LogLevel, ignoring case.
// "warning" is accepted for warn. Anything unrecognised is info.
func ParseLogLevel(s string) LogLevel {
	s = strings.ToUpper(s)
	if s == "WARNING" {
		return LogLevelWarn
	}
	if i := slices.Index(levelNames[:], s); i >= 0 {
		return LogLevel(i)
	}
	return LogLevelInfo
}

// Logger writes leveled lines of the form
//
//	2006-01-02T15:04:05.000 [LEVEL] prefix: message {k=v, ...}
//
// Loggers derived with WithField share the parent's writer and lock.
type Logger struct {
	mu       *sync.Mutex
	level    LogLevel
	output   io.Writer
	prefix   string
	fields   map[string]any
	disabled bool
}

// LoggerConfig configures a Logger.
type LoggerConfig struct {
	Level LogLevel
	// Output defaults to os.Stderr.
	Output io.Writer
	Prefix string
}

// DefaultLoggerConfig logs info and above to stderr.
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{Level: LogLevelInfo, Output: os.Stderr, Prefix: "ropepad"}
}

// NewLogger creates a logger from cfg.
func NewLogger(cfg LoggerConfig) *Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	return &Logger{mu: new(sync.Mutex), level: cfg.Level, output: out, prefix: cfg.Prefix}
}

// WithField returns a child logger carrying key=value.
func (l *Logger) WithField(key string, value any) *Logger {
	return l.WithFields(map[string]any{key: value})
}

// WithFields returns a child logger carrying fields in addition to the
// parent's. The parent is not changed.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	child := *l
	child.fields = maps.Clone(l.fields)
	if child.fields == nil {
		child.fields = make(map[string]any, len(fields))
	}
	maps.Copy(child.fields, fields)
	return &child
}

// WithComponent is shorthand for WithField("component", name).
func (l *Logger) WithComponent(name string) *Logger {
	return l.WithField("component", name)
}

func (l *Logger) Debug(msg string, args ...any) { l.log(LogLevelDebug, msg, args) }
func (l *Logger) Info(msg string, args ...any)  { l.log(LogLevelInfo, msg, args) }
func (l *Logger) Warn(msg string, args ...any)  { l.log(LogLevelWarn, msg, args) }
func (l *Logger) Error(msg string, args ...any) { l.log(LogLevelError, msg, args) }

func (l *Logger) log(level LogLevel, msg string, args []any) {
	if l.disabled || level < l.level {
		return
	}
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}

	var b strings.Builder
	b.WriteString(time.Now().Format("2006-01-02T15:04:05.000"))
	fmt.Fprintf(&b, " [%s] ", level)
	if l.prefix != "" {
		b.WriteString(l.prefix)
		b.WriteString(": ")
	}
	b.WriteString(msg)

	if len(l.fields) > 0 {
		pairs := make([]string, 0, len(l.fields))
		for _, k := range slices.Sorted(maps.Keys(l.fields)) {
			pairs = append(pairs, fmt.Sprintf("%s=%v", k, l.fields[k]))
		}
		b.WriteString(" {" + strings.Join(pairs, ", ") + "}")
	}
	b.WriteByte('\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(l.output, b.String())
}

// NullLogger discards everything.
var NullLogger = &Logger{mu: new(sync.Mutex), output: io.Discard, disabled: true}
