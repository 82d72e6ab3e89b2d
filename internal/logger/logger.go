// Package logger is the leveled printf-style logger every package writes to.
// Output is discarded until a file is configured, since the TUI owns the
// terminal.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Environment variables read by New.
const (
	EnvLevel = "BANDHAN_LOG_LEVEL"
	EnvFile  = "BANDHAN_LOG_FILE"
)

// Level represents a log level
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l Level) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLevel parses a level name case-insensitively. Empty means info and
// "warning" is accepted for warn.
func ParseLevel(s string) (Level, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	switch name {
	case "":
		return LevelInfo, nil
	case "WARNING":
		return LevelWarn, nil
	}
	for i, n := range levelNames {
		if n == name {
			return Level(i), nil
		}
	}
	return LevelInfo, fmt.Errorf("invalid log level: %q", s)
}

// sink is the output shared by a logger and everything derived with With.
type sink struct {
	mu    sync.Mutex
	level Level
	out   *log.Logger
	file  *os.File
}

// Logger writes leveled messages to its sink, prefixed with the component
// names given to With.
type Logger struct {
	sink   *sink
	prefix string
}

// Default is the process-wide logger behind the package-level functions.
var Default = New()

// New creates a logger configured from EnvLevel and EnvFile. Invalid values
// leave the defaults (info, discarded) in place.
func New() *Logger {
	l := &Logger{sink: &sink{
		level: LevelInfo,
		out:   log.New(io.Discard, "", log.LstdFlags),
	}}
	_ = l.Configure(os.Getenv(EnvLevel), os.Getenv(EnvFile))
	return l
}

// Configure applies a level name and, when file is not empty, appends output
// to that file.
func (l *Logger) Configure(level, file string) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}

	s := l.sink
	s.mu.Lock()
	defer s.mu.Unlock()
	s.level = lvl

	if file == "" {
		return nil
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	if s.file != nil {
		_ = s.file.Close()
	}
	s.file = f
	s.out.SetOutput(f)
	return nil
}

// Close closes the log file, if any, and goes back to discarding.
func (l *Logger) Close() error {
	s := l.sink
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	s.out.SetOutput(io.Discard)
	return err
}

func (l *Logger) SetLevel(level Level) {
	l.sink.mu.Lock()
	l.sink.level = level
	l.sink.mu.Unlock()
}

func (l *Logger) SetOutput(w io.Writer) {
	l.sink.mu.Lock()
	l.sink.out.SetOutput(w)
	l.sink.mu.Unlock()
}

// With returns a logger for a component. It shares level and output with l;
// nested names are joined, e.g. "wizard: editor: ".
func (l *Logger) With(name string) *Logger {
	return &Logger{sink: l.sink, prefix: l.prefix + name + ": "}
}

func (l *Logger) Debug(format string, v ...any) { l.logf(LevelDebug, format, v...) }
func (l *Logger) Info(format string, v ...any)  { l.logf(LevelInfo, format, v...) }
func (l *Logger) Warn(format string, v ...any)  { l.logf(LevelWarn, format, v...) }
func (l *Logger) Error(format string, v ...any) { l.logf(LevelError, format, v...) }

func (l *Logger) logf(level Level, format string, v ...any) {
	s := l.sink
	s.mu.Lock()
	defer s.mu.Unlock()

	if level < s.level {
		return
	}
	s.out.Printf("[%s] %s%s", level, l.prefix, fmt.Sprintf(format, v...))
}

func Debug(format string, v ...any) { Default.Debug(format, v...) }
func Info(format string, v ...any)  { Default.Info(format, v...) }
func Warn(format string, v ...any)  { Default.Warn(format, v...) }
func Error(format string, v ...any) { Default.Error(format, v...) }

// With returns a component logger on Default.
func With(name string) *Logger { return Default.With(name) }

// Configure configures Default.
func Configure(level, file string) error { return Default.Configure(level, file) }

func Close() error { return Default.Close() }
