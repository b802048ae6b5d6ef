// Package logging provides a leveled logger on top of log/slog.
//
// Text output goes through tint (colourised when writing to a terminal);
// JSON output uses the slog JSON handler for machine consumption.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/lmittmann/tint"
	"golang.org/x/term"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelError + 4
	}
}

// ParseLevel parses a log level string.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Format selects the output encoding.
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

// ParseFormat parses "text" or "json"; anything else is text.
func ParseFormat(s string) Format {
	if strings.EqualFold(s, "json") {
		return FormatJSON
	}
	return FormatText
}

// TimeFormat is the timestamp layout of text output.
const TimeFormat = "15:04:05.000"

// Logger is a leveled logger. The zero value is not usable; use New.
type Logger struct {
	mu     sync.RWMutex
	level  *slog.LevelVar
	format Format
	slog   *slog.Logger
}

// New creates a text logger writing to stderr.
func New(level Level) *Logger {
	return NewWithOutput(os.Stderr, level, FormatText)
}

// NewWithOutput creates a logger writing to w in the given format.
func NewWithOutput(w io.Writer, level Level, format Format) *Logger {
	lv := new(slog.LevelVar)
	lv.Set(level.slogLevel())
	return &Logger{
		level:  lv,
		format: format,
		slog:   slog.New(newHandler(w, format, lv)),
	}
}

func newHandler(w io.Writer, format Format, lv *slog.LevelVar) slog.Handler {
	if format == FormatJSON {
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lv})
	}
	return tint.NewHandler(w, &tint.Options{
		Level:      lv,
		TimeFormat: TimeFormat,
		NoColor:    !isTerminal(w),
	})
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// SetOutput sets the log output destination.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.slog = slog.New(newHandler(w, l.format, l.level))
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level Level) {
	l.level.Set(level.slogLevel())
}

// Slog returns the underlying structured logger.
func (l *Logger) Slog() *slog.Logger {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.slog
}

// With returns a logger that adds the given key/value attributes to every
// record. Level changes on either logger affect both.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		level:  l.level,
		format: l.format,
		slog:   l.Slog().With(args...),
	}
}

func (l *Logger) log(level Level, format string, args ...any) {
	lg := l.Slog()
	ctx := context.Background()
	sl := level.slogLevel()
	if !lg.Enabled(ctx, sl) {
		return
	}
	lg.Log(ctx, sl, fmt.Sprintf(format, args...))
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...any) {
	l.log(LevelDebug, format, args...)
}

// Info logs an info message.
func (l *Logger) Info(format string, args ...any) {
	l.log(LevelInfo, format, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...any) {
	l.log(LevelWarn, format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...any) {
	l.log(LevelError, format, args...)
}

// Discard returns a logger that discards all output.
func Discard() *Logger {
	return NewWithOutput(io.Discard, LevelError+1, FormatText)
}
