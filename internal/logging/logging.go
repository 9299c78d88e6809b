// Package logging builds the browser's structured logger. Records are JSON
// lines written to a size-rotated file so the terminal stays free for the UI.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	defaultMaxSizeMB  = 5
	defaultMaxBackups = 3
	defaultMaxAgeDays = 14
)

// Options configures New.
type Options struct {
	File       string
	Level      slog.Level
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Logger is a slog.Logger bound to a rotating log file.
type Logger struct {
	*slog.Logger
	level  *slog.LevelVar
	writer io.WriteCloser
}

// New opens (or creates) the log file and returns a logger writing to it.
func New(opts Options) (*Logger, error) {
	path := strings.TrimSpace(opts.File)
	if path == "" {
		return nil, fmt.Errorf("log file path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	writer := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    orDefault(opts.MaxSizeMB, defaultMaxSizeMB),
		MaxBackups: orDefault(opts.MaxBackups, defaultMaxBackups),
		MaxAge:     orDefault(opts.MaxAgeDays, defaultMaxAgeDays),
	}
	return newLogger(writer, opts.Level), nil
}

// NewWriter returns a logger writing JSON lines to w. Close closes w if it
// is an io.Closer.
func NewWriter(w io.Writer, level slog.Level) *Logger {
	wc, ok := w.(io.WriteCloser)
	if !ok {
		wc = nopCloser{w}
	}
	return newLogger(wc, level)
}

func newLogger(w io.WriteCloser, level slog.Level) *Logger {
	lvl := new(slog.LevelVar)
	lvl.Set(level)
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	return &Logger{
		Logger: slog.New(handler),
		level:  lvl,
		writer: w,
	}
}

// SetLevel changes the minimum level at runtime.
func (l *Logger) SetLevel(level slog.Level) {
	l.level.Set(level)
}

// Level returns the current minimum level.
func (l *Logger) Level() slog.Level {
	return l.level.Level()
}

// Close flushes and closes the log file.
func (l *Logger) Close() error {
	if l == nil || l.writer == nil {
		return nil
	}
	return l.writer.Close()
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func orDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
