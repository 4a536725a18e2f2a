// Package logging sets up the process-wide slog logger: a console handler plus
// a non-blocking, daily-rotated file sink. The returned Logger owns the sink
// and must be closed before the process exits so queued lines are flushed.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/term"

	"evolveapp-desktop/internal/paths"
)

const defaultQueueSize = 1024

// Logger wraps slog.Logger and owns the file sink behind it.
type Logger struct {
	*slog.Logger
	file      *asyncWriter
	closeOnce sync.Once
	closeErr  error
}

// Config configures the logger.
type Config struct {
	Dir        string
	FileName   string
	Level      string
	Console    io.Writer
	MaxAgeDays int
}

// DefaultConfig returns the desktop logging configuration.
func DefaultConfig() Config {
	return Config{
		Dir:        paths.LogDir(),
		FileName:   paths.LogFileName,
		Level:      "info",
		Console:    os.Stdout,
		MaxAgeDays: 30,
	}
}

// New creates the log directory and installs console and file handlers.
// The caller owns the returned Logger and must Close it.
func New(cfg Config) (*Logger, error) {
	if cfg.Console == nil {
		cfg.Console = os.Stdout
	}
	if cfg.FileName == "" {
		cfg.FileName = paths.LogFileName
	}

	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory %s: %w", cfg.Dir, err)
	}

	level := parseLevel(cfg.Level)
	file := newAsyncWriter(newDailyFile(filepath.Join(cfg.Dir, cfg.FileName), cfg.MaxAgeDays), defaultQueueSize)
	handler := newFanoutHandler(
		consoleHandler(cfg.Console, level),
		slog.NewTextHandler(file, &slog.HandlerOptions{Level: level}),
	)

	return &Logger{Logger: slog.New(handler), file: file}, nil
}

// NewConsole creates a console-only logger, used when the file sink cannot
// be set up.
func NewConsole(w io.Writer, level string) *Logger {
	if w == nil {
		w = os.Stdout
	}
	return &Logger{Logger: slog.New(consoleHandler(w, parseLevel(level)))}
}

// NewNop creates a no-op logger for testing.
func NewNop() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// Close flushes queued file output and releases the log file. Safe to call
// more than once.
func (l *Logger) Close() error {
	l.closeOnce.Do(func() {
		if l.file != nil {
			l.closeErr = l.file.Close()
		}
	})
	return l.closeErr
}

// Dropped reports how many lines the file sink discarded because its queue
// was full.
func (l *Logger) Dropped() uint64 {
	if l.file == nil {
		return 0
	}
	return l.file.dropped.Load()
}

// With returns a logger with custom fields sharing the same sink.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...), file: l.file}
}

func consoleHandler(w io.Writer, level slog.Level) slog.Handler {
	if isTerminal(w) {
		return NewPrettyHandler(w, level)
	}
	return slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}
