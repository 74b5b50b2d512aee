// Package logging configures the reporter's file logger.
//
// Standard output and standard error carry the echoed test output, so the
// logger only ever writes to a rotating file.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures Setup.
type Options struct {
	Filename   string
	Level      slog.Level
	MaxSize    int // megabytes
	MaxBackups int
	MaxAge     int // days
	Compress   bool
}

// ParseLevel parses a level name (debug, info, warn, warning, error) or a
// numeric slog level such as -4.
func ParseLevel(value string) (slog.Level, error) {
	level := strings.ToLower(strings.TrimSpace(value))

	switch level {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}

	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n), nil
	}

	return slog.LevelInfo, fmt.Errorf("unknown log level %q", value)
}

// Setup creates a text logger writing to a rotating file. The returned closer
// releases the file. With an empty filename the logger discards everything.
func Setup(opts Options) (*slog.Logger, io.Closer) {
	if strings.TrimSpace(opts.Filename) == "" {
		return Discard(), io.NopCloser(nil)
	}

	// lumberjack creates the file lazily but needs the directory.
	if err := os.MkdirAll(filepath.Dir(opts.Filename), 0o755); err != nil {
		return Discard(), io.NopCloser(nil)
	}

	writer := &lumberjack.Logger{
		Filename:   opts.Filename,
		MaxSize:    opts.MaxSize,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAge,
		Compress:   opts.Compress,
	}

	handler := slog.NewTextHandler(writer, &slog.HandlerOptions{
		AddSource: true,
		Level:     opts.Level,
	})

	return slog.New(handler), writer
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
