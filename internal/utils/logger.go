package utils

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
)

const logTimeFormat = "2006-01-02T15:04:05.000Z07:00"

type LoggerOptions struct {
	// Console receives colourised output
	Console io.Writer
	NoColor bool

	// LogFile, when set, receives plain text output with line numbers; it is truncated on open
	LogFile string

	Level slog.Level
}

// NewLogger builds the console + file logger. The returned closer flushes and closes the log
// file and is never nil.
func NewLogger(opts LoggerOptions) (*slog.Logger, io.Closer, error) {
	console := newConsoleHandler(opts)

	if opts.LogFile == "" {
		return slog.New(console), nopCloser{}, nil
	}

	if err := EnsureParent(opts.LogFile); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}

	file, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	interceptor := NewLogInterceptor(file)
	fileHandler := slog.NewTextHandler(interceptor, &slog.HandlerOptions{
		Level: opts.Level,
		// time is added by the interceptor
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			return a
		},
	})

	logger := slog.New(NewMultiLogHandler(console, fileHandler))
	return logger, &logFileCloser{interceptor: interceptor, file: file}, nil
}

// NewConsoleLogger logs to opts.Console only; opts.LogFile is ignored.
func NewConsoleLogger(opts LoggerOptions) *slog.Logger {
	return slog.New(newConsoleHandler(opts))
}

func newConsoleHandler(opts LoggerOptions) slog.Handler {
	return tint.NewHandler(opts.Console, &tint.Options{
		Level:      opts.Level,
		TimeFormat: logTimeFormat,
		NoColor:    opts.NoColor,
	})
}

type logFileCloser struct {
	interceptor *LogInterceptor
	file        *os.File
}

func (c *logFileCloser) Close() error {
	flushErr := c.interceptor.Close()
	if err := c.file.Close(); err != nil {
		return err
	}
	return flushErr
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
