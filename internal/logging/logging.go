// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package logging builds the slog.Logger used by the logicsim commands.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
)

// Output formats.
//
const (
	FormatAuto = "auto"
	FormatText = "text"
	FormatJSON = "json"
)

// Config configures a logger.
//
type Config struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `yaml:"format" validate:"omitempty,oneof=auto text json"`
	// File, if set, receives JSON logs in addition to the main output.
	File string `yaml:"file"`
}

// ParseLevel converts a level name to a slog.Level. The empty string is Info.
//
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, errors.Errorf("unknown log level %q", s)
}

// A Logger is a slog.Logger that may hold an open log file.
//
type Logger struct {
	*slog.Logger
	file     *os.File
	fileOnly *slog.Logger
}

// FileOnly returns a logger that writes to the log file only. Without a log
// file, it discards everything.
//
func (l *Logger) FileOnly() *slog.Logger {
	if l.fileOnly == nil {
		return Discard()
	}
	return l.fileOnly
}

// Close closes the log file, if any.
//
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// New returns a logger writing to w. With FormatAuto, text is used if w is a
// terminal and JSON otherwise.
//
func New(cfg Config, w io.Writer) (*Logger, error) {
	lvl, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}

	var h slog.Handler
	switch cfg.Format {
	case FormatText:
		h = slog.NewTextHandler(w, opts)
	case FormatJSON:
		h = slog.NewJSONHandler(w, opts)
	case "", FormatAuto:
		if isTerminal(w) {
			h = slog.NewTextHandler(w, opts)
		} else {
			h = slog.NewJSONHandler(w, opts)
		}
	default:
		return nil, errors.Errorf("unknown log format %q", cfg.Format)
	}

	l := &Logger{}
	if cfg.File != "" {
		if err = os.MkdirAll(filepath.Dir(cfg.File), 0750); err != nil {
			return nil, errors.Wrap(err, "create log directory")
		}
		l.file, err = os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0640)
		if err != nil {
			return nil, errors.Wrap(err, "open log file")
		}
		fh := slog.NewJSONHandler(l.file, opts)
		l.fileOnly = slog.New(fh)
		h = fanout{h, fh}
	}
	l.Logger = slog.New(h)
	return l, nil
}

// Discard returns a logger that drops everything.
//
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
