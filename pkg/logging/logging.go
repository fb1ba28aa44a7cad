/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// LevelEnv names the environment variable that sets the log level.
const LevelEnv = "LOG_LEVEL"

// Options controls logger construction.
type Options struct {
	// Module and Version are attached to every record.
	Module  string
	Version string

	// Debug forces the debug level regardless of LOG_LEVEL.
	Debug bool

	// JSON selects the JSON handler instead of text.
	JSON bool

	// Writer defaults to stderr so prompts on stdout stay clean.
	Writer io.Writer
}

// ParseLevel maps a level name to a slog.Level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New builds a logger from opts.
func New(opts Options) *slog.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	level := ParseLevel(os.Getenv(LevelEnv))
	if opts.Debug {
		level = slog.LevelDebug
	}

	ho := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	var h slog.Handler
	if opts.JSON {
		h = slog.NewJSONHandler(w, ho)
	} else {
		h = slog.NewTextHandler(w, ho)
	}

	logger := slog.New(h)
	if opts.Module != "" {
		logger = logger.With(slog.String("module", opts.Module))
	}
	if opts.Version != "" {
		logger = logger.With(slog.String("version", opts.Version))
	}
	return logger
}

// SetDefaultStructuredLogger installs a logger built from opts as the slog default.
func SetDefaultStructuredLogger(opts Options) {
	slog.SetDefault(New(opts))
}
