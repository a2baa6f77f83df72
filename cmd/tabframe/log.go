package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/log"

	"github.com/1broseidon/tabframe/internal/config"
	"github.com/1broseidon/tabframe/internal/decorator"
)

// newLogger creates a charm logger writing to w at level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// setupLogging installs the default slog logger for cfg and returns it. At
// debug level the decorator's layout trace is routed through it too.
func setupLogging(cfg config.LoggingConfig) *slog.Logger {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.InfoLevel
	}

	var w io.Writer = os.Stderr
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to open log file: %v\n", err)
		} else {
			w = io.MultiWriter(os.Stderr, f)
		}
	}

	charm := newLogger(w, level)
	logger := slog.New(charm)
	slog.SetDefault(logger)

	if level <= log.DebugLevel {
		trace := charm.WithPrefix("layout").StandardLog(log.StandardLogOptions{ForceLevel: log.DebugLevel})
		decorator.SetTraceOutput(trace.Writer())
	} else {
		decorator.SetTraceOutput(io.Discard)
	}
	return logger
}
