package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"github.com/s1natex/todos-cli-GO/internal/cli"
)

var version = "1.0.0"

func main() {
	logger := newLoggerFromEnv(os.Stderr)
	slog.SetDefault(logger) // for third-party packages that use slog

	// one run per process, so the run id plays the part of a request id
	logger = logger.With(slog.String("run_id", uuid.NewString()))

	root := cli.NewRootCommand(logger, version)
	if err := root.Execute(); err != nil {
		logger.Error("command_failed", slog.String("error", err.Error()))
		fmt.Fprintln(color.Error, color.RedString("Error: %v", err))
		os.Exit(1)
	}
}

// newLoggerFromEnv writes JSON logs to w at LOG_LEVEL. Stdout carries the
// command output, and logging stays off unless LOG_LEVEL is set.
func newLoggerFromEnv(w io.Writer) *slog.Logger {
	level := strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL")))
	var l slog.Level
	switch level {
	case "":
		return slog.New(slog.DiscardHandler)
	case "debug":
		l = slog.LevelDebug
	case "warn", "warning":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: l,
	})
	return slog.New(handler)
}
