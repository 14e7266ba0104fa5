package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"vibe-todo/vibetodo/config"
	"vibe-todo/vibetodo/logger"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "vibetodo",
	Short:         "Personal task manager",
	Long:          "vibetodo keeps lists, tasks, subtasks and a per-day My Day plan in a local store and serves them over HTTP.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// setupLogging installs the configured logger as the slog default.
func setupLogging(cfg config.Config) (io.Closer, error) {
	l, closer, err := logger.New(logger.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}
	slog.SetDefault(l.With("env", cfg.AppEnv))
	return closer, nil
}
