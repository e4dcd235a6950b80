package main

import (
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/calebfornari/listerine/internal/config"
)

var (
	cfgFile string
	envFlag string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "listerine",
	Short: "Declarative monitor and escalation engine",
	Long: "Listerine runs named checks, tracks consecutive-failure streaks, and " +
		"escalates to the right recipient per environment. YAML config, SQLite " +
		"state, Shoutrrr notifications.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&envFlag, "environment", "", "environment tag (default from config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

// setupLogger builds the process logger: human-readable text on a
// terminal, JSON when piped.
func setupLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

// activeEnvironment picks the environment for this invocation: the
// --environment flag wins over the config default.
func activeEnvironment(cfg *config.Config) string {
	if envFlag != "" {
		return envFlag
	}
	return cfg.DefaultEnvironment
}
