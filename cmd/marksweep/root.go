package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"marksweep/internal/config"
	"marksweep/internal/logging"
	"marksweep/internal/version"
)

var (
	repoFlag      string
	formatFlag    string
	logLevelFlag  string
	logFormatFlag string
)

var rootCmd = &cobra.Command{
	Use:   "marksweep",
	Short: "marksweep - completion-confidence analysis for task markers",
	Long: `marksweep scans a repository for task markers (TODO comments, unchecked
checklist items, pending section headers) and scores how likely each one is
already done, so stale backlogs can be swept instead of re-read.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("marksweep version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&repoFlag, "repo", ".", "Repository root to analyze")
	rootCmd.PersistentFlags().StringVar(&formatFlag, "format", "human", "Output format (json, human)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "", "Log format (json, human)")
}

// mustRepoRoot resolves --repo to an absolute path or exits.
func mustRepoRoot() string {
	abs, err := filepath.Abs(repoFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving repo root: %v\n", err)
		os.Exit(1)
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		fmt.Fprintf(os.Stderr, "Error: %s is not a directory\n", abs)
		os.Exit(1)
	}
	return abs
}

// mustLoadConfig loads and validates the repo configuration or exits.
func mustLoadConfig(repoRoot string) *config.Config {
	cfg, err := config.LoadConfig(repoRoot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg.RepoRoot = repoRoot
	return cfg
}

// newLogger builds the logger from config with CLI flag overrides.
func newLogger(cfg *config.Config) *logging.Logger {
	format := cfg.Logging.Format
	if logFormatFlag != "" {
		format = logFormatFlag
	}
	level := cfg.Logging.Level
	if logLevelFlag != "" {
		level = logLevelFlag
	}
	return logging.NewLogger(logging.Config{
		Format: logging.Format(format),
		Level:  logging.ParseLevel(level),
	})
}
