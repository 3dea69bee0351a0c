package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"marksweep/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage marksweep configuration",
	Long:  "View and manage configuration stored in .marksweep/config.json",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Run:   runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Run:   runConfigInit,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) {
	repoRoot := mustRepoRoot()
	cfg := mustLoadConfig(repoRoot)
	printJSON(cfg)
}

func runConfigInit(cmd *cobra.Command, args []string) {
	repoRoot := mustRepoRoot()
	path := filepath.Join(config.StateDir(repoRoot), "config.json")

	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(os.Stderr, "Error: %s already exists\n", path)
		os.Exit(1)
	}

	cfg := config.DefaultConfig()
	cfg.RepoRoot = repoRoot
	if err := cfg.Save(repoRoot); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing config: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", path)
}
