package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"marksweep/internal/config"
	"marksweep/internal/registry"
)

var registryStatus string

var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Manage the feature registry",
	Long:  "View and update the CSV feature registry kept in .marksweep/registry.csv",
}

var registryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registry entries",
	Long: `List registry entries, optionally filtered by status.

Examples:
  marksweep registry list
  marksweep registry list --status flagged --format json`,
	Run: runRegistryList,
}

var registryCloseCmd = &cobra.Command{
	Use:   "close <id>...",
	Short: "Mark registry entries as resolved",
	Args:  cobra.MinimumNArgs(1),
	Run:   runRegistryClose,
}

func init() {
	registryListCmd.Flags().StringVar(&registryStatus, "status", "", "Filter by status (open, flagged, closed)")
	registryCmd.AddCommand(registryListCmd)
	registryCmd.AddCommand(registryCloseCmd)
	rootCmd.AddCommand(registryCmd)
}

func mustLoadRegistry(stateDir string) *registry.Registry {
	reg, err := registry.Load(stateDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading registry: %v\n", err)
		os.Exit(1)
	}
	return reg
}

func runRegistryList(cmd *cobra.Command, args []string) {
	repoRoot := mustRepoRoot()
	reg := mustLoadRegistry(config.StateDir(repoRoot))

	entries := reg.Entries()
	if registryStatus != "" {
		filtered := entries[:0]
		for _, e := range entries {
			if string(e.Status) == registryStatus {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}

	if jsonOutput() {
		printJSON(entries)
		return
	}

	if len(entries) == 0 {
		fmt.Println("Registry is empty.")
		return
	}
	for _, e := range entries {
		fmt.Printf("  %s  %-7s  %5.1f  %s:%d  %s\n",
			e.ID, e.Status, e.Score, e.FilePath, e.LineNumber, e.Text)
	}
}

func runRegistryClose(cmd *cobra.Command, args []string) {
	repoRoot := mustRepoRoot()
	stateDir := config.StateDir(repoRoot)
	reg := mustLoadRegistry(stateDir)

	for _, id := range args {
		if err := reg.SetStatus(id, registry.StatusClosed); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if err := reg.Save(stateDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving registry: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Closed %d entries\n", len(args))
}
