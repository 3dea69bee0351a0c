package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the repository for task markers",
	Long: `Walk the repository and list every task marker found: TODO-style
comments in source files, unchecked checklist items and pending section
headers in documents. No scoring happens; use analyze for that.

Examples:
  marksweep scan
  marksweep scan --repo ../webapp --format json`,
	Run: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) {
	repoRoot := mustRepoRoot()
	cfg := mustLoadConfig(repoRoot)
	logger := newLogger(cfg)
	ctx := cmd.Context()

	p := mustBuildPipeline(ctx, repoRoot, cfg, logger)
	result, err := p.scanner.Scan(ctx)
	if err != nil {
		logger.Error("Scan failed", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}

	if jsonOutput() {
		printJSON(result)
		return
	}

	fmt.Printf("Scanned %d files in %s, found %d markers\n\n",
		result.FilesScanned, result.Duration, len(result.Markers))
	for _, m := range result.Markers {
		fmt.Printf("  %s:%d [%s] %s\n", m.FilePath, m.LineNumber, m.Kind, m.Text)
	}
}
