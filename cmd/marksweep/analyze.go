package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"marksweep/internal/confidence"
	"marksweep/internal/config"
	"marksweep/internal/logging"
	"marksweep/internal/registry"
	"marksweep/internal/report"
	"marksweep/internal/storage"
)

var (
	analyzeWorkers    int
	analyzeMinTier    string
	analyzeNoPersist  bool
	analyzeNoRegistry bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score every task marker's completion confidence",
	Long: `Scan the repository, extract completion evidence for each task marker,
and classify every marker into a confidence tier with a recommended action.
The run summary is persisted so history can show the trend, and flagged
markers are recorded in the feature registry.

Examples:
  marksweep analyze
  marksweep analyze --min-tier high
  marksweep analyze --format json --no-persist`,
	Run: runAnalyze,
}

func init() {
	analyzeCmd.Flags().IntVar(&analyzeWorkers, "workers", 0, "Analysis parallelism (default from config)")
	analyzeCmd.Flags().StringVar(&analyzeMinTier, "min-tier", "", "Only show markers at this tier or above (very-high, high, medium, low)")
	analyzeCmd.Flags().BoolVar(&analyzeNoPersist, "no-persist", false, "Skip saving the run to the run store")
	analyzeCmd.Flags().BoolVar(&analyzeNoRegistry, "no-registry", false, "Skip updating the feature registry")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) {
	repoRoot := mustRepoRoot()
	cfg := mustLoadConfig(repoRoot)
	logger := newLogger(cfg)
	ctx := cmd.Context()

	if analyzeWorkers > 0 {
		cfg.Analysis.Workers = analyzeWorkers
	}

	var minTier confidence.Tier
	if analyzeMinTier != "" {
		parsed, err := confidence.ParseTier(analyzeMinTier)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		minTier = parsed
	}

	p := mustBuildPipeline(ctx, repoRoot, cfg, logger)
	scan, results, summary, err := p.run(ctx)
	if err != nil {
		logger.Error("Analysis failed", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}

	if !analyzeNoPersist {
		persistRun(repoRoot, scan.FilesScanned, summary, logger)
	}
	if !analyzeNoRegistry {
		updateRegistry(repoRoot, results, logger)
	}

	shown := results
	if analyzeMinTier != "" {
		shown = filterByTier(results, minTier)
	}

	if jsonOutput() {
		printJSON(report.New(repoRoot, shown, summary))
		return
	}

	fmt.Println(report.SummaryTable(summary))
	fmt.Printf("\nReduction potential: %.1f%%\n", summary.ReductionPotential)
	if len(summary.TopFiles) > 0 {
		fmt.Println("\nTop files:")
		fmt.Println(report.TopFilesTable(summary.TopFiles))
	}
	if len(shown) > 0 {
		fmt.Println()
		fmt.Println(report.ResultsTable(shown))
	}
}

// persistRun saves the run summary; failures are logged, not fatal.
func persistRun(repoRoot string, filesScanned int, summary confidence.BatchSummary, logger *logging.Logger) {
	db, err := storage.Open(config.StateDir(repoRoot), logger)
	if err != nil {
		logger.Warn("Run store unavailable", map[string]interface{}{"error": err.Error()})
		return
	}
	defer db.Close()

	if _, err := db.SaveRun(repoRoot, filesScanned, summary); err != nil {
		logger.Warn("Failed to persist run", map[string]interface{}{"error": err.Error()})
	}
}

// updateRegistry folds results into the feature registry; failures are
// logged, not fatal.
func updateRegistry(repoRoot string, results []confidence.ConfidenceResult, logger *logging.Logger) {
	stateDir := config.StateDir(repoRoot)
	reg, err := registry.Load(stateDir)
	if err != nil {
		logger.Warn("Registry unavailable", map[string]interface{}{"error": err.Error()})
		return
	}

	added, updated := reg.Upsert(results, time.Now().UTC())
	if err := reg.Save(stateDir); err != nil {
		logger.Warn("Failed to save registry", map[string]interface{}{"error": err.Error()})
		return
	}
	logger.Debug("Registry updated", map[string]interface{}{
		"added":   added,
		"updated": updated,
	})
}

func filterByTier(results []confidence.ConfidenceResult, minTier confidence.Tier) []confidence.ConfidenceResult {
	minRank := minTier.Rank()
	var out []confidence.ConfidenceResult
	for _, res := range results {
		if res.Tier.Rank() >= minRank {
			out = append(out, res)
		}
	}
	return out
}
