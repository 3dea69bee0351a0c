package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"marksweep/internal/config"
	"marksweep/internal/storage"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past analysis runs and the backlog trend",
	Long: `List persisted analysis runs, newest first, and the reduction-potential
trend across them. An increasing trend means the share of likely-done
markers is growing and a sweep is overdue.

Examples:
  marksweep history
  marksweep history --limit 5 --format json`,
	Run: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "Maximum runs to show (0 for all)")
	rootCmd.AddCommand(historyCmd)
}

// HistoryResponse is the history command's JSON output.
type HistoryResponse struct {
	Runs  []storage.Run `json:"runs"`
	Trend storage.Trend `json:"trend"`
}

func runHistory(cmd *cobra.Command, args []string) {
	repoRoot := mustRepoRoot()
	cfg := mustLoadConfig(repoRoot)
	logger := newLogger(cfg)

	db, err := storage.Open(config.StateDir(repoRoot), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run store: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	runs, err := db.ListRuns(historyLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing runs: %v\n", err)
		os.Exit(1)
	}
	// Trend wants the full series even when the listing is limited.
	allRuns := runs
	if historyLimit > 0 {
		allRuns, err = db.ListRuns(0)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing runs: %v\n", err)
			os.Exit(1)
		}
	}
	trend := storage.CalculateTrend(allRuns)

	if jsonOutput() {
		printJSON(HistoryResponse{Runs: runs, Trend: trend})
		return
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet. Run `marksweep analyze` first.")
		return
	}

	fmt.Printf("Trend: %s (%.2f points/day over %d runs)\n\n",
		trend.Direction, trend.Velocity, trend.DataPoints)
	for _, r := range runs {
		fmt.Printf("  %s  markers=%d  very-high=%d  high=%d  reduction=%.1f%%\n",
			r.CreatedAt.Format("2006-01-02 15:04"),
			r.TotalMarkers, r.VeryHigh, r.High, r.ReductionPotential)
	}
}
