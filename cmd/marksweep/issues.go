package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"marksweep/internal/confidence"
	"marksweep/internal/github"
)

var (
	issuesApply  bool
	issuesLabels []string
	issuesLimit  int
)

var issuesCmd = &cobra.Command{
	Use:   "issues",
	Short: "Open tracking issues for markers that need review",
	Long: `Run the analysis and open one GitHub issue per marker in the high tier
(needs-review). Without --apply this is a dry run that prints what would be
created. Requires github.owner and github.repo in the config and a token in
` + github.TokenEnv + `.

Examples:
  marksweep issues                  # dry run
  marksweep issues --apply --label tech-debt`,
	Run: runIssues,
}

func init() {
	issuesCmd.Flags().BoolVar(&issuesApply, "apply", false, "Actually create issues (default is dry run)")
	issuesCmd.Flags().StringSliceVar(&issuesLabels, "label", []string{"marksweep"}, "Labels for created issues")
	issuesCmd.Flags().IntVar(&issuesLimit, "limit", 10, "Maximum issues to create per run")
	rootCmd.AddCommand(issuesCmd)
}

func runIssues(cmd *cobra.Command, args []string) {
	repoRoot := mustRepoRoot()
	cfg := mustLoadConfig(repoRoot)
	logger := newLogger(cfg)
	ctx := cmd.Context()

	p := mustBuildPipeline(ctx, repoRoot, cfg, logger)
	_, results, _, err := p.run(ctx)
	if err != nil {
		logger.Error("Analysis failed", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}

	var flagged []confidence.ConfidenceResult
	for _, res := range results {
		if res.Recommendation == confidence.RecNeedsReview {
			flagged = append(flagged, res)
		}
	}
	if len(flagged) > issuesLimit {
		flagged = flagged[:issuesLimit]
	}

	if len(flagged) == 0 {
		fmt.Println("No markers need review.")
		return
	}

	if !issuesApply {
		fmt.Printf("Dry run: would create %d issues (use --apply to create)\n\n", len(flagged))
		for _, res := range flagged {
			title, _ := github.IssueForResult(res)
			fmt.Printf("  %s:%d  %s\n", res.Marker.FilePath, res.Marker.LineNumber, title)
		}
		return
	}

	client, err := github.NewClient(cfg.GitHub, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	created := 0
	for _, res := range flagged {
		title, body := github.IssueForResult(res)
		issue, err := client.CreateIssue(ctx, title, body, issuesLabels)
		if err != nil {
			logger.Error("Failed to create issue", map[string]interface{}{
				"marker": fmt.Sprintf("%s:%d", res.Marker.FilePath, res.Marker.LineNumber),
				"error":  err.Error(),
			})
			continue
		}
		created++
		fmt.Printf("  #%d %s\n", issue.Number, issue.HTMLURL)
	}
	fmt.Printf("Created %d of %d issues\n", created, len(flagged))
}
