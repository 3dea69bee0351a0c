package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"marksweep/internal/report"
)

var (
	reportOutput string
	reportFormat string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render a full analysis report",
	Long: `Run the analysis and render a complete report: the batch summary plus
every marker grouped by confidence tier. Markdown, JSON, and CSV are
supported; outputs ending in .gz are gzip-compressed.

Examples:
  marksweep report                            # Markdown to stdout
  marksweep report --output report.json
  marksweep report --output report.md.gz
  marksweep report --report-format csv --output markers.csv`,
	Run: runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "Output file (default stdout)")
	reportCmd.Flags().StringVar(&reportFormat, "report-format", "", "Report format: markdown, json, csv (default from extension)")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) {
	repoRoot := mustRepoRoot()
	cfg := mustLoadConfig(repoRoot)
	logger := newLogger(cfg)
	ctx := cmd.Context()

	var format report.Format
	if reportFormat != "" {
		parsed, err := report.ParseFormat(reportFormat)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		format = parsed
	}

	p := mustBuildPipeline(ctx, repoRoot, cfg, logger)
	_, results, summary, err := p.run(ctx)
	if err != nil {
		logger.Error("Analysis failed", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}

	r := report.New(repoRoot, results, summary)

	if reportOutput == "" {
		if format == "" {
			format = report.FormatMarkdown
		}
		if err := r.Write(os.Stdout, format); err != nil {
			logger.Error("Failed to render report", map[string]interface{}{"error": err.Error()})
			os.Exit(1)
		}
		return
	}

	if err := r.WriteFile(reportOutput, format); err != nil {
		logger.Error("Failed to write report", map[string]interface{}{
			"path":  reportOutput,
			"error": err.Error(),
		})
		os.Exit(1)
	}
	fmt.Printf("Report written to %s\n", reportOutput)
}
