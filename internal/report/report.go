// Package report renders analysis results to Markdown, JSON, and CSV, and
// builds the human-readable tables for the CLI.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"

	"marksweep/internal/confidence"
	"marksweep/internal/version"
)

// Format identifies a report output format.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
)

// ParseFormat maps a user-supplied format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	}
	return "", fmt.Errorf("unknown report format %q (markdown, json, csv)", s)
}

// Report is one run's complete output: the per-marker verdicts plus the
// batch summary.
type Report struct {
	RepoRoot    string                        `json:"repoRoot"`
	GeneratedAt time.Time                     `json:"generatedAt"`
	Tool        string                        `json:"tool"`
	Summary     confidence.BatchSummary       `json:"summary"`
	Results     []confidence.ConfidenceResult `json:"results"`
}

// New assembles a report from analysis output.
func New(repoRoot string, results []confidence.ConfidenceResult, summary confidence.BatchSummary) *Report {
	return &Report{
		RepoRoot:    repoRoot,
		GeneratedAt: time.Now().UTC(),
		Tool:        version.Full(),
		Summary:     summary,
		Results:     results,
	}
}

// Write renders the report in the given format.
func (r *Report) Write(w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		return r.writeJSON(w)
	case FormatCSV:
		return r.writeCSV(w)
	case FormatMarkdown:
		return r.writeMarkdown(w)
	}
	return fmt.Errorf("unknown report format %q", format)
}

// WriteFile renders the report to a file, gzip-compressing when the path
// ends in .gz. The format is taken from the remaining extension when format
// is empty (report.md.gz writes gzipped Markdown).
func (r *Report) WriteFile(path string, format Format) error {
	name := path
	compress := strings.HasSuffix(name, ".gz")
	if compress {
		name = strings.TrimSuffix(name, ".gz")
	}
	if format == "" {
		switch {
		case strings.HasSuffix(name, ".json"):
			format = FormatJSON
		case strings.HasSuffix(name, ".csv"):
			format = FormatCSV
		default:
			format = FormatMarkdown
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	var w io.Writer = f
	var gz *gzip.Writer
	if compress {
		gz = gzip.NewWriter(f)
		w = gz
	}
	if err := r.Write(w, format); err != nil {
		return err
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			return fmt.Errorf("failed to flush compressed report: %w", err)
		}
	}
	return f.Close()
}

func (r *Report) writeJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func (r *Report) writeCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"file_path", "line_number", "kind", "text", "score", "tier", "recommendation", "reasons"}); err != nil {
		return err
	}
	for _, res := range r.Results {
		record := []string{
			res.Marker.FilePath,
			strconv.Itoa(res.Marker.LineNumber),
			string(res.Marker.Kind),
			res.Marker.Text,
			strconv.FormatFloat(res.Score, 'f', 1, 64),
			string(res.Tier),
			string(res.Recommendation),
			strings.Join(res.Reasons, "; "),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (r *Report) writeMarkdown(w io.Writer) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Completion-confidence report\n\n")
	fmt.Fprintf(&b, "Repository: `%s`  \n", r.RepoRoot)
	fmt.Fprintf(&b, "Generated: %s by %s\n\n", r.GeneratedAt.Format(time.RFC3339), r.Tool)

	fmt.Fprintf(&b, "## Summary\n\n")
	fmt.Fprintf(&b, "- Markers analyzed: %d\n", r.Summary.Total)
	for _, tier := range tierOrder {
		fmt.Fprintf(&b, "- %s: %d\n", tier, r.Summary.TierCounts[tier])
	}
	fmt.Fprintf(&b, "- Reduction potential: %.1f%%\n\n", r.Summary.ReductionPotential)

	if len(r.Summary.TopFiles) > 0 {
		fmt.Fprintf(&b, "## Top files\n\n")
		fmt.Fprintf(&b, "| File | Markers | Avg score |\n")
		fmt.Fprintf(&b, "|------|---------|-----------|\n")
		for _, f := range r.Summary.TopFiles {
			fmt.Fprintf(&b, "| %s | %d | %.1f |\n", f.FilePath, f.MarkerCount, f.AverageScore)
		}
		fmt.Fprintf(&b, "\n")
	}

	fmt.Fprintf(&b, "## Markers\n\n")
	for _, tier := range tierOrder {
		group := resultsInTier(r.Results, tier)
		if len(group) == 0 {
			continue
		}
		fmt.Fprintf(&b, "### %s (%d)\n\n", tier, len(group))
		for _, res := range group {
			fmt.Fprintf(&b, "- `%s:%d` %s (%.1f, %s)\n",
				res.Marker.FilePath, res.Marker.LineNumber, res.Marker.Text,
				res.Score, res.Recommendation)
			for _, reason := range res.Reasons {
				fmt.Fprintf(&b, "  - %s\n", reason)
			}
		}
		fmt.Fprintf(&b, "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

var tierOrder = []confidence.Tier{
	confidence.TierVeryHigh,
	confidence.TierHigh,
	confidence.TierMedium,
	confidence.TierLow,
	confidence.TierActive,
}

func resultsInTier(results []confidence.ConfidenceResult, tier confidence.Tier) []confidence.ConfidenceResult {
	var out []confidence.ConfidenceResult
	for _, res := range results {
		if res.Tier == tier {
			out = append(out, res)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}
