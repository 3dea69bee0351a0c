package report

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"marksweep/internal/confidence"
)

// ResultsTable renders the per-marker verdicts as a terminal table.
func ResultsTable(results []confidence.ConfidenceResult) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Location", "Marker", "Score", "Tier", "Recommendation"})

	for _, res := range results {
		tw.AppendRow(table.Row{
			fmt.Sprintf("%s:%d", res.Marker.FilePath, res.Marker.LineNumber),
			truncate(res.Marker.Text, 60),
			strconv.FormatFloat(res.Score, 'f', 1, 64),
			string(res.Tier),
			string(res.Recommendation),
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

// SummaryTable renders the batch summary as a terminal table.
func SummaryTable(summary confidence.BatchSummary) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Tier", "Markers"})

	for _, tier := range tierOrder {
		tw.AppendRow(table.Row{string(tier), summary.TierCounts[tier]})
	}
	tw.AppendFooter(table.Row{"total", summary.Total})

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

// TopFilesTable renders the top-files aggregate as a terminal table.
func TopFilesTable(files []confidence.FileAggregate) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"File", "Markers", "Avg score"})

	for _, f := range files {
		tw.AppendRow(table.Row{
			f.FilePath,
			f.MarkerCount,
			strconv.FormatFloat(f.AverageScore, 'f', 1, 64),
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
