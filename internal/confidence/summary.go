package confidence

import (
	"math"
	"sort"
)

// Summarize reduces one run's results to aggregate statistics. It must run
// only after all per-marker results exist; it is the barrier step of the
// pipeline. Empty input yields all-zero counts and 0% reduction.
func Summarize(results []ConfidenceResult) BatchSummary {
	summary := BatchSummary{
		Total: len(results),
		TierCounts: map[Tier]int{
			TierVeryHigh: 0,
			TierHigh:     0,
			TierMedium:   0,
			TierLow:      0,
			TierActive:   0,
		},
	}

	if len(results) == 0 {
		return summary
	}

	type fileAccum struct {
		count int
		sum   float64
	}
	files := make(map[string]*fileAccum)

	for _, r := range results {
		summary.TierCounts[r.Tier]++

		// Per-file aggregates only consider likely-completed markers.
		if r.Tier.Rank() >= TierMedium.Rank() {
			acc := files[r.Marker.FilePath]
			if acc == nil {
				acc = &fileAccum{}
				files[r.Marker.FilePath] = acc
			}
			acc.count++
			acc.sum += r.Score
		}
	}

	for path, acc := range files {
		summary.TopFiles = append(summary.TopFiles, FileAggregate{
			FilePath:     path,
			MarkerCount:  acc.count,
			AverageScore: math.Round(acc.sum/float64(acc.count)*10) / 10,
		})
	}
	sort.Slice(summary.TopFiles, func(i, j int) bool {
		a, b := summary.TopFiles[i], summary.TopFiles[j]
		if a.MarkerCount != b.MarkerCount {
			return a.MarkerCount > b.MarkerCount
		}
		if a.AverageScore != b.AverageScore {
			return a.AverageScore > b.AverageScore
		}
		return a.FilePath < b.FilePath
	})

	likelyDone := summary.TierCounts[TierVeryHigh] + summary.TierCounts[TierHigh]
	summary.ReductionPotential = math.Round(float64(likelyDone)/float64(len(results))*1000) / 10

	return summary
}
