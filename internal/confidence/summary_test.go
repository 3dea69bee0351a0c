package confidence

import (
	"testing"

	"marksweep/internal/marker"
)

func result(path string, score float64, tier Tier) ConfidenceResult {
	return ConfidenceResult{
		Marker:         marker.TaskMarker{FilePath: path, LineNumber: 1, Kind: marker.KindChecklist},
		Score:          score,
		Tier:           tier,
		Recommendation: tier.Recommendation(),
	}
}

func TestSummarizeEmptyInput(t *testing.T) {
	summary := Summarize(nil)

	if summary.Total != 0 {
		t.Errorf("Expected total 0, got %d", summary.Total)
	}
	if summary.ReductionPotential != 0 {
		t.Errorf("Expected 0%% reduction, got %f", summary.ReductionPotential)
	}
	for tier, count := range summary.TierCounts {
		if count != 0 {
			t.Errorf("Expected 0 count for %s, got %d", tier, count)
		}
	}
	if len(summary.TopFiles) != 0 {
		t.Errorf("Expected no top files, got %v", summary.TopFiles)
	}
}

func TestSummarizeTierCountsAndReduction(t *testing.T) {
	results := []ConfidenceResult{
		result("a.md", 95, TierVeryHigh),
		result("a.md", 92, TierVeryHigh),
		result("b.md", 75, TierHigh),
		result("c.md", 55, TierMedium),
		result("d.md", 35, TierLow),
		result("e.md", 5, TierActive),
	}

	summary := Summarize(results)

	if summary.Total != 6 {
		t.Errorf("Expected total 6, got %d", summary.Total)
	}
	if summary.TierCounts[TierVeryHigh] != 2 {
		t.Errorf("Expected 2 very-high, got %d", summary.TierCounts[TierVeryHigh])
	}
	if summary.TierCounts[TierActive] != 1 {
		t.Errorf("Expected 1 active, got %d", summary.TierCounts[TierActive])
	}

	// 3 of 6 at tier high or above.
	if summary.ReductionPotential != 50 {
		t.Errorf("Expected 50%% reduction potential, got %f", summary.ReductionPotential)
	}
}

func TestSummarizeTopFiles(t *testing.T) {
	results := []ConfidenceResult{
		result("docs/_archive/PLAN.md", 95, TierVeryHigh),
		result("docs/_archive/PLAN.md", 91, TierVeryHigh),
		result("docs/_archive/PLAN.md", 72, TierHigh),
		result("legacy/notes.md", 60, TierMedium),
		result("src/worker.go", 10, TierActive), // below medium, excluded
	}

	summary := Summarize(results)

	if len(summary.TopFiles) != 2 {
		t.Fatalf("Expected 2 files in top list, got %d", len(summary.TopFiles))
	}

	top := summary.TopFiles[0]
	if top.FilePath != "docs/_archive/PLAN.md" {
		t.Errorf("Expected archive plan first, got %s", top.FilePath)
	}
	if top.MarkerCount != 3 {
		t.Errorf("Expected 3 markers, got %d", top.MarkerCount)
	}
	if top.AverageScore != 86 {
		t.Errorf("Expected average 86.0, got %f", top.AverageScore)
	}

	if summary.TopFiles[1].FilePath != "legacy/notes.md" {
		t.Errorf("Expected legacy notes second, got %s", summary.TopFiles[1].FilePath)
	}
}

func TestSummarizeTopFilesTieBreaks(t *testing.T) {
	results := []ConfidenceResult{
		result("b.md", 80, TierHigh),
		result("a.md", 80, TierHigh),
	}

	summary := Summarize(results)
	if summary.TopFiles[0].FilePath != "a.md" {
		t.Errorf("Equal counts and scores should order by path, got %s first", summary.TopFiles[0].FilePath)
	}
}

func TestSummarizeRoundedReduction(t *testing.T) {
	results := []ConfidenceResult{
		result("a.md", 95, TierVeryHigh),
		result("b.md", 10, TierActive),
		result("c.md", 10, TierActive),
	}

	summary := Summarize(results)
	// 1/3 rounded to one decimal.
	if summary.ReductionPotential != 33.3 {
		t.Errorf("Expected 33.3, got %f", summary.ReductionPotential)
	}
}
