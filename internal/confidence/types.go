// Package confidence implements the completion-confidence analysis engine:
// evidence extraction, score aggregation, tier classification, and batch
// summarization for task markers that may already be done.
package confidence

import "marksweep/internal/marker"

// ConfidenceResult is the engine's verdict for one marker. Results are
// created once per analysis run and never mutated; re-analysis produces new
// results.
type ConfidenceResult struct {
	Marker marker.TaskMarker `json:"marker"`

	// Score is 0-100, rounded to one decimal.
	Score float64 `json:"score"`

	Tier           Tier           `json:"tier"`
	Recommendation Recommendation `json:"recommendation"`

	// Reasons lists the evidence descriptions that produced the score, in
	// extraction order.
	Reasons []string `json:"reasons,omitempty"`
}

// FileAggregate summarizes one file's likely-completed markers.
type FileAggregate struct {
	FilePath     string  `json:"filePath"`
	MarkerCount  int     `json:"markerCount"`
	AverageScore float64 `json:"averageScore"`
}

// BatchSummary aggregates one run's results. It is derived, recomputed on
// demand, and holds no independent state.
type BatchSummary struct {
	Total      int          `json:"total"`
	TierCounts map[Tier]int `json:"tierCounts"`

	// TopFiles lists files by likely-completed volume (markers at tier
	// medium or above).
	TopFiles []FileAggregate `json:"topFiles,omitempty"`

	// ReductionPotential is the percentage of markers at tier high or
	// above, i.e. likely safe to remove from an active backlog.
	ReductionPotential float64 `json:"reductionPotential"`
}
