package confidence

import (
	"marksweep/internal/config"
	"marksweep/internal/marker"
)

// Extractor maps one task marker plus its file context to zero or more
// pieces of evidence. Extractors are pure: no shared state, no I/O, and they
// never fail a run — the analyzer swallows panics and treats them as an
// empty result.
type Extractor interface {
	// Name identifies the extractor in logs.
	Name() string

	// Extract returns the evidence this signal found for the marker.
	Extract(m marker.TaskMarker, fc *FileContext) []Evidence
}

// DefaultExtractors returns the builtin extractor set wired to the given
// analysis configuration. The set is open-ended: the aggregator does not
// care which extractors ran, so new signals are additive.
func DefaultExtractors(cfg config.AnalysisConfig) []Extractor {
	return []Extractor{
		newExplicitMarkerExtractor(cfg.Weights.ExplicitMarker),
		newArchivePathExtractor(cfg.ArchivePatterns, cfg.CurrentPhase,
			cfg.Weights.ArchiveDir, cfg.Weights.PhaseMismatch),
		newContextKeywordExtractor(cfg.ContextWindow, cfg.Weights.ContextKeyword,
			cfg.Weights.ContextKeywordCap, cfg.ExtraKeywords),
		newDocumentHeaderExtractor(cfg.DocStalenessDays, cfg.Weights.DocumentHeader),
	}
}
