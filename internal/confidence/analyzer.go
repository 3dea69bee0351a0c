package confidence

import (
	"context"
	"sync"

	"marksweep/internal/config"
	"marksweep/internal/logging"
	"marksweep/internal/marker"
)

// Analyzer runs the confidence pipeline over a batch of markers. It is
// stateless across runs: every call to Analyze builds fresh results and the
// analyzer owns no storage.
type Analyzer struct {
	cfg        config.AnalysisConfig
	extractors []Extractor
	enricher   *StalenessEnricher
	logger     *logging.Logger
}

// NewAnalyzer creates an analyzer with the builtin extractor set. enricher
// may be nil to disable staleness evidence.
func NewAnalyzer(cfg config.AnalysisConfig, enricher *StalenessEnricher, logger *logging.Logger) *Analyzer {
	return &Analyzer{
		cfg:        cfg,
		extractors: DefaultExtractors(cfg),
		enricher:   enricher,
		logger:     logger,
	}
}

// RegisterExtractor appends an additional signal. The aggregator is agnostic
// to which extractors ran, so extra signals are purely additive.
func (a *Analyzer) RegisterExtractor(e Extractor) {
	a.extractors = append(a.extractors, e)
}

// Analyze scores every valid marker and returns results in input order.
// Malformed markers are rejected individually and logged; they never abort
// the batch. Markers are independent, so they are processed by a bounded
// worker pool; for fixed inputs and enrichment answers the output is
// identical regardless of parallelism.
func (a *Analyzer) Analyze(ctx context.Context, markers []marker.TaskMarker, contexts ContextProvider) ([]ConfidenceResult, error) {
	if len(markers) == 0 {
		return []ConfidenceResult{}, nil
	}

	workers := a.cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > len(markers) {
		workers = len(markers)
	}

	results := make([]*ConfidenceResult, len(markers))
	indexes := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				results[i] = a.analyzeOne(ctx, markers[i], contexts)
			}
		}()
	}

	for i := range markers {
		select {
		case indexes <- i:
		case <-ctx.Done():
			close(indexes)
			wg.Wait()
			return nil, ctx.Err()
		}
	}
	close(indexes)
	wg.Wait()

	out := make([]ConfidenceResult, 0, len(markers))
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out, nil
}

// analyzeOne runs the full pipeline for a single marker. Returns nil for
// markers that fail validation.
func (a *Analyzer) analyzeOne(ctx context.Context, m marker.TaskMarker, contexts ContextProvider) *ConfidenceResult {
	if err := m.Validate(); err != nil {
		a.logger.Warn("Skipping malformed marker", map[string]interface{}{
			"path":  m.FilePath,
			"line":  m.LineNumber,
			"error": err.Error(),
		})
		return nil
	}

	fc := a.fileContext(ctx, m, contexts)

	var evidence []Evidence
	for _, extractor := range a.extractors {
		evidence = append(evidence, a.runExtractor(extractor, m, fc)...)
	}
	evidence = append(evidence, a.enricher.Enrich(ctx, m)...)

	score := AggregateScore(evidence)
	tier := Classify(score, a.cfg.Thresholds)

	return &ConfidenceResult{
		Marker:         m,
		Score:          score,
		Tier:           tier,
		Recommendation: tier.Recommendation(),
		Reasons:        Reasons(evidence),
	}
}

func (a *Analyzer) fileContext(ctx context.Context, m marker.TaskMarker, contexts ContextProvider) *FileContext {
	if contexts == nil {
		return NoContext(m.FilePath)
	}

	fc, err := contexts.Context(ctx, m.FilePath)
	if err != nil || fc == nil {
		a.logger.Debug("File context unavailable", map[string]interface{}{
			"path": m.FilePath,
		})
		return NoContext(m.FilePath)
	}
	return fc
}

// runExtractor isolates one extractor call. A panicking extractor yields no
// evidence instead of failing the run.
func (a *Analyzer) runExtractor(e Extractor, m marker.TaskMarker, fc *FileContext) (out []Evidence) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Warn("Extractor failed, contributing no evidence", map[string]interface{}{
				"extractor": e.Name(),
				"path":      m.FilePath,
				"line":      m.LineNumber,
				"panic":     r,
			})
			out = nil
		}
	}()
	return e.Extract(m, fc)
}
