package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"marksweep/internal/confidence"
	"marksweep/internal/config"
	"marksweep/internal/history"
	"marksweep/internal/logging"
	"marksweep/internal/project"
	"marksweep/internal/rules"
	"marksweep/internal/scanner"
)

// pipeline bundles everything one analysis run needs.
type pipeline struct {
	repoRoot string
	cfg      *config.Config
	logger   *logging.Logger
	scanner  *scanner.Scanner
	analyzer *confidence.Analyzer
}

// buildPipeline assembles scanner and analyzer from config, rules, manifest
// phase detection, and git history.
func buildPipeline(ctx context.Context, repoRoot string, cfg *config.Config, logger *logging.Logger) (*pipeline, error) {
	stateDir := config.StateDir(repoRoot)

	ruleSet, err := rules.Load(stateDir)
	if err != nil {
		return nil, err
	}
	ruleSet.Apply(cfg)

	if cfg.Analysis.CurrentPhase == 0 {
		meta, err := project.Detect(repoRoot)
		if err != nil {
			logger.Warn("Manifest detection failed", map[string]interface{}{
				"error": err.Error(),
			})
		} else if meta.Phase > 0 {
			logger.Debug("Detected current phase from manifest", map[string]interface{}{
				"manifest": meta.Manifest,
				"phase":    meta.Phase,
			})
			cfg.Analysis.CurrentPhase = meta.Phase
		}
	}

	sc := scanner.NewScanner(repoRoot, cfg.Scan, logger)
	sc.AddPatterns(ruleSet.MarkerPatterns())

	var enricher *confidence.StalenessEnricher
	if fn := history.NewGitProvider(repoRoot).Capability(ctx); fn != nil {
		enricher = confidence.NewStalenessEnricher(
			fn,
			cfg.Analysis.StalenessDays,
			cfg.Analysis.Weights.StaleFile,
			time.Duration(cfg.Analysis.HistoryTimeoutMs)*time.Millisecond,
			logger,
		)
	} else {
		logger.Debug("Git history unavailable, staleness evidence disabled", nil)
	}

	return &pipeline{
		repoRoot: repoRoot,
		cfg:      cfg,
		logger:   logger,
		scanner:  sc,
		analyzer: confidence.NewAnalyzer(cfg.Analysis, enricher, logger),
	}, nil
}

// run scans and analyzes the repository.
func (p *pipeline) run(ctx context.Context) (*scanner.ScanResult, []confidence.ConfidenceResult, confidence.BatchSummary, error) {
	scan, err := p.scanner.Scan(ctx)
	if err != nil {
		return nil, nil, confidence.BatchSummary{}, fmt.Errorf("scan failed: %w", err)
	}

	results, err := p.analyzer.Analyze(ctx, scan.Markers, p.scanner)
	if err != nil {
		return nil, nil, confidence.BatchSummary{}, fmt.Errorf("analysis failed: %w", err)
	}

	return scan, results, confidence.Summarize(results), nil
}

// mustBuildPipeline is buildPipeline or exit.
func mustBuildPipeline(ctx context.Context, repoRoot string, cfg *config.Config, logger *logging.Logger) *pipeline {
	p, err := buildPipeline(ctx, repoRoot, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return p
}
