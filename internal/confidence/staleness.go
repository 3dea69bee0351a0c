package confidence

import (
	"context"
	"fmt"
	"sync"
	"time"

	"marksweep/internal/logging"
	"marksweep/internal/marker"
)

// LastModifiedFunc reports when a file last changed. ok=false means the
// provider has no answer for this path (not tracked, no history access);
// that is not an error.
type LastModifiedFunc func(ctx context.Context, filePath string) (modified time.Time, ok bool, err error)

// StalenessEnricher adds a stale-file evidence fact when a file has not
// changed in longer than the configured window. It is the only evidence
// source allowed to touch an external system, so it is injectable and
// degrades to "no evidence" when the provider is missing, erroring, or slow.
type StalenessEnricher struct {
	lastModified LastModifiedFunc
	staleDays    int
	weight       float64
	timeout      time.Duration
	logger       *logging.Logger
	now          func() time.Time

	warnOnce sync.Once
}

// NewStalenessEnricher wires the enricher to a last-modified provider.
// A nil provider disables the enricher entirely.
func NewStalenessEnricher(fn LastModifiedFunc, staleDays int, weight float64, timeout time.Duration, logger *logging.Logger) *StalenessEnricher {
	return &StalenessEnricher{
		lastModified: fn,
		staleDays:    staleDays,
		weight:       weight,
		timeout:      timeout,
		logger:       logger,
		now:          time.Now,
	}
}

// Enrich returns at most one stale-file evidence for the marker's file.
// Provider failure or timeout degrades silently; the warning is logged once
// per enricher (one run uses one enricher) to avoid flooding.
func (e *StalenessEnricher) Enrich(ctx context.Context, m marker.TaskMarker) []Evidence {
	if e == nil || e.lastModified == nil {
		return nil
	}

	callCtx := ctx
	if e.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	modified, ok, err := e.lastModified(callCtx, m.FilePath)
	if err != nil {
		e.warnOnce.Do(func() {
			e.logger.Warn("Version-history provider unavailable, staleness evidence disabled", map[string]interface{}{
				"error": err.Error(),
			})
		})
		return nil
	}
	if !ok {
		return nil
	}

	age := e.now().Sub(modified)
	threshold := time.Duration(e.staleDays) * 24 * time.Hour
	if age <= threshold {
		return nil
	}

	days := int(age.Hours() / 24)
	return []Evidence{MustEvidence(KindStaleFile, e.weight,
		fmt.Sprintf("file unmodified for %d days (threshold %d)", days, e.staleDays))}
}
