package confidence

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"marksweep/internal/logging"
)

func fixedNow() time.Time {
	return time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
}

func TestStalenessEnricherStaleFile(t *testing.T) {
	fn := func(ctx context.Context, path string) (time.Time, bool, error) {
		return fixedNow().AddDate(0, 0, -400), true, nil
	}
	e := NewStalenessEnricher(fn, 180, 0.25, 2*time.Second, logging.NewDiscardLogger())
	e.now = fixedNow

	got := e.Enrich(context.Background(), mdMarker("docs/plan.md", 1, "x"))
	if len(got) != 1 {
		t.Fatalf("Expected 1 stale-file evidence, got %d", len(got))
	}
	if got[0].Kind != KindStaleFile {
		t.Errorf("Expected stale-file kind, got %s", got[0].Kind)
	}
	if got[0].Weight != 0.25 {
		t.Errorf("Expected weight 0.25, got %f", got[0].Weight)
	}
}

func TestStalenessEnricherRecentFile(t *testing.T) {
	fn := func(ctx context.Context, path string) (time.Time, bool, error) {
		return fixedNow().AddDate(0, 0, -30), true, nil
	}
	e := NewStalenessEnricher(fn, 180, 0.25, 2*time.Second, logging.NewDiscardLogger())
	e.now = fixedNow

	if got := e.Enrich(context.Background(), mdMarker("docs/plan.md", 1, "x")); len(got) != 0 {
		t.Errorf("Expected no evidence for a recent file, got %+v", got)
	}
}

func TestStalenessEnricherUnavailable(t *testing.T) {
	fn := func(ctx context.Context, path string) (time.Time, bool, error) {
		return time.Time{}, false, nil
	}
	e := NewStalenessEnricher(fn, 180, 0.25, 2*time.Second, logging.NewDiscardLogger())

	if got := e.Enrich(context.Background(), mdMarker("docs/plan.md", 1, "x")); len(got) != 0 {
		t.Errorf("Expected no evidence when provider has no answer, got %+v", got)
	}
}

func TestStalenessEnricherNilIsDisabled(t *testing.T) {
	var e *StalenessEnricher
	if got := e.Enrich(context.Background(), mdMarker("docs/plan.md", 1, "x")); got != nil {
		t.Errorf("Nil enricher must contribute nothing, got %+v", got)
	}

	e = NewStalenessEnricher(nil, 180, 0.25, 2*time.Second, logging.NewDiscardLogger())
	if got := e.Enrich(context.Background(), mdMarker("docs/plan.md", 1, "x")); got != nil {
		t.Errorf("Enricher without provider must contribute nothing, got %+v", got)
	}
}

func TestStalenessEnricherErrorLoggedOncePerRun(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewLogger(logging.Config{
		Format: logging.HumanFormat,
		Level:  logging.WarnLevel,
		Output: &buf,
	})

	fn := func(ctx context.Context, path string) (time.Time, bool, error) {
		return time.Time{}, false, errors.New("git not found")
	}
	e := NewStalenessEnricher(fn, 180, 0.25, 2*time.Second, logger)

	for i := 0; i < 5; i++ {
		if got := e.Enrich(context.Background(), mdMarker("docs/plan.md", 1, "x")); len(got) != 0 {
			t.Fatalf("Expected degradation to no evidence, got %+v", got)
		}
	}

	if n := strings.Count(buf.String(), "Version-history provider unavailable"); n != 1 {
		t.Errorf("Expected exactly 1 warning for the whole run, got %d", n)
	}
}

func TestStalenessEnricherTimeout(t *testing.T) {
	fn := func(ctx context.Context, path string) (time.Time, bool, error) {
		select {
		case <-time.After(5 * time.Second):
			return fixedNow(), true, nil
		case <-ctx.Done():
			return time.Time{}, false, ctx.Err()
		}
	}
	e := NewStalenessEnricher(fn, 180, 0.25, 10*time.Millisecond, logging.NewDiscardLogger())

	start := time.Now()
	got := e.Enrich(context.Background(), mdMarker("docs/plan.md", 1, "x"))
	if len(got) != 0 {
		t.Errorf("Expected timeout to degrade to no evidence, got %+v", got)
	}
	if time.Since(start) > time.Second {
		t.Error("Timeout was not enforced")
	}
}
