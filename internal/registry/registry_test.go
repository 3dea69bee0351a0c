package registry

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"marksweep/internal/confidence"
	"marksweep/internal/errors"
	"marksweep/internal/marker"
)

func result(path string, line int, text string, score float64, tier confidence.Tier) confidence.ConfidenceResult {
	return confidence.ConfidenceResult{
		Marker: marker.TaskMarker{
			FilePath:   path,
			LineNumber: line,
			Text:       text,
			Kind:       marker.KindChecklist,
		},
		Score:          score,
		Tier:           tier,
		Recommendation: tier.Recommendation(),
	}
}

func TestUpsertAndRoundTrip(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

	reg := New()
	added, updated := reg.Upsert([]confidence.ConfidenceResult{
		result("docs/_archive/PLAN.md", 12, "add tests", 92.1, confidence.TierVeryHigh),
		result("src/main.go", 40, "handle EINTR", 0, confidence.TierActive),
	}, now)
	if added != 2 || updated != 0 {
		t.Fatalf("added=%d updated=%d, want 2/0", added, updated)
	}

	if err := reg.Save(dir); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Len() != 2 {
		t.Fatalf("loaded %d entries, want 2", loaded.Len())
	}

	e, ok := loaded.Get(EntryID("docs/_archive/PLAN.md", "add tests"))
	if !ok {
		t.Fatal("archived marker missing after round trip")
	}
	if e.Status != StatusFlagged {
		t.Errorf("status = %s, want flagged for a safe-to-close result", e.Status)
	}
	if e.Score != 92.1 || e.Tier != "very-high" {
		t.Errorf("score/tier = %v/%s", e.Score, e.Tier)
	}
	if !e.UpdatedAt.Equal(now) {
		t.Errorf("updatedAt = %v, want %v", e.UpdatedAt, now)
	}

	active, ok := loaded.Get(EntryID("src/main.go", "handle EINTR"))
	if !ok {
		t.Fatal("active marker missing after round trip")
	}
	if active.Status != StatusOpen {
		t.Errorf("status = %s, want open for an active result", active.Status)
	}
}

func TestUpsertPreservesClosedStatus(t *testing.T) {
	reg := New()
	now := time.Now().UTC()
	reg.Upsert([]confidence.ConfidenceResult{
		result("a.md", 1, "thing", 95, confidence.TierVeryHigh),
	}, now)

	id := EntryID("a.md", "thing")
	if err := reg.SetStatus(id, StatusClosed); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}

	added, updated := reg.Upsert([]confidence.ConfidenceResult{
		result("a.md", 3, "thing", 96, confidence.TierVeryHigh),
	}, now)
	if added != 0 || updated != 1 {
		t.Fatalf("added=%d updated=%d, want 0/1", added, updated)
	}

	e, _ := reg.Get(id)
	if e.Status != StatusClosed {
		t.Errorf("status = %s, closed entries must stay closed", e.Status)
	}
	if e.LineNumber != 3 {
		t.Errorf("lineNumber = %d, want refreshed to 3", e.LineNumber)
	}
}

func TestEntryIDStableAcrossLines(t *testing.T) {
	a := EntryID("docs/PLAN.md", "add tests")
	b := EntryID("docs/PLAN.md", "add tests")
	c := EntryID("docs/OTHER.md", "add tests")
	if a != b {
		t.Error("same path and text must hash identically")
	}
	if a == c {
		t.Error("different paths must hash differently")
	}
}

func TestEntriesSorted(t *testing.T) {
	reg := New()
	now := time.Now().UTC()
	reg.Upsert([]confidence.ConfidenceResult{
		result("b.md", 5, "two", 10, confidence.TierActive),
		result("a.md", 9, "three", 10, confidence.TierActive),
		result("a.md", 2, "one", 10, confidence.TierActive),
	}, now)

	entries := reg.Entries()
	if entries[0].FilePath != "a.md" || entries[0].LineNumber != 2 {
		t.Errorf("entries[0] = %s:%d", entries[0].FilePath, entries[0].LineNumber)
	}
	if entries[2].FilePath != "b.md" {
		t.Errorf("entries[2] = %s", entries[2].FilePath)
	}
}

func TestLoadMissingFile(t *testing.T) {
	reg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if reg.Len() != 0 {
		t.Errorf("expected empty registry, got %d entries", reg.Len())
	}
}

func TestLoadCorruptFile(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"bad field count", "id,file_path\nx,y\n"},
		{"bad line number", "abc,a.md,NaN,text,open,50.0,medium,2026-01-01T00:00:00Z\n"},
		{"bad status", "abc,a.md,1,text,maybe,50.0,medium,2026-01-01T00:00:00Z\n"},
		{"bad timestamp", "abc,a.md,1,text,open,50.0,medium,yesterday\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, RegistryFile), []byte(tc.content), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(dir)
			if err == nil {
				t.Fatal("expected an error")
			}
			var se *errors.SweepError
			if !errors.As(err, &se) || se.Code != errors.RegistryCorrupt {
				t.Errorf("expected REGISTRY_CORRUPT, got %v", err)
			}
		})
	}
}
