package scanner

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"marksweep/internal/config"
	"marksweep/internal/logging"
	"marksweep/internal/marker"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func newTestScanner(root string) *Scanner {
	return NewScanner(root, config.DefaultConfig().Scan, logging.NewDiscardLogger())
}

func TestScanFindsMarkersAcrossFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "docs/PLAN.md", "# Plan\n\n- [ ] write docs\n- [x] ship it\n")
	writeFile(t, root, "src/main.go", "package main\n\n// TODO: add flags\n")
	writeFile(t, root, "image.png", "not scanned")

	result, err := newTestScanner(root).Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if len(result.Markers) != 2 {
		t.Fatalf("Expected 2 markers, got %d: %+v", len(result.Markers), result.Markers)
	}

	// Markers are sorted by path then line.
	if result.Markers[0].FilePath != "docs/PLAN.md" {
		t.Errorf("Expected docs marker first, got %s", result.Markers[0].FilePath)
	}
	if result.Markers[1].FilePath != "src/main.go" {
		t.Errorf("Expected source marker second, got %s", result.Markers[1].FilePath)
	}
	if result.FilesScanned != 2 {
		t.Errorf("Expected 2 files scanned, got %d", result.FilesScanned)
	}
}

func TestScanHonorsExcludePaths(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "node_modules/pkg/README.md", "- [ ] vendored task\n")
	writeFile(t, root, "docs/notes.md", "- [ ] real task\n")

	result, err := newTestScanner(root).Scan(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if len(result.Markers) != 1 {
		t.Fatalf("Expected 1 marker, got %d", len(result.Markers))
	}
	if result.Markers[0].FilePath != "docs/notes.md" {
		t.Errorf("Expected only docs marker, got %s", result.Markers[0].FilePath)
	}
}

func TestScanHonorsGitignore(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".gitignore", "tmp/\n*.log.md\n")
	writeFile(t, root, "tmp/scratch.md", "- [ ] ignored\n")
	writeFile(t, root, "debug.log.md", "- [ ] also ignored\n")
	writeFile(t, root, "keep.md", "- [ ] kept\n")

	result, err := newTestScanner(root).Scan(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if len(result.Markers) != 1 {
		t.Fatalf("Expected 1 marker, got %d: %+v", len(result.Markers), result.Markers)
	}
	if result.Markers[0].FilePath != "keep.md" {
		t.Errorf("Expected keep.md, got %s", result.Markers[0].FilePath)
	}
}

func TestScanSkipsOversizedFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "big.md", "- [ ] task in a big file\n")

	cfg := config.DefaultConfig().Scan
	cfg.MaxFileSizeBytes = 5
	s := NewScanner(root, cfg, logging.NewDiscardLogger())

	result, err := s.Scan(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Markers) != 0 {
		t.Errorf("Expected oversized file skipped, got %+v", result.Markers)
	}
}

func TestContextProvider(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "docs/PLAN.md", "line one\nline two\nline three\n")

	s := newTestScanner(root)

	fc, err := s.Context(context.Background(), "docs/PLAN.md")
	if err != nil {
		t.Fatalf("Context failed: %v", err)
	}
	if !fc.Available() {
		t.Fatal("Expected available context")
	}
	if fc.Line(2) != "line two" {
		t.Errorf("Expected 'line two', got %q", fc.Line(2))
	}

	// Missing files degrade to an unavailable context, with the error
	// surfaced to the caller.
	fc, err = s.Context(context.Background(), "missing.md")
	if err == nil {
		t.Error("Expected error for missing file")
	}
	if fc.Available() {
		t.Error("Expected unavailable context for missing file")
	}
}

func TestScanCustomPattern(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "notes.md", "REVIEW: check the rollout plan\n")

	s := newTestScanner(root)
	s.AddPatterns([]marker.Pattern{
		{
			Name:  "review_tag",
			Kind:  marker.KindComment,
			Regex: regexp.MustCompile(`(?i)\bREVIEW\b[:\s]*(.*)`),
		},
	})

	result, err := s.Scan(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Markers) != 1 {
		t.Fatalf("Expected 1 marker from custom pattern, got %d", len(result.Markers))
	}
	if result.Markers[0].Text != "check the rollout plan" {
		t.Errorf("Unexpected marker text %q", result.Markers[0].Text)
	}
}
