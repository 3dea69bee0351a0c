package marker

import (
	"context"
	"regexp"
	"testing"

	"marksweep/internal/logging"
)

func newTestParser() *Parser {
	return NewParser(logging.NewDiscardLogger())
}

func TestParseMarkdownCheckistAndHeaders(t *testing.T) {
	content := `# Plan

## TODO items

- [x] Ship the parser
- [ ] Add tests
- [ ] Wire CI

Done on 2025-03-01.
`
	markers := newTestParser().ParseFile(context.Background(), "docs/PLAN.md", []byte(content))

	var checklists, headers int
	for _, m := range markers {
		switch m.Kind {
		case KindChecklist:
			checklists++
		case KindSectionHeader:
			headers++
		}
	}

	if checklists != 2 {
		t.Errorf("Expected 2 unchecked checklist items, got %d", checklists)
	}
	if headers != 1 {
		t.Errorf("Expected 1 section-header marker, got %d", headers)
	}
}

func TestParsePatternPrecedence(t *testing.T) {
	tests := []struct {
		name string
		line string
		kind Kind
	}{
		{"heading with keyword", "## TODO items\n", KindSectionHeader},
		{"checklist with keyword", "- [ ] TODO migrate the schema\n", KindChecklist},
		{"bare keyword", "TODO: plain note\n", KindComment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			markers := newTestParser().ParseFile(context.Background(), "NOTES.md", []byte(tt.line))
			if len(markers) != 1 {
				t.Fatalf("Expected 1 marker, got %d", len(markers))
			}
			if markers[0].Kind != tt.kind {
				t.Errorf("Expected kind %s, got %s", tt.kind, markers[0].Kind)
			}
		})
	}
}

func TestParseSkipsCheckedItems(t *testing.T) {
	content := "- [x] TODO revisit this later\n- [ ] actual work\n"
	markers := newTestParser().ParseFile(context.Background(), "notes.md", []byte(content))

	if len(markers) != 1 {
		t.Fatalf("Expected 1 marker, got %d", len(markers))
	}
	if markers[0].Text != "actual work" {
		t.Errorf("Expected marker text 'actual work', got %q", markers[0].Text)
	}
}

func TestParseGoCommentsOnly(t *testing.T) {
	content := `package demo

// TODO: handle overflow
func Add(a, b int) int {
	s := "TODO: not a marker, lives in a string"
	_ = s
	return a + b // FIXME rounding
}
`
	markers := newTestParser().ParseFile(context.Background(), "demo/add.go", []byte(content))

	for _, m := range markers {
		if m.LineNumber == 5 {
			t.Errorf("String literal on line 5 should not produce a marker: %+v", m)
		}
	}

	found := false
	for _, m := range markers {
		if m.LineNumber == 3 && m.Kind == KindComment {
			found = true
			if m.Text != "handle overflow" {
				t.Errorf("Expected stripped text 'handle overflow', got %q", m.Text)
			}
		}
	}
	if !found {
		t.Error("Expected a comment marker on line 3")
	}
}

func TestParseLineNumbersAndPath(t *testing.T) {
	content := "line one\n# TODO: second line\n"
	markers := newTestParser().ParseFile(context.Background(), "scripts/run.py", []byte(content))

	if len(markers) != 1 {
		t.Fatalf("Expected 1 marker, got %d", len(markers))
	}
	m := markers[0]
	if m.LineNumber != 2 {
		t.Errorf("Expected line 2, got %d", m.LineNumber)
	}
	if m.FilePath != "scripts/run.py" {
		t.Errorf("Expected path carried through, got %q", m.FilePath)
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Parsed marker should validate, got %v", err)
	}
}

func TestCustomPatterns(t *testing.T) {
	p := newTestParser()
	p.AddPatterns([]Pattern{
		{
			Name:  "review_tag",
			Kind:  KindComment,
			Regex: regexp.MustCompile(`(?i)\bREVIEW\b[:\s]*(.*)`),
		},
	})

	content := "// REVIEW: double-check the boundary\n"
	markers := p.ParseFile(context.Background(), "x.go", []byte(content))

	if len(markers) != 1 {
		t.Fatalf("Expected 1 marker from custom pattern, got %d", len(markers))
	}
	if markers[0].Text != "double-check the boundary" {
		t.Errorf("Unexpected text %q", markers[0].Text)
	}
}

func TestValidateRejectsMalformedMarkers(t *testing.T) {
	tests := []struct {
		name   string
		marker TaskMarker
	}{
		{"empty path", TaskMarker{FilePath: "", LineNumber: 1, Kind: KindComment}},
		{"zero line", TaskMarker{FilePath: "a.go", LineNumber: 0, Kind: KindComment}},
		{"negative line", TaskMarker{FilePath: "a.go", LineNumber: -4, Kind: KindComment}},
		{"unknown kind", TaskMarker{FilePath: "a.go", LineNumber: 1, Kind: Kind("wat")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.marker.Validate(); err == nil {
				t.Error("Expected validation error, got nil")
			}
		})
	}
}

func TestBuiltinPatternExamples(t *testing.T) {
	for _, pat := range BuiltinPatterns {
		for _, example := range pat.Examples {
			if !pat.Regex.MatchString(example) {
				t.Errorf("Pattern %s does not match its own example %q", pat.Name, example)
			}
		}
	}
}
