package confidence

import (
	"fmt"
	"regexp"
	"strings"

	"marksweep/internal/marker"
)

// explicitMarkerExtractor matches completion indicators in the marker's own
// text or the single line before/after it: checked boxes, checkmark glyphs,
// strikethrough, or explicit completion words.
type explicitMarkerExtractor struct {
	weight float64
}

func newExplicitMarkerExtractor(weight float64) *explicitMarkerExtractor {
	return &explicitMarkerExtractor{weight: weight}
}

func (e *explicitMarkerExtractor) Name() string {
	return "explicit-marker"
}

var (
	checkedBox     = regexp.MustCompile(`\[[xX]\]`)
	checkmarkGlyph = regexp.MustCompile(`[✓✔☑]`)
	strikethrough  = regexp.MustCompile(`~~[^~]+~~`)
	completionWord = regexp.MustCompile(`(?i)\b(done|completed|fixed|resolved)\b`)
)

func (e *explicitMarkerExtractor) Extract(m marker.TaskMarker, fc *FileContext) []Evidence {
	candidates := []struct {
		where string
		text  string
	}{
		{"marker text", m.Text},
		{"previous line", fc.Line(m.LineNumber - 1)},
		{"next line", fc.Line(m.LineNumber + 1)},
	}

	var out []Evidence
	for _, c := range candidates {
		if c.text == "" {
			continue
		}
		for _, ind := range explicitIndicators(c.text) {
			out = append(out, MustEvidence(KindExplicitMarker, e.weight,
				fmt.Sprintf("%s in %s", ind, c.where)))
		}
	}
	return out
}

// explicitIndicators names every completion indicator present in the text.
func explicitIndicators(text string) []string {
	var found []string
	if checkedBox.MatchString(text) {
		found = append(found, "checked box")
	}
	if checkmarkGlyph.MatchString(text) {
		found = append(found, "checkmark symbol")
	}
	if strikethrough.MatchString(text) {
		found = append(found, "strikethrough")
	}
	if w := completionWord.FindString(text); w != "" {
		found = append(found, fmt.Sprintf("completion word %q", strings.ToLower(w)))
	}
	return found
}
