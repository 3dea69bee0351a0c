package confidence

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"marksweep/internal/marker"
)

// contextKeywordExtractor scans a window of lines around the marker for
// language implying the work shipped. Each distinct keyword category counts
// once, and the total weight a marker can accumulate from this signal is
// capped (by default two categories' worth).
type contextKeywordExtractor struct {
	window        int
	weight        float64
	maxCategories int
	categories    []keywordCategory
}

func newContextKeywordExtractor(window int, weight, weightCap float64, extraKeywords []string) *contextKeywordExtractor {
	categories := keywordCategories
	for _, kw := range extraKeywords {
		categories = append(categories, keywordCategory{
			name:  kw,
			regex: regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(kw) + `\b`),
		})
	}

	maxCategories := defaultKeywordCategories
	if weight > 0 && weightCap > 0 {
		// Round instead of truncating: 0.6/0.2 lands just under 3 in
		// float arithmetic.
		maxCategories = int(math.Round(weightCap / weight))
		if maxCategories < 1 {
			maxCategories = 1
		}
	}

	return &contextKeywordExtractor{
		window:        window,
		weight:        weight,
		maxCategories: maxCategories,
		categories:    categories,
	}
}

func (e *contextKeywordExtractor) Name() string {
	return "context-keyword"
}

// defaultKeywordCategories bounds stacking when no weight cap is configured.
const defaultKeywordCategories = 2

type keywordCategory struct {
	name  string
	regex *regexp.Regexp
}

var keywordCategories = []keywordCategory{
	{"deployed", regexp.MustCompile(`(?i)\bdeployed\b`)},
	{"released", regexp.MustCompile(`(?i)\breleased\b`)},
	{"shipped", regexp.MustCompile(`(?i)\bshipped\b`)},
	{"completed-on", regexp.MustCompile(`(?i)\bcompleted on\b`)},
	{"date", regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)},
}

func (e *contextKeywordExtractor) Extract(m marker.TaskMarker, fc *FileContext) []Evidence {
	window := fc.Window(m.LineNumber, e.window)
	if len(window) == 0 {
		return nil
	}
	blob := strings.Join(window, "\n")

	var out []Evidence
	for _, cat := range e.categories {
		if !cat.regex.MatchString(blob) {
			continue
		}
		out = append(out, MustEvidence(KindContextKeyword, e.weight,
			fmt.Sprintf("nearby lines mention %s", cat.name)))
		if len(out) == e.maxCategories {
			break
		}
	}
	return out
}
