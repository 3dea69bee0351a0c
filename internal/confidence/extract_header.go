package confidence

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"marksweep/internal/marker"
)

// documentHeaderExtractor inspects the top of the containing document for
// metadata that marks the whole document obsolete: a status field set to a
// superseded/archived value, or a header date older than the staleness
// threshold. YAML front matter is parsed when present; otherwise plain
// "Key: value" header lines are matched.
type documentHeaderExtractor struct {
	staleDays int
	weight    float64
	now       func() time.Time
}

func newDocumentHeaderExtractor(staleDays int, weight float64) *documentHeaderExtractor {
	return &documentHeaderExtractor{
		staleDays: staleDays,
		weight:    weight,
		now:       time.Now,
	}
}

func (e *documentHeaderExtractor) Name() string {
	return "document-header"
}

// headLines is how far into the document header metadata may appear.
const headLines = 15

var (
	obsoleteStatus  = regexp.MustCompile(`(?i)^\s*status\s*:\s*["']?(superseded|archived|obsolete|deprecated)\b`)
	headerDateLine  = regexp.MustCompile(`(?i)^\s*(?:date|updated|last[-_ ]updated)\s*:\s*["']?(\d{4}-\d{2}-\d{2})`)
	obsoleteValues  = map[string]bool{"superseded": true, "archived": true, "obsolete": true, "deprecated": true}
	headerDateKeys  = []string{"date", "updated", "last_updated", "lastUpdated", "last-updated"}
	frontMatterOpen = "---"
)

func (e *documentHeaderExtractor) Extract(m marker.TaskMarker, fc *FileContext) []Evidence {
	head := fc.Head(headLines)
	if len(head) == 0 {
		return nil
	}

	if strings.TrimSpace(head[0]) == frontMatterOpen {
		if ev := e.fromFrontMatter(fc); ev != nil {
			return ev
		}
	}

	return e.fromPlainHeader(head)
}

// fromFrontMatter parses a YAML front matter block. Returns nil when the
// block is absent or unparseable so the plain-header scan can still run.
func (e *documentHeaderExtractor) fromFrontMatter(fc *FileContext) []Evidence {
	var block []string
	for i := 2; i <= fc.LineCount() && i <= 50; i++ {
		line := fc.Line(i)
		if strings.TrimSpace(line) == frontMatterOpen {
			break
		}
		block = append(block, line)
	}
	if len(block) == 0 {
		return nil
	}

	var meta map[string]interface{}
	if err := yaml.Unmarshal([]byte(strings.Join(block, "\n")), &meta); err != nil {
		return nil
	}

	var out []Evidence

	if status, ok := meta["status"].(string); ok {
		if obsoleteValues[strings.ToLower(strings.TrimSpace(status))] {
			out = append(out, MustEvidence(KindDocumentHeader, e.weight,
				fmt.Sprintf("front matter status is %q", strings.ToLower(status))))
		}
	}

	for _, key := range headerDateKeys {
		raw, ok := meta[key]
		if !ok {
			continue
		}
		if t, ok := parseHeaderDate(raw); ok && e.isStale(t) {
			out = append(out, MustEvidence(KindDocumentHeader, e.weight,
				fmt.Sprintf("front matter %s is %s, older than %d days", key, t.Format("2006-01-02"), e.staleDays)))
			break
		}
	}

	return out
}

func (e *documentHeaderExtractor) fromPlainHeader(head []string) []Evidence {
	var out []Evidence

	for _, line := range head {
		if m := obsoleteStatus.FindStringSubmatch(line); m != nil {
			out = append(out, MustEvidence(KindDocumentHeader, e.weight,
				fmt.Sprintf("document header status is %q", strings.ToLower(m[1]))))
			continue
		}
		if m := headerDateLine.FindStringSubmatch(line); m != nil {
			if t, err := time.Parse("2006-01-02", m[1]); err == nil && e.isStale(t) {
				out = append(out, MustEvidence(KindDocumentHeader, e.weight,
					fmt.Sprintf("document header date %s is older than %d days", m[1], e.staleDays)))
			}
		}
	}

	return out
}

func (e *documentHeaderExtractor) isStale(t time.Time) bool {
	return e.now().Sub(t) > time.Duration(e.staleDays)*24*time.Hour
}

// parseHeaderDate accepts the value shapes yaml produces for dates.
func parseHeaderDate(raw interface{}) (time.Time, bool) {
	switch v := raw.(type) {
	case time.Time:
		return v, true
	case string:
		if t, err := time.Parse("2006-01-02", strings.TrimSpace(v)); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
