package marker

import "regexp"

// Pattern defines a task-marker detection pattern.
type Pattern struct {
	Name        string
	Kind        Kind
	Regex       *regexp.Regexp
	Description string
	Examples    []string // For testing
}

// BuiltinPatterns contains all builtin task-marker patterns, ordered
// most-specific-first: the parser takes the first match per line, so the
// anchored document forms (headings, checklist items) must come before the
// bare comment keyword they often contain. The capture group, when present,
// is the marker text.
var BuiltinPatterns = []Pattern{
	{
		Name:        "pending_section_header",
		Kind:        KindSectionHeader,
		Regex:       regexp.MustCompile(`(?i)^#{1,6}\s+.*\b(?:TODO|TBD|PENDING|OUTSTANDING|REMAINING)\b.*`),
		Description: "Markdown heading flagging pending work",
		Examples:    []string{"## TODO items", "### Remaining work"},
	},
	{
		Name:        "unchecked_checklist",
		Kind:        KindChecklist,
		Regex:       regexp.MustCompile(`^\s*[-*+]\s+\[ \]\s+(.*)`),
		Description: "Unchecked markdown checklist item",
		Examples:    []string{"- [ ] Add tests"},
	},
	{
		Name:        "todo_comment",
		Kind:        KindComment,
		Regex:       regexp.MustCompile(`(?i)\b(?:TODO|FIXME|HACK|XXX|BUG)\b[:\s]*(.*)`),
		Description: "Comment-style task keyword",
		Examples:    []string{"// TODO: wire up retries", "# FIXME handle empty input"},
	},
}

// checkedItem matches a completed checklist item so the parser can skip it.
// The completion-confidence engine still sees checked items that sit next to
// an unchecked marker, via file context.
var checkedItem = regexp.MustCompile(`^\s*[-*+]\s+\[[xX]\]`)
