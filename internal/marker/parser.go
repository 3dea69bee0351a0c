package marker

import (
	"context"
	"path/filepath"
	"strings"

	"marksweep/internal/logging"
)

// Parser extracts task markers from file content. For source files it only
// inspects comment text: tree-sitter comment spans when available, a prefix
// heuristic otherwise. Document files (markdown, plain text) are scanned
// line by line.
type Parser struct {
	patterns  []Pattern
	extractor *CommentExtractor
	logger    *logging.Logger
}

// NewParser creates a parser with the builtin patterns.
func NewParser(logger *logging.Logger) *Parser {
	return &Parser{
		patterns:  BuiltinPatterns,
		extractor: NewCommentExtractor(),
		logger:    logger,
	}
}

// AddPatterns appends custom patterns (from a rules file) to the builtin set.
func (p *Parser) AddPatterns(patterns []Pattern) {
	p.patterns = append(p.patterns, patterns...)
}

// ParseFile extracts all task markers from one file's content. path is used
// for language detection and carried into each marker; it is never read from
// disk here.
func (p *Parser) ParseFile(ctx context.Context, path string, content []byte) []TaskMarker {
	lang, known := LanguageFromExtension(strings.ToLower(filepath.Ext(path)))
	if !known {
		lang = LangText
	}

	lines := strings.Split(string(content), "\n")

	var commentLines map[int]bool
	if !lang.IsDocumentLanguage() {
		commentLines = p.commentLineSet(ctx, path, content, lang, len(lines))
	}

	markers := make([]TaskMarker, 0)
	for i, line := range lines {
		lineNo := i + 1

		if commentLines != nil && !commentLines[lineNo] {
			continue
		}
		// A checked item that happens to contain a task keyword is already
		// resolved, not a marker.
		if checkedItem.MatchString(line) {
			continue
		}

		for _, pat := range p.patterns {
			m := pat.Regex.FindStringSubmatch(line)
			if m == nil {
				continue
			}

			text := strings.TrimSpace(line)
			if len(m) > 1 && strings.TrimSpace(m[1]) != "" {
				text = strings.TrimSpace(m[1])
			}

			markers = append(markers, TaskMarker{
				FilePath:   path,
				LineNumber: lineNo,
				Text:       text,
				Kind:       pat.Kind,
			})
			break // one marker per line, first pattern wins
		}
	}

	return markers
}

// commentLineSet returns the set of 1-based line numbers that belong to
// comments. Falls back to a prefix heuristic when tree-sitter is not
// compiled in or the language is unsupported.
func (p *Parser) commentLineSet(ctx context.Context, path string, content []byte, lang Language, lineCount int) map[int]bool {
	if p.extractor != nil && p.extractor.Supports(lang) {
		set, err := p.extractor.CommentLines(ctx, content, lang)
		if err == nil {
			return set
		}
		p.logger.Debug("Comment extraction failed, using heuristic", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
	}

	return heuristicCommentLines(content, lang)
}

// heuristicCommentLines marks lines whose first non-blank characters start a
// line comment. Block comments are matched only on their opening line, which
// is where task keywords sit in practice.
func heuristicCommentLines(content []byte, lang Language) map[int]bool {
	prefixes := commentPrefixes(lang)
	set := make(map[int]bool)

	for i, line := range strings.Split(string(content), "\n") {
		trimmed := strings.TrimSpace(line)
		for _, prefix := range prefixes {
			if strings.HasPrefix(trimmed, prefix) {
				set[i+1] = true
				break
			}
		}
	}

	return set
}

func commentPrefixes(lang Language) []string {
	switch lang {
	case LangPython:
		return []string{"#", `"""`}
	case LangGo, LangJavaScript, LangTypeScript, LangTSX, LangRust, LangJava:
		return []string{"//", "/*", "*"}
	default:
		return []string{"//", "/*", "*", "#"}
	}
}
