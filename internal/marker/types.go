// Package marker defines the task-marker model and the parser that extracts
// markers (TODO-style comments, markdown checklists, section headers) from
// raw file content.
package marker

import (
	"strings"

	"marksweep/internal/errors"
)

// Kind identifies the syntactic shape of a task marker.
type Kind string

const (
	// KindComment is a comment-style marker (TODO, FIXME, HACK, ...).
	KindComment Kind = "comment"
	// KindChecklist is an unchecked markdown checklist item.
	KindChecklist Kind = "checklist"
	// KindSectionHeader is a markdown heading that flags pending work.
	KindSectionHeader Kind = "section-header"
)

// TaskMarker is a single unresolved-work annotation. Immutable once
// constructed; analysis never mutates it.
type TaskMarker struct {
	// FilePath is relative to the scan root.
	FilePath string `json:"filePath"`

	// LineNumber is 1-based.
	LineNumber int `json:"lineNumber"`

	// Text is the marker's content with leading comment syntax stripped.
	Text string `json:"text"`

	// Kind is the marker's syntactic shape.
	Kind Kind `json:"kind"`
}

// Validate rejects malformed markers. A malformed marker is skipped with a
// per-record error; it never aborts a batch.
func (m TaskMarker) Validate() error {
	if strings.TrimSpace(m.FilePath) == "" {
		return errors.New(errors.MarkerInvalid, "marker has no file path", nil)
	}
	if m.LineNumber <= 0 {
		return errors.New(errors.MarkerInvalid, "marker line number must be positive", nil).
			WithDetails(map[string]interface{}{"filePath": m.FilePath, "lineNumber": m.LineNumber})
	}
	switch m.Kind {
	case KindComment, KindChecklist, KindSectionHeader:
	default:
		return errors.New(errors.MarkerInvalid, "unknown marker kind", nil).
			WithDetails(map[string]interface{}{"kind": string(m.Kind)})
	}
	return nil
}

// Language represents a source language the comment extractor understands.
type Language string

const (
	LangGo         Language = "go"
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
	LangTSX        Language = "tsx"
	LangPython     Language = "python"
	LangRust       Language = "rust"
	LangJava       Language = "java"
	LangMarkdown   Language = "markdown"
	LangText       Language = "text"
)

// LanguageFromExtension maps a lowercase file extension to a language.
func LanguageFromExtension(ext string) (Language, bool) {
	switch ext {
	case ".go":
		return LangGo, true
	case ".js", ".jsx", ".mjs":
		return LangJavaScript, true
	case ".ts":
		return LangTypeScript, true
	case ".tsx":
		return LangTSX, true
	case ".py":
		return LangPython, true
	case ".rs":
		return LangRust, true
	case ".java":
		return LangJava, true
	case ".md", ".markdown":
		return LangMarkdown, true
	case ".txt", ".rst", ".adoc":
		return LangText, true
	default:
		return "", false
	}
}

// IsDocumentLanguage reports whether every line of the file is prose, so
// markers may occur anywhere rather than only inside comments.
func (l Language) IsDocumentLanguage() bool {
	return l == LangMarkdown || l == LangText
}
