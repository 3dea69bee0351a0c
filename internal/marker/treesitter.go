//go:build cgo

package marker

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// CommentExtractor locates comment spans in source files via tree-sitter.
type CommentExtractor struct {
	parser *sitter.Parser
}

// NewCommentExtractor creates a tree-sitter backed comment extractor.
func NewCommentExtractor() *CommentExtractor {
	return &CommentExtractor{
		parser: sitter.NewParser(),
	}
}

// Supports reports whether the extractor has a grammar for the language.
func (e *CommentExtractor) Supports(lang Language) bool {
	_, err := getLanguage(lang)
	return err == nil
}

// CommentLines parses the source and returns the set of 1-based line numbers
// covered by comment nodes.
func (e *CommentExtractor) CommentLines(ctx context.Context, source []byte, lang Language) (map[int]bool, error) {
	tsLang, err := getLanguage(lang)
	if err != nil {
		return nil, err
	}

	e.parser.SetLanguage(tsLang)
	tree, err := e.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	set := make(map[int]bool)
	collectCommentLines(tree.RootNode(), set)
	return set, nil
}

func collectCommentLines(node *sitter.Node, set map[int]bool) {
	if node == nil {
		return
	}

	if isCommentNodeType(node.Type()) {
		start := int(node.StartPoint().Row) + 1
		end := int(node.EndPoint().Row) + 1
		for line := start; line <= end; line++ {
			set[line] = true
		}
		return
	}

	for i := uint32(0); i < node.ChildCount(); i++ {
		collectCommentLines(node.Child(int(i)), set)
	}
}

func isCommentNodeType(nodeType string) bool {
	switch nodeType {
	case "comment", "line_comment", "block_comment", "doc_comment":
		return true
	default:
		return false
	}
}

// getLanguage returns the tree-sitter Language for a given language identifier.
func getLanguage(lang Language) (*sitter.Language, error) {
	switch lang {
	case LangGo:
		return golang.GetLanguage(), nil
	case LangJavaScript:
		return javascript.GetLanguage(), nil
	case LangTypeScript:
		return typescript.GetLanguage(), nil
	case LangTSX:
		return tsx.GetLanguage(), nil
	case LangPython:
		return python.GetLanguage(), nil
	case LangRust:
		return rust.GetLanguage(), nil
	case LangJava:
		return java.GetLanguage(), nil
	default:
		return nil, fmt.Errorf("unsupported language: %s", lang)
	}
}

// ExtractorAvailable returns whether tree-sitter comment extraction is
// compiled in.
func ExtractorAvailable() bool {
	return true
}
