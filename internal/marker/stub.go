//go:build !cgo

package marker

import (
	"context"
	"errors"
)

// ErrNoCGO is returned when comment extraction is unavailable due to missing CGO.
var ErrNoCGO = errors.New("tree-sitter comment extraction requires CGO")

// CommentExtractor locates comment spans in source files.
// This is a stub implementation for non-CGO builds; the parser falls back to
// its prefix heuristic.
type CommentExtractor struct{}

// NewCommentExtractor returns the stub extractor.
func NewCommentExtractor() *CommentExtractor {
	return nil
}

// Supports always reports false without CGO.
func (e *CommentExtractor) Supports(lang Language) bool {
	return false
}

// CommentLines returns ErrNoCGO.
func (e *CommentExtractor) CommentLines(ctx context.Context, source []byte, lang Language) (map[int]bool, error) {
	return nil, ErrNoCGO
}

// ExtractorAvailable returns whether tree-sitter comment extraction is
// compiled in.
func ExtractorAvailable() bool {
	return false
}
