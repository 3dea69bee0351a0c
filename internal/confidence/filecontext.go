package confidence

import "context"

// FileContext gives an extractor read-only access to the marker's
// surrounding lines. A context may be unavailable (unreadable file); the
// extractors then simply find nothing.
type FileContext struct {
	path  string
	lines []string
	ok    bool
}

// NewFileContext builds a context from a file's full line list.
func NewFileContext(path string, lines []string) *FileContext {
	return &FileContext{path: path, lines: lines, ok: true}
}

// NoContext represents a file whose content could not be read.
func NoContext(path string) *FileContext {
	return &FileContext{path: path}
}

// Path returns the file path the context belongs to.
func (fc *FileContext) Path() string {
	return fc.path
}

// Available reports whether line content is present.
func (fc *FileContext) Available() bool {
	return fc != nil && fc.ok
}

// Line returns the 1-based line, or "" when out of range or unavailable.
func (fc *FileContext) Line(n int) string {
	if !fc.Available() || n < 1 || n > len(fc.lines) {
		return ""
	}
	return fc.lines[n-1]
}

// Window returns up to n lines before and after the 1-based line, excluding
// the line itself.
func (fc *FileContext) Window(line, n int) []string {
	if !fc.Available() || n <= 0 {
		return nil
	}

	var out []string
	for i := line - n; i <= line+n; i++ {
		if i == line {
			continue
		}
		if i >= 1 && i <= len(fc.lines) {
			out = append(out, fc.lines[i-1])
		}
	}
	return out
}

// Head returns up to n lines from the top of the document.
func (fc *FileContext) Head(n int) []string {
	if !fc.Available() || n <= 0 {
		return nil
	}
	if n > len(fc.lines) {
		n = len(fc.lines)
	}
	return fc.lines[:n]
}

// LineCount returns the number of lines, 0 when unavailable.
func (fc *FileContext) LineCount() int {
	if !fc.Available() {
		return 0
	}
	return len(fc.lines)
}

// ContextProvider fetches the FileContext for a path. The scanner implements
// it; tests use fixed maps.
type ContextProvider interface {
	Context(ctx context.Context, filePath string) (*FileContext, error)
}
