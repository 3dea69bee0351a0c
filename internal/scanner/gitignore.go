package scanner

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// ignoreList is a best-effort reading of the root .gitignore: blank lines
// and comments are dropped, negations are not supported, and patterns match
// against the slash-separated relative path or any of its segments.
type ignoreList struct {
	patterns []ignorePattern
}

type ignorePattern struct {
	pattern string
	dirOnly bool
	rooted  bool
}

// loadGitignore reads <root>/.gitignore. A missing file yields an empty list.
func loadGitignore(root string) *ignoreList {
	list := &ignoreList{}

	f, err := os.Open(filepath.Join(root, ".gitignore"))
	if err != nil {
		return list
	}
	defer f.Close()

	s := bufio.NewScanner(f)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}

		p := ignorePattern{pattern: line}
		if strings.HasSuffix(p.pattern, "/") {
			p.dirOnly = true
			p.pattern = strings.TrimSuffix(p.pattern, "/")
		}
		if strings.HasPrefix(p.pattern, "/") {
			p.rooted = true
			p.pattern = strings.TrimPrefix(p.pattern, "/")
		}
		list.patterns = append(list.patterns, p)
	}

	return list
}

// Match reports whether the relative path is ignored.
func (l *ignoreList) Match(relPath string, isDir bool) bool {
	if len(l.patterns) == 0 {
		return false
	}

	base := relPath
	if i := strings.LastIndex(relPath, "/"); i >= 0 {
		base = relPath[i+1:]
	}

	for _, p := range l.patterns {
		if p.dirOnly && !isDir {
			continue
		}

		if p.rooted {
			if ok, _ := filepath.Match(p.pattern, relPath); ok {
				return true
			}
			continue
		}

		if ok, _ := filepath.Match(p.pattern, base); ok {
			return true
		}
		if ok, _ := filepath.Match(p.pattern, relPath); ok {
			return true
		}
		// Any path segment matching a bare pattern ignores the subtree.
		for _, seg := range strings.Split(relPath, "/") {
			if ok, _ := filepath.Match(p.pattern, seg); ok {
				return true
			}
		}
	}

	return false
}
