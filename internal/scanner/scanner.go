// Package scanner walks a repository, extracts task markers, and serves
// file contexts to the confidence engine.
package scanner

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"marksweep/internal/config"
	"marksweep/internal/confidence"
	"marksweep/internal/logging"
	"marksweep/internal/marker"
)

// Scanner finds task markers under a repository root. It also implements
// confidence.ContextProvider, caching file contents so the analyzer's
// workers do not re-read files.
type Scanner struct {
	repoRoot string
	cfg      config.ScanConfig
	parser   *marker.Parser
	logger   *logging.Logger

	mu       sync.Mutex
	contexts map[string]*confidence.FileContext
}

// ScanResult holds one walk's findings.
type ScanResult struct {
	RepoRoot     string              `json:"repoRoot"`
	ScannedAt    time.Time           `json:"scannedAt"`
	Duration     string              `json:"duration"`
	FilesScanned int                 `json:"filesScanned"`
	Markers      []marker.TaskMarker `json:"markers"`
}

// NewScanner creates a scanner for the given root.
func NewScanner(repoRoot string, cfg config.ScanConfig, logger *logging.Logger) *Scanner {
	return &Scanner{
		repoRoot: repoRoot,
		cfg:      cfg,
		parser:   marker.NewParser(logger),
		logger:   logger,
		contexts: make(map[string]*confidence.FileContext),
	}
}

// AddPatterns forwards custom marker patterns to the parser.
func (s *Scanner) AddPatterns(patterns []marker.Pattern) {
	s.parser.AddPatterns(patterns)
}

// Scan walks the repository and extracts every task marker. Unreadable
// files are skipped, never fatal.
func (s *Scanner) Scan(ctx context.Context) (*ScanResult, error) {
	start := time.Now()
	ignore := loadGitignore(s.repoRoot)

	var markers []marker.TaskMarker
	filesScanned := 0

	err := filepath.Walk(s.repoRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip inaccessible
		}

		relPath, relErr := filepath.Rel(s.repoRoot, path)
		if relErr != nil || relPath == "." {
			return nil
		}
		relPath = filepath.ToSlash(relPath)

		if info.IsDir() {
			if s.excluded(relPath, info.Name()) || ignore.Match(relPath, true) {
				return filepath.SkipDir
			}
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !info.Mode().IsRegular() {
			return nil
		}
		if s.cfg.MaxFileSizeBytes > 0 && info.Size() > int64(s.cfg.MaxFileSizeBytes) {
			return nil
		}
		if s.excluded(relPath, info.Name()) || ignore.Match(relPath, false) {
			return nil
		}
		if _, known := marker.LanguageFromExtension(strings.ToLower(filepath.Ext(path))); !known {
			return nil
		}

		content, readErr := os.ReadFile(path)
		if readErr != nil {
			s.logger.Debug("Failed to read file", map[string]interface{}{
				"path":  relPath,
				"error": readErr.Error(),
			})
			return nil
		}

		filesScanned++
		markers = append(markers, s.parser.ParseFile(ctx, relPath, content)...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(markers, func(i, j int) bool {
		if markers[i].FilePath != markers[j].FilePath {
			return markers[i].FilePath < markers[j].FilePath
		}
		return markers[i].LineNumber < markers[j].LineNumber
	})

	s.logger.Info("Scan complete", map[string]interface{}{
		"files":   filesScanned,
		"markers": len(markers),
	})

	return &ScanResult{
		RepoRoot:     s.repoRoot,
		ScannedAt:    start,
		Duration:     time.Since(start).String(),
		FilesScanned: filesScanned,
		Markers:      markers,
	}, nil
}

// Context returns the FileContext for a path relative to the scan root.
// Results are cached for the scanner's lifetime.
func (s *Scanner) Context(ctx context.Context, filePath string) (*confidence.FileContext, error) {
	s.mu.Lock()
	if fc, ok := s.contexts[filePath]; ok {
		s.mu.Unlock()
		return fc, nil
	}
	s.mu.Unlock()

	content, err := os.ReadFile(filepath.Join(s.repoRoot, filepath.FromSlash(filePath)))

	var fc *confidence.FileContext
	if err != nil {
		fc = confidence.NoContext(filePath)
	} else {
		fc = confidence.NewFileContext(filePath, strings.Split(string(content), "\n"))
	}

	s.mu.Lock()
	s.contexts[filePath] = fc
	s.mu.Unlock()

	return fc, err
}

func (s *Scanner) excluded(relPath, name string) bool {
	for _, pattern := range s.cfg.ExcludePaths {
		if pattern == name || pattern == relPath {
			return true
		}
		if m, _ := filepath.Match(pattern, relPath); m {
			return true
		}
		if m, _ := filepath.Match(pattern, name); m {
			return true
		}
	}
	return false
}
