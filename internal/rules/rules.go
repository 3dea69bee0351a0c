// Package rules loads user-defined analysis rules from .marksweep/rules.toml.
// Rules extend the builtin behavior: extra marker patterns, extra completion
// keywords, and extra archive directory names.
package rules

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/BurntSushi/toml"

	"marksweep/internal/config"
	"marksweep/internal/errors"
	"marksweep/internal/marker"
)

// RulesFile is the rules filename inside the state directory.
const RulesFile = "rules.toml"

// Rules is the parsed content of rules.toml.
type Rules struct {
	// Version is the schema version; only 1 is known.
	Version int `toml:"version"`

	// Patterns are additional marker patterns to scan for.
	Patterns []PatternRule `toml:"pattern"`

	// CompletionKeywords are extra keyword categories for the
	// context-keyword extractor.
	CompletionKeywords []string `toml:"completion_keywords,omitempty"`

	// ArchivePatterns are extra directory names treated as archives.
	ArchivePatterns []string `toml:"archive_patterns,omitempty"`
}

// PatternRule declares one custom marker pattern.
type PatternRule struct {
	// Name identifies the pattern in reports.
	Name string `toml:"name"`

	// Kind is one of comment, checklist, section-header.
	Kind string `toml:"kind"`

	// Regex is the pattern; the first capture group is the marker text.
	Regex string `toml:"regex"`

	// Description is an optional human-readable description.
	Description string `toml:"description,omitempty"`
}

var validKinds = map[string]marker.Kind{
	"comment":        marker.KindComment,
	"checklist":      marker.KindChecklist,
	"section-header": marker.KindSectionHeader,
}

// Load reads rules.toml from the state directory. A missing file is not an
// error; it yields empty Rules.
func Load(stateDir string) (*Rules, error) {
	path := filepath.Join(stateDir, RulesFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Rules{Version: 1}, nil
	}
	if err != nil {
		return nil, errors.New(errors.RulesInvalid, "failed to read rules file", err)
	}

	var rules Rules
	if err := toml.Unmarshal(data, &rules); err != nil {
		return nil, errors.New(errors.RulesInvalid, "failed to parse rules file", err)
	}
	if rules.Version == 0 {
		rules.Version = 1
	}
	if rules.Version != 1 {
		return nil, errors.New(errors.RulesInvalid,
			fmt.Sprintf("unsupported rules version %d", rules.Version), nil)
	}

	if err := rules.validate(); err != nil {
		return nil, err
	}
	return &rules, nil
}

func (r *Rules) validate() error {
	seen := make(map[string]bool)
	for i, p := range r.Patterns {
		if p.Name == "" {
			return errors.New(errors.RulesInvalid,
				fmt.Sprintf("pattern %d has no name", i), nil)
		}
		if seen[p.Name] {
			return errors.New(errors.RulesInvalid,
				fmt.Sprintf("duplicate pattern name %q", p.Name), nil)
		}
		seen[p.Name] = true
		if _, ok := validKinds[p.Kind]; !ok {
			return errors.New(errors.RulesInvalid,
				fmt.Sprintf("pattern %q has unknown kind %q", p.Name, p.Kind), nil)
		}
		if _, err := regexp.Compile(p.Regex); err != nil {
			return errors.New(errors.RulesInvalid,
				fmt.Sprintf("pattern %q has invalid regex", p.Name), err)
		}
	}
	return nil
}

// Apply folds the rules into an analysis configuration.
func (r *Rules) Apply(cfg *config.Config) {
	cfg.Analysis.ArchivePatterns = append(cfg.Analysis.ArchivePatterns, r.ArchivePatterns...)
	cfg.Analysis.ExtraKeywords = append(cfg.Analysis.ExtraKeywords, r.CompletionKeywords...)
}

// MarkerPatterns compiles the custom patterns for the parser.
func (r *Rules) MarkerPatterns() []marker.Pattern {
	patterns := make([]marker.Pattern, 0, len(r.Patterns))
	for _, p := range r.Patterns {
		patterns = append(patterns, marker.Pattern{
			Name:        p.Name,
			Kind:        validKinds[p.Kind],
			Regex:       regexp.MustCompile(p.Regex),
			Description: p.Description,
		})
	}
	return patterns
}
