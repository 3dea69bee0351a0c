package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"marksweep/internal/errors"
)

// Config represents the complete marksweep configuration (v2 schema)
type Config struct {
	Version  int    `json:"version" mapstructure:"version"`
	RepoRoot string `json:"repoRoot" mapstructure:"repoRoot"`

	Scan     ScanConfig     `json:"scan" mapstructure:"scan"`
	Analysis AnalysisConfig `json:"analysis" mapstructure:"analysis"`
	GitHub   GitHubConfig   `json:"github" mapstructure:"github"`
	Logging  LoggingConfig  `json:"logging" mapstructure:"logging"`
}

// ScanConfig controls the repository walk that produces task markers
type ScanConfig struct {
	ExcludePaths     []string `json:"excludePaths" mapstructure:"excludePaths"`
	MaxFileSizeBytes int      `json:"maxFileSizeBytes" mapstructure:"maxFileSizeBytes"`
	FollowSymlinks   bool     `json:"followSymlinks" mapstructure:"followSymlinks"`
}

// AnalysisConfig holds the knobs of the confidence engine. The weights and
// thresholds below started life as ad hoc constants; they are configuration
// so they can be tuned against a real corpus.
type AnalysisConfig struct {
	// CurrentPhase is the project's active phase number. Zero means unset,
	// which disables the phase-mismatch sub-check of the archive detector.
	CurrentPhase int `json:"currentPhase" mapstructure:"currentPhase"`

	// ArchivePatterns are path segments that mark historical content.
	ArchivePatterns []string `json:"archivePatterns" mapstructure:"archivePatterns"`

	// ContextWindow is how many lines before/after a marker the
	// context-keyword detector inspects.
	ContextWindow int `json:"contextWindow" mapstructure:"contextWindow"`

	// ExtraKeywords are additional completion keywords for the
	// context-keyword detector, each matched as a whole word.
	ExtraKeywords []string `json:"extraKeywords,omitempty" mapstructure:"extraKeywords"`

	// StalenessDays is the minimum age of a file's last modification before
	// the staleness enricher emits evidence.
	StalenessDays int `json:"stalenessDays" mapstructure:"stalenessDays"`

	// DocStalenessDays is how old a document-header date must be before the
	// header detector treats the document as obsolete.
	DocStalenessDays int `json:"docStalenessDays" mapstructure:"docStalenessDays"`

	// HistoryTimeoutMs bounds each last-modified lookup.
	HistoryTimeoutMs int `json:"historyTimeoutMs" mapstructure:"historyTimeoutMs"`

	// Workers is the parallelism for per-marker analysis.
	Workers int `json:"workers" mapstructure:"workers"`

	Weights    WeightsConfig    `json:"weights" mapstructure:"weights"`
	Thresholds ThresholdsConfig `json:"thresholds" mapstructure:"thresholds"`
}

// WeightsConfig holds the intrinsic strength of each evidence signal
type WeightsConfig struct {
	ExplicitMarker    float64 `json:"explicitMarker" mapstructure:"explicitMarker"`
	ArchiveDir        float64 `json:"archiveDir" mapstructure:"archiveDir"`
	PhaseMismatch     float64 `json:"phaseMismatch" mapstructure:"phaseMismatch"`
	ContextKeyword    float64 `json:"contextKeyword" mapstructure:"contextKeyword"`
	ContextKeywordCap float64 `json:"contextKeywordCap" mapstructure:"contextKeywordCap"`
	DocumentHeader    float64 `json:"documentHeader" mapstructure:"documentHeader"`
	StaleFile         float64 `json:"staleFile" mapstructure:"staleFile"`
}

// ThresholdsConfig holds the lower bound of each confidence tier
type ThresholdsConfig struct {
	VeryHigh float64 `json:"veryHigh" mapstructure:"veryHigh"`
	High     float64 `json:"high" mapstructure:"high"`
	Medium   float64 `json:"medium" mapstructure:"medium"`
	Low      float64 `json:"low" mapstructure:"low"`
}

// GitHubConfig contains GitHub issue creation settings
type GitHubConfig struct {
	Owner     string `json:"owner" mapstructure:"owner"`
	Repo      string `json:"repo" mapstructure:"repo"`
	BaseURL   string `json:"baseUrl" mapstructure:"baseUrl"`
	TimeoutMs int    `json:"timeoutMs" mapstructure:"timeoutMs"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// StateDirName is the per-repo state directory holding config, rules, the
// registry, and the run store.
const StateDirName = ".marksweep"

// StateDir returns the state directory path for a repo root.
func StateDir(repoRoot string) string {
	return filepath.Join(repoRoot, StateDirName)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:  2,
		RepoRoot: ".",
		Scan: ScanConfig{
			ExcludePaths: []string{
				"node_modules", "vendor", ".git", ".marksweep", "dist",
				"build", "target", ".venv", "__pycache__",
			},
			MaxFileSizeBytes: 1000000,
			FollowSymlinks:   false,
		},
		Analysis: AnalysisConfig{
			CurrentPhase:     0,
			ArchivePatterns:  []string{"archive", "_archive", "legacy", "deprecated", "old"},
			ContextWindow:    5,
			StalenessDays:    180,
			DocStalenessDays: 365,
			HistoryTimeoutMs: 2000,
			Workers:          4,
			Weights: WeightsConfig{
				ExplicitMarker:    0.9,
				ArchiveDir:        0.85,
				PhaseMismatch:     0.5,
				ContextKeyword:    0.4,
				ContextKeywordCap: 0.8,
				DocumentHeader:    0.3,
				StaleFile:         0.25,
			},
			Thresholds: ThresholdsConfig{
				VeryHigh: 90,
				High:     70,
				Medium:   50,
				Low:      30,
			},
		},
		GitHub: GitHubConfig{
			BaseURL:   "https://api.github.com",
			TimeoutMs: 10000,
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from .marksweep/config.json. A missing file
// yields the defaults.
func LoadConfig(repoRoot string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(StateDir(repoRoot))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, errors.New(errors.ConfigInvalid, "failed to read config file", err)
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.New(errors.ConfigInvalid, "failed to parse config file", err)
	}

	return cfg, nil
}

// Save writes the configuration to .marksweep/config.json
func (c *Config) Save(repoRoot string) error {
	dir := StateDir(repoRoot)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	a := c.Analysis

	if a.ContextWindow < 0 {
		return errors.New(errors.ConfigInvalid, "analysis.contextWindow must not be negative", nil)
	}
	if a.StalenessDays <= 0 {
		return errors.New(errors.ConfigInvalid, "analysis.stalenessDays must be positive", nil)
	}
	if a.Workers < 0 {
		return errors.New(errors.ConfigInvalid, "analysis.workers must not be negative", nil)
	}

	for name, w := range map[string]float64{
		"explicitMarker":    a.Weights.ExplicitMarker,
		"archiveDir":        a.Weights.ArchiveDir,
		"phaseMismatch":     a.Weights.PhaseMismatch,
		"contextKeyword":    a.Weights.ContextKeyword,
		"contextKeywordCap": a.Weights.ContextKeywordCap,
		"documentHeader":    a.Weights.DocumentHeader,
		"staleFile":         a.Weights.StaleFile,
	} {
		if w <= 0 || w > 1 {
			return errors.New(errors.ConfigInvalid,
				"analysis.weights."+name+" must be in (0, 1]", nil)
		}
	}

	t := a.Thresholds
	if !(t.VeryHigh > t.High && t.High > t.Medium && t.Medium > t.Low && t.Low > 0) {
		return errors.New(errors.ConfigInvalid,
			"analysis.thresholds must be strictly descending and positive", nil)
	}
	if t.VeryHigh > 100 {
		return errors.New(errors.ConfigInvalid,
			"analysis.thresholds.veryHigh must not exceed 100", nil)
	}

	return nil
}
