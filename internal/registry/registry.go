// Package registry maintains the feature registry: a CSV ledger of known
// task markers and their review status, kept at .marksweep/registry.csv so
// it can live in version control and survive line-number churn.
package registry

import (
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"marksweep/internal/confidence"
	"marksweep/internal/errors"
)

// RegistryFile is the registry filename inside the state directory.
const RegistryFile = "registry.csv"

// Status is the human review state of a registry entry.
type Status string

const (
	// StatusOpen means the marker has not been reviewed.
	StatusOpen Status = "open"

	// StatusFlagged means analysis recommends review or closure.
	StatusFlagged Status = "flagged"

	// StatusClosed means a human confirmed the marker is resolved.
	StatusClosed Status = "closed"
)

// Entry is one registry row.
type Entry struct {
	// ID is a stable hash of file path and marker text, so the entry
	// survives the marker moving between lines.
	ID string `json:"id"`

	FilePath   string  `json:"filePath"`
	LineNumber int     `json:"lineNumber"`
	Text       string  `json:"text"`
	Status     Status  `json:"status"`
	Score      float64 `json:"score"`
	Tier       string  `json:"tier"`

	// UpdatedAt is when analysis last touched the entry.
	UpdatedAt time.Time `json:"updatedAt"`
}

var header = []string{"id", "file_path", "line_number", "text", "status", "score", "tier", "updated_at"}

// EntryID derives the stable identifier for a marker.
func EntryID(filePath, text string) string {
	sum := sha256.Sum256([]byte(filePath + "\x00" + text))
	return hex.EncodeToString(sum[:8])
}

// Registry is the in-memory registry, keyed by entry ID.
type Registry struct {
	entries map[string]*Entry
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[string]*Entry)}
}

// Load reads the registry from the state directory. A missing file yields an
// empty registry; a malformed one is a REGISTRY_CORRUPT error.
func Load(stateDir string) (*Registry, error) {
	path := filepath.Join(stateDir, RegistryFile)
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return New(), nil
	}
	if err != nil {
		return nil, errors.New(errors.RegistryCorrupt, "failed to open registry", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = len(header)

	reg := New()
	first := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.New(errors.RegistryCorrupt, "failed to parse registry", err)
		}
		if first {
			first = false
			if record[0] == header[0] {
				continue
			}
		}
		entry, err := parseRecord(record)
		if err != nil {
			return nil, err
		}
		reg.entries[entry.ID] = entry
	}
	return reg, nil
}

func parseRecord(record []string) (*Entry, error) {
	line, err := strconv.Atoi(record[2])
	if err != nil {
		return nil, errors.New(errors.RegistryCorrupt,
			fmt.Sprintf("invalid line number %q", record[2]), err)
	}
	score, err := strconv.ParseFloat(record[5], 64)
	if err != nil {
		return nil, errors.New(errors.RegistryCorrupt,
			fmt.Sprintf("invalid score %q", record[5]), err)
	}
	updated, err := time.Parse(time.RFC3339, record[7])
	if err != nil {
		return nil, errors.New(errors.RegistryCorrupt,
			fmt.Sprintf("invalid timestamp %q", record[7]), err)
	}
	status := Status(record[4])
	switch status {
	case StatusOpen, StatusFlagged, StatusClosed:
	default:
		return nil, errors.New(errors.RegistryCorrupt,
			fmt.Sprintf("unknown status %q", record[4]), nil)
	}
	return &Entry{
		ID:         record[0],
		FilePath:   record[1],
		LineNumber: line,
		Text:       record[3],
		Status:     status,
		Score:      score,
		Tier:       record[6],
		UpdatedAt:  updated,
	}, nil
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Get looks up an entry by ID.
func (r *Registry) Get(id string) (*Entry, bool) {
	e, ok := r.entries[id]
	return e, ok
}

// Entries returns all entries sorted by file path then line number.
func (r *Registry) Entries() []*Entry {
	out := make([]*Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FilePath != out[j].FilePath {
			return out[i].FilePath < out[j].FilePath
		}
		return out[i].LineNumber < out[j].LineNumber
	})
	return out
}

// SetStatus updates the review status of an entry.
func (r *Registry) SetStatus(id string, status Status) error {
	e, ok := r.entries[id]
	if !ok {
		return errors.New(errors.RegistryCorrupt,
			fmt.Sprintf("no registry entry %s", id), nil)
	}
	e.Status = status
	e.UpdatedAt = time.Now().UTC()
	return nil
}

// Upsert folds analysis results into the registry. New markers are added;
// existing entries get refreshed scores and positions. Entries a human
// already closed stay closed. Markers flagged for review or closure by the
// analysis move from open to flagged.
func (r *Registry) Upsert(results []confidence.ConfidenceResult, now time.Time) (added, updated int) {
	for _, res := range results {
		id := EntryID(res.Marker.FilePath, res.Marker.Text)
		e, ok := r.entries[id]
		if !ok {
			e = &Entry{
				ID:       id,
				FilePath: res.Marker.FilePath,
				Text:     res.Marker.Text,
				Status:   StatusOpen,
			}
			r.entries[id] = e
			added++
		} else {
			updated++
		}

		e.LineNumber = res.Marker.LineNumber
		e.Score = res.Score
		e.Tier = string(res.Tier)
		e.UpdatedAt = now
		if e.Status == StatusOpen && flaggedRecommendation(res.Recommendation) {
			e.Status = StatusFlagged
		}
	}
	return added, updated
}

func flaggedRecommendation(rec confidence.Recommendation) bool {
	switch rec {
	case confidence.RecSafeToClose, confidence.RecNeedsReview:
		return true
	}
	return false
}

// Save writes the registry to the state directory, creating it if needed.
func (r *Registry) Save(stateDir string) error {
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return errors.New(errors.RegistryCorrupt, "failed to create state directory", err)
	}
	path := filepath.Join(stateDir, RegistryFile)
	f, err := os.Create(path)
	if err != nil {
		return errors.New(errors.RegistryCorrupt, "failed to write registry", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return errors.New(errors.RegistryCorrupt, "failed to write registry header", err)
	}
	for _, e := range r.Entries() {
		record := []string{
			e.ID,
			e.FilePath,
			strconv.Itoa(e.LineNumber),
			e.Text,
			string(e.Status),
			strconv.FormatFloat(e.Score, 'f', 1, 64),
			e.Tier,
			e.UpdatedAt.UTC().Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return errors.New(errors.RegistryCorrupt, "failed to write registry row", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.New(errors.RegistryCorrupt, "failed to flush registry", err)
	}
	return f.Close()
}
