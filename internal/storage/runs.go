package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"marksweep/internal/confidence"
)

// Run is one persisted analysis run.
type Run struct {
	ID                 string    `json:"id"`
	CreatedAt          time.Time `json:"createdAt"`
	RepoRoot           string    `json:"repoRoot"`
	FilesScanned       int       `json:"filesScanned"`
	TotalMarkers       int       `json:"totalMarkers"`
	VeryHigh           int       `json:"veryHigh"`
	High               int       `json:"high"`
	Medium             int       `json:"medium"`
	Low                int       `json:"low"`
	Active             int       `json:"active"`
	ReductionPotential float64   `json:"reductionPotential"`
}

// SaveRun persists one run summary and returns its generated ID.
func (db *DB) SaveRun(repoRoot string, filesScanned int, summary confidence.BatchSummary) (string, error) {
	id := uuid.New().String()
	createdAt := time.Now().UTC()

	err := db.WithTx(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO runs (
				id, created_at, repo_root, files_scanned, total_markers,
				very_high, high, medium, low, active, reduction_potential
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id,
			createdAt.Format(time.RFC3339),
			repoRoot,
			filesScanned,
			summary.Total,
			summary.TierCounts[confidence.TierVeryHigh],
			summary.TierCounts[confidence.TierHigh],
			summary.TierCounts[confidence.TierMedium],
			summary.TierCounts[confidence.TierLow],
			summary.TierCounts[confidence.TierActive],
			summary.ReductionPotential,
		)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("failed to save run: %w", err)
	}

	db.logger.Debug("Saved analysis run", map[string]interface{}{
		"runId":   id,
		"markers": summary.Total,
	})
	return id, nil
}

// ListRuns returns up to limit runs, newest first. limit <= 0 means all.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	query := `
		SELECT id, created_at, repo_root, files_scanned, total_markers,
		       very_high, high, medium, low, active, reduction_potential
		FROM runs ORDER BY created_at DESC`
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt string
		if err := rows.Scan(&r.ID, &createdAt, &r.RepoRoot, &r.FilesScanned,
			&r.TotalMarkers, &r.VeryHigh, &r.High, &r.Medium, &r.Low,
			&r.Active, &r.ReductionPotential); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("invalid run timestamp %q: %w", createdAt, err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
