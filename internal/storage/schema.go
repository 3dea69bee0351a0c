package storage

import (
	"database/sql"
	"fmt"
)

const currentSchemaVersion = 1

func (db *DB) initializeSchema() error {
	return db.WithTx(func(tx *sql.Tx) error {
		statements := []string{
			`CREATE TABLE schema_version (
				version INTEGER NOT NULL
			)`,
			`CREATE TABLE runs (
				id TEXT PRIMARY KEY,
				created_at TEXT NOT NULL,
				repo_root TEXT NOT NULL,
				files_scanned INTEGER NOT NULL,
				total_markers INTEGER NOT NULL,
				very_high INTEGER NOT NULL,
				high INTEGER NOT NULL,
				medium INTEGER NOT NULL,
				low INTEGER NOT NULL,
				active INTEGER NOT NULL,
				reduction_potential REAL NOT NULL
			)`,
			`CREATE INDEX idx_runs_created_at ON runs(created_at)`,
		}
		for _, stmt := range statements {
			if _, err := tx.Exec(stmt); err != nil {
				return fmt.Errorf("failed to create schema: %w", err)
			}
		}
		if _, err := tx.Exec(`INSERT INTO schema_version (version) VALUES (?)`, currentSchemaVersion); err != nil {
			return fmt.Errorf("failed to set schema version: %w", err)
		}

		db.logger.Info("Run store schema initialized", map[string]interface{}{
			"version": currentSchemaVersion,
		})
		return nil
	})
}

func (db *DB) checkSchema() error {
	var version int
	err := db.conn.QueryRow(`SELECT version FROM schema_version`).Scan(&version)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if version != currentSchemaVersion {
		return fmt.Errorf("unsupported run store schema version %d (want %d)", version, currentSchemaVersion)
	}
	return nil
}
