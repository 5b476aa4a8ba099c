// Package index caches a keyword catalog in SQLite for searching.
package index

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const schemaVersion = 1

const schemaSQL = `
CREATE TABLE IF NOT EXISTS keywords (
	name       TEXT PRIMARY KEY,
	card_count INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS fields (
	keyword    TEXT NOT NULL REFERENCES keywords(name) ON DELETE CASCADE,
	card       INTEGER NOT NULL,
	name       TEXT NOT NULL,
	default_value TEXT NOT NULL,
	help       TEXT NOT NULL,
	position   INTEGER NOT NULL,
	width      INTEGER NOT NULL,
	options    TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_fields_keyword ON fields(keyword);
`

// Database is the SQLite handle for the catalog cache.
type Database struct {
	db *sql.DB
}

// Open opens or creates the index database at path.
func Open(path string) (*Database, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create index directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection keeps the pragmas below in effect for every query.
	db.SetMaxOpenConns(1)

	d := &Database{db: db}
	if err := d.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

// OpenInMemory opens a private in-memory index.
func OpenInMemory() (*Database, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	d := &Database{db: db}
	if err := d.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the database.
func (d *Database) Close() error {
	return d.db.Close()
}

func (d *Database) initialize() error {
	if _, err := d.db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	var version int
	if err := d.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if version != 0 && version != schemaVersion {
		// The index is a cache; drop and rebuild on mismatch.
		for _, table := range []string{"fields", "keywords"} {
			if _, err := d.db.Exec("DROP TABLE IF EXISTS " + table); err != nil {
				return fmt.Errorf("failed to reset index: %w", err)
			}
		}
	}

	if _, err := d.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	if _, err := d.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
		return fmt.Errorf("failed to set schema version: %w", err)
	}
	return nil
}

func (d *Database) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}
