// Package db opens the SQLite file behind the local-storage backend.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// dsnParams turn on WAL, foreign keys and a busy timeout for every
// connection the pool opens.
const dsnParams = "_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000"

// DefaultPath returns the default database path: ~/.rentivo/rentivo.db
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".rentivo", "rentivo.db"), nil
}

// ExpandPath resolves a leading ~/ against the home directory.
func ExpandPath(path string) (string, error) {
	rest, ok := strings.CutPrefix(path, "~/")
	if !ok && path != "~" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, rest), nil
}

// Open opens (or creates) the database at path and runs migrations.
func Open(path string) (*sql.DB, error) {
	path, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite3", "file:"+path+"?"+dsnParams)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// One writer at a time; SQLite serializes writes anyway.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, closeOnError(db, fmt.Errorf("connecting to %s: %w", path, err))
	}
	if err := migrate(db); err != nil {
		return nil, closeOnError(db, fmt.Errorf("running migrations: %w", err))
	}

	return db, nil
}

func closeOnError(db *sql.DB, err error) error {
	if closeErr := db.Close(); closeErr != nil {
		return fmt.Errorf("%w (also failed to close: %v)", err, closeErr)
	}
	return err
}
