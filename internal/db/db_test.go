package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestOpen(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T) string
		wantErr bool
	}{
		{
			name: "creates new database",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "rentivo.db")
			},
		},
		{
			name: "creates nested directories",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "a", "b", "rentivo.db")
			},
		},
		{
			name: "opens existing database",
			setup: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "rentivo.db")
				d, err := Open(path)
				if err != nil {
					t.Fatalf("setup: %v", err)
				}
				if err := d.Close(); err != nil {
					t.Fatalf("setup close: %v", err)
				}
				return path
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.setup(t)
			d, err := Open(path)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			defer func() {
				if err := d.Close(); err != nil {
					t.Errorf("close: %v", err)
				}
			}()

			if _, err := os.Stat(path); os.IsNotExist(err) {
				t.Error("database file was not created")
			}
		})
	}
}

func TestWALMode(t *testing.T) {
	d := openTestDB(t)

	var mode string
	if err := d.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("query journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want %q", mode, "wal")
	}
}

func TestLocalStorageTable(t *testing.T) {
	d := openTestDB(t)

	want := []string{"key", "value", "created_at", "updated_at"}
	cols := tableColumns(t, d, "local_storage")
	if len(cols) != len(want) {
		t.Fatalf("got %d columns, want %d: %v", len(cols), len(want), cols)
	}
	for i, c := range want {
		if cols[i] != c {
			t.Errorf("column %d = %q, want %q", i, cols[i], c)
		}
	}
}

func TestLocalStorageKeyUnique(t *testing.T) {
	d := openTestDB(t)

	insert := `INSERT INTO local_storage (key, value) VALUES (?, ?)`
	if _, err := d.Exec(insert, "rentivo_user", "{}"); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if _, err := d.Exec(insert, "rentivo_user", "{}"); err == nil {
		t.Fatal("expected error for duplicate key")
	}
}

func TestMigrationsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rentivo.db")

	// Open twice, migrations should not fail on second run
	for i := 0; i < 2; i++ {
		d, err := Open(path)
		if err != nil {
			t.Fatalf("open %d: %v", i, err)
		}
		if err := d.Close(); err != nil {
			t.Fatalf("close %d: %v", i, err)
		}
	}
}

func TestAddColumnIfNotExists(t *testing.T) {
	d := openTestDB(t)

	if err := addColumnIfNotExists(d, "local_storage", "scope", "TEXT NOT NULL DEFAULT ''"); err != nil {
		t.Fatalf("add column: %v", err)
	}
	if err := addColumnIfNotExists(d, "local_storage", "scope", "TEXT NOT NULL DEFAULT ''"); err != nil {
		t.Fatalf("add column again: %v", err)
	}

	ok, err := hasColumn(d, "local_storage", "scope")
	if err != nil {
		t.Fatalf("has column: %v", err)
	}
	if !ok {
		t.Error("expected scope column to exist")
	}
}

func TestDefaultPath(t *testing.T) {
	p, err := DefaultPath()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if filepath.Base(p) != "rentivo.db" {
		t.Errorf("expected filename rentivo.db, got %s", filepath.Base(p))
	}

	dir := filepath.Base(filepath.Dir(p))
	if dir != ".rentivo" {
		t.Errorf("expected directory .rentivo, got %s", dir)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	tests := []struct {
		in, want string
	}{
		{"~/data/rentivo.db", filepath.Join(home, "data", "rentivo.db")},
		{"~", home},
		{"/tmp/rentivo.db", "/tmp/rentivo.db"},
		{"relative/rentivo.db", "relative/rentivo.db"},
		{"~other/rentivo.db", "~other/rentivo.db"},
	}

	for _, tt := range tests {
		got, err := ExpandPath(tt.in)
		if err != nil {
			t.Fatalf("ExpandPath(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestForeignKeysEnabled(t *testing.T) {
	d := openTestDB(t)

	var on int
	if err := d.QueryRow("PRAGMA foreign_keys").Scan(&on); err != nil {
		t.Fatalf("query foreign_keys: %v", err)
	}
	if on != 1 {
		t.Errorf("foreign_keys = %d, want 1", on)
	}
}

// openTestDB creates a temporary database for testing.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rentivo.db")
	d, err := Open(path)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() {
		if err := d.Close(); err != nil {
			t.Errorf("close test db: %v", err)
		}
	})
	return d
}

// tableColumns returns column names for a table using PRAGMA table_info.
func tableColumns(t *testing.T, d *sql.DB, table string) []string {
	t.Helper()
	rows, err := d.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		t.Fatalf("pragma table_info(%s): %v", table, err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			t.Errorf("close rows: %v", err)
		}
	}()

	var cols []string
	for rows.Next() {
		var cid int
		var name, typ string
		var notnull int
		var dflt *string
		var pk int
		if err := rows.Scan(&cid, &name, &typ, &notnull, &dflt, &pk); err != nil {
			t.Fatalf("scan: %v", err)
		}
		cols = append(cols, name)
	}
	return cols
}
