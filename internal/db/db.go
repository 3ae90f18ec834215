// ABOUTME: Store session and SQLite initialization. Requires build tag: sqlite_fts5
// ABOUTME: Applies pragmas, additive migrations, and schema on open
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Store is a session against the daybook database. All reads and writes go
// through a single Store; SQLite's WAL mode provides single-writer,
// multiple-reader semantics underneath. Attachment blobs live in a directory
// next to the database file.
type Store struct {
	db             *sql.DB
	attachmentsDir string
}

// Open opens (or creates) the database at dbPath and ensures the schema is
// current. Any failure here is fatal: the store cannot operate without its
// schema.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil { //nolint:gosec // Standard directory permissions for user data
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	attachmentsDir := filepath.Join(dir, "attachments")
	if err := os.MkdirAll(attachmentsDir, 0755); err != nil { //nolint:gosec
		return nil, fmt.Errorf("create attachments directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA cache_size = 10000",
		"PRAGMA temp_store = MEMORY",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	// Additive migrations run before the schema pass so that ALTER TABLE sees
	// the old shape and the schema pass can recreate anything migrations drop.
	rebuilt, err := migrate(db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	// Repopulate any FTS index whose virtual table a migration rebuilt.
	for _, fts := range rebuilt {
		stmt := fmt.Sprintf("INSERT INTO %s(%s) VALUES('rebuild')", fts, fts)
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("rebuild %s: %w", fts, err)
		}
	}

	return &Store{db: db, attachmentsDir: attachmentsDir}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// AttachmentsDir returns the directory holding attachment blobs.
func (s *Store) AttachmentsDir() string {
	return s.attachmentsDir
}
