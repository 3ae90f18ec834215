// ABOUTME: Additive schema migrations checked by column inspection
// ABOUTME: Brings databases written by older revisions up to the current shape
package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

// columnMigration appends one optional column to an existing table. Migrations
// are additive only: no column is ever dropped or renamed, so data written by
// old revisions stays readable.
type columnMigration struct {
	table  string
	column string
	ddl    string
}

// Ordered history of columns added after a table first shipped. Each is
// checked independently against pragma_table_info, so partially migrated
// databases converge without a version counter.
var columnMigrations = []columnMigration{
	{"tasks", "description", "description TEXT"},
	{"tasks", "important", "important INTEGER NOT NULL DEFAULT 0"},
	{"tasks", "calEventId", "calEventId TEXT"},
	{"tasks", "listId", "listId TEXT"},
	{"tasks", "notes", "notes TEXT"},
	{"tasks", "priority", "priority TEXT NOT NULL DEFAULT 'medium'"},
	{"tasks", "recurring", "recurring INTEGER NOT NULL DEFAULT 0"},
	{"tasks", "recurringRule", "recurringRule TEXT"},
	{"tasks", "parentTaskId", "parentTaskId TEXT"},
	{"tasks", "projectId", "projectId TEXT"},
	{"calendar_events", "startAt", "startAt TEXT"},
	{"calendar_events", "endAt", "endAt TEXT"},
}

// migrate applies pending column migrations. It returns the FTS tables whose
// virtual table was dropped and must be rebuilt after the schema pass.
func migrate(db *sql.DB) ([]string, error) {
	var rebuilt []string
	seen := make(map[string]map[string]bool)

	for _, m := range columnMigrations {
		cols, ok := seen[m.table]
		if !ok {
			var err error
			cols, err = tableColumns(db, m.table)
			if err != nil {
				return nil, err
			}
			seen[m.table] = cols
		}
		if len(cols) == 0 || cols[m.column] {
			// Table doesn't exist yet (fresh database) or column already present.
			continue
		}

		if _, err := db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s", m.table, m.ddl)); err != nil {
			return nil, fmt.Errorf("add %s.%s: %w", m.table, m.column, err)
		}
		cols[m.column] = true

		// Adding an FTS-indexed column invalidates the old triggers and index:
		// drop them so the schema pass recreates the current shape.
		if m.table == "tasks" && m.column == "notes" {
			if err := dropSearchIndex(db, "tasks"); err != nil {
				return nil, err
			}
			rebuilt = append(rebuilt, "tasks_fts")
		}
	}

	// Databases written before the start/end instants were promoted to real
	// columns carry them only inside the JSON blobs; backfill from there.
	if cols := seen["calendar_events"]; len(cols) > 0 {
		if err := backfillEventInstants(db); err != nil {
			return nil, err
		}
	}

	return rebuilt, nil
}

// tableColumns returns the column names of table, or an empty map if the
// table does not exist.
func tableColumns(db *sql.DB, table string) (map[string]bool, error) {
	rows, err := db.Query("SELECT name FROM pragma_table_info(?)", table)
	if err != nil {
		return nil, fmt.Errorf("inspect %s: %w", table, err)
	}
	defer rows.Close()

	cols := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		cols[name] = true
	}
	return cols, rows.Err()
}

// dropSearchIndex removes the FTS virtual table and triggers for table so the
// schema pass can recreate them against the new column set.
func dropSearchIndex(db *sql.DB, table string) error {
	stmts := []string{
		fmt.Sprintf("DROP TRIGGER IF EXISTS %s_ai", table),
		fmt.Sprintf("DROP TRIGGER IF EXISTS %s_ad", table),
		fmt.Sprintf("DROP TRIGGER IF EXISTS %s_au", table),
		fmt.Sprintf("DROP TABLE IF EXISTS %s_fts", table),
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("%s: %w", stmt, err)
		}
	}
	return nil
}

// backfillEventInstants populates startAt/endAt for rows written before those
// columns existed. The instant is lifted out of the JSON blob and normalized
// the same way live writes are, so legacy dateTime values with a zone offset
// land in the canonical UTC form the range queries compare against.
func backfillEventInstants(db *sql.DB) error {
	rows, err := db.Query(`
		SELECT localId, start, "end" FROM calendar_events
		WHERE (startAt IS NULL AND start IS NOT NULL)
		   OR (endAt IS NULL AND "end" IS NOT NULL)`)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	type pending struct {
		localID        int64
		startAt, endAt any
	}
	var updates []pending
	for rows.Next() {
		var (
			p          pending
			start, end sql.NullString
		)
		if err := rows.Scan(&p.localID, &start, &end); err != nil {
			return err
		}
		p.startAt = legacyInstant(start)
		p.endAt = legacyInstant(end)
		updates = append(updates, p)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, p := range updates {
		_, err := db.Exec(
			"UPDATE calendar_events SET startAt = COALESCE(startAt, ?), endAt = COALESCE(endAt, ?) WHERE localId = ?",
			p.startAt, p.endAt, p.localID)
		if err != nil {
			return fmt.Errorf("backfill event %d: %w", p.localID, err)
		}
	}
	return nil
}

// legacyInstant decodes a stored EventDateTime blob into a canonical instant.
// Undecodable blobs keep a NULL instant; the read path reports those rows as
// DecodeError when they are fetched.
func legacyInstant(col sql.NullString) any {
	if !col.Valid || col.String == "" {
		return nil
	}
	var dt EventDateTime
	if err := json.Unmarshal([]byte(col.String), &dt); err != nil {
		return nil
	}
	instant, err := eventInstant(&dt)
	if err != nil || instant == "" {
		return nil
	}
	return instant
}
