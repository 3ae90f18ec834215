// ABOUTME: Row codec helpers shared by all entity tables
// ABOUTME: Canonical time formatting and JSON column encode/decode
package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// timeLayout is the single persisted instant format: UTC, whole seconds.
// Every write normalizes to it, which is what makes lexical comparison of
// stored instants valid.
const timeLayout = "2006-01-02T15:04:05Z"

func formatTime(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse stored time %q: %w", s, err)
	}
	return t, nil
}

// formatTimePtr returns a bindable column value: NULL for nil.
func formatTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

func parseTimePtr(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	t, err := parseTime(ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// jsonPtr encodes an optional nested record. A nil pointer maps to an absent
// column value, never to the JSON string "null".
func jsonPtr[T any](v *T) (any, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// jsonSlice encodes an optional list the same way: nil maps to NULL.
func jsonSlice[T any](v []T) (any, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// decodeJSONColumn parses a stored JSON column into dst. A NULL column is a
// no-op (dst keeps its zero value); a malformed column is a DecodeError and is
// surfaced, never defaulted.
func decodeJSONColumn(table, column, id string, ns sql.NullString, dst any) error {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(ns.String), dst); err != nil {
		return &DecodeError{Table: table, Column: column, ID: id, Err: err}
	}
	return nil
}

// nullStr binds optional text scalars: the empty string maps to NULL.
func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// prefixColumns qualifies a comma-separated column list with a table alias,
// for queries that join against the FTS index.
func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}

// eventInstant normalizes an EventDateTime to the canonical instant format
// for the promoted startAt/endAt columns. All-day dates anchor to midnight
// UTC. Returns "" for a nil or empty value.
func eventInstant(dt *EventDateTime) (string, error) {
	if dt == nil {
		return "", nil
	}
	if dt.DateTime != "" {
		t, err := time.Parse(time.RFC3339, dt.DateTime)
		if err != nil {
			return "", fmt.Errorf("parse event dateTime %q: %w", dt.DateTime, err)
		}
		return formatTime(t), nil
	}
	if dt.Date != "" {
		if _, err := time.Parse("2006-01-02", dt.Date); err != nil {
			return "", fmt.Errorf("parse event date %q: %w", dt.Date, err)
		}
		return dt.Date + "T00:00:00Z", nil
	}
	return "", nil
}
