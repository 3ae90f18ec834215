// ABOUTME: Error taxonomy for the store
// ABOUTME: Sentinels for not-found and constraint failures, typed decode errors
package db

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when a requested entity, attachment, or blob does
// not exist. Callers decide the fallback; the store never invents a value.
var ErrNotFound = errors.New("not found")

// ErrConstraint is returned when a uniqueness or foreign-key constraint
// rejects a write.
var ErrConstraint = errors.New("constraint violation")

// DecodeError reports a stored JSON column that no longer parses against the
// expected shape. It indicates corruption or a schema mismatch and is never
// silently defaulted.
type DecodeError struct {
	Table  string
	Column string
	ID     string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s.%s for id %q: %v", e.Table, e.Column, e.ID, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// wrapWriteErr maps engine-level constraint failures onto ErrConstraint so
// callers can errors.Is them without importing the driver.
func wrapWriteErr(err error) error {
	if err == nil {
		return nil
	}
	var se sqlite3.Error
	if errors.As(err, &se) && se.Code == sqlite3.ErrConstraint {
		return fmt.Errorf("%w: %v", ErrConstraint, err)
	}
	return err
}
