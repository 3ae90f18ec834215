// ABOUTME: Calendar event reads and writes
// ABOUTME: Upserts with FTS trigger sync, indexed range scans, full-text search
package db

import (
	"database/sql"
	"fmt"
	"time"
)

const eventColumns = `localId, id, summary, description, location, start, "end",
	startAt, endAt, recurrence, recurrenceRule, recurrenceException, attendees,
	creator, organizer, htmlLink, iCalUID, sequence, status, transparency,
	visibility, hangoutLink, conferenceData, reminders, source, attachments,
	eventType, isActive, createdAt, updatedAt`

// eventRow holds the encoded column values of one event, in eventColumns
// order minus localId.
type eventRow struct {
	start, end          any
	startAt, endAt      any
	recurrence          any
	recurrenceException any
	attendees           any
	creator, organizer  any
	conferenceData      any
	reminders           any
	source              any
	attachments         any
}

func encodeEvent(e *CalendarEvent) (*eventRow, error) {
	var r eventRow
	var err error

	startAt, err := eventInstant(e.Start)
	if err != nil {
		return nil, fmt.Errorf("event %s start: %w", e.ID, err)
	}
	endAt, err := eventInstant(e.End)
	if err != nil {
		return nil, fmt.Errorf("event %s end: %w", e.ID, err)
	}
	r.startAt, r.endAt = nullStr(startAt), nullStr(endAt)

	if r.start, err = jsonPtr(e.Start); err != nil {
		return nil, err
	}
	if r.end, err = jsonPtr(e.End); err != nil {
		return nil, err
	}
	if r.recurrence, err = jsonSlice(e.Recurrence); err != nil {
		return nil, err
	}
	if r.recurrenceException, err = jsonSlice(e.RecurrenceException); err != nil {
		return nil, err
	}
	if r.attendees, err = jsonSlice(e.Attendees); err != nil {
		return nil, err
	}
	if r.creator, err = jsonPtr(e.Creator); err != nil {
		return nil, err
	}
	if r.organizer, err = jsonPtr(e.Organizer); err != nil {
		return nil, err
	}
	if r.conferenceData, err = jsonPtr(e.ConferenceData); err != nil {
		return nil, err
	}
	if r.reminders, err = jsonPtr(e.Reminders); err != nil {
		return nil, err
	}
	if r.source, err = jsonPtr(e.Source); err != nil {
		return nil, err
	}
	if r.attachments, err = jsonSlice(e.Attachments); err != nil {
		return nil, err
	}
	return &r, nil
}

// mutableArgs returns the bind values for every caller-writable column, in
// the order shared by the insert and update statements.
func (r *eventRow) mutableArgs(e *CalendarEvent) []any {
	return []any{
		nullStr(e.Summary), nullStr(e.Description), nullStr(e.Location),
		r.start, r.end, r.startAt, r.endAt,
		r.recurrence, nullStr(e.RecurrenceRule), r.recurrenceException,
		r.attendees, r.creator, r.organizer,
		nullStr(e.HTMLLink), nullStr(e.ICalUID), e.Sequence,
		nullStr(e.Status), nullStr(e.Transparency), nullStr(e.Visibility),
		nullStr(e.HangoutLink), r.conferenceData, r.reminders, r.source,
		r.attachments, nullStr(e.EventType), boolToInt(e.IsActive),
	}
}

// SaveEvent inserts or replaces the event keyed by its external id. CreatedAt
// is set on first insert only; UpdatedAt is refreshed on every call. The row
// update path is an explicit UPDATE so the localId survives and the FTS
// triggers see a plain update, not a delete/reinsert of the row.
func (s *Store) SaveEvent(e *CalendarEvent) error {
	return s.writeEvent(e, false)
}

// UpdateEvent mutates an existing event. It fails with ErrNotFound if no row
// with the event's external id exists; no row is created.
func (s *Store) UpdateEvent(e *CalendarEvent) error {
	return s.writeEvent(e, true)
}

func (s *Store) writeEvent(e *CalendarEvent, mustExist bool) error {
	row, err := encodeEvent(e)
	if err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var localID int64
	var createdAtStr string
	err = tx.QueryRow("SELECT localId, createdAt FROM calendar_events WHERE id = ?", e.ID).
		Scan(&localID, &createdAtStr)

	now := time.Now().UTC().Truncate(time.Second)
	switch {
	case err == sql.ErrNoRows:
		if mustExist {
			return fmt.Errorf("update event %s: %w", e.ID, ErrNotFound)
		}
		args := append([]any{e.ID}, row.mutableArgs(e)...)
		args = append(args, formatTime(now), formatTime(now))
		res, execErr := tx.Exec(`
			INSERT INTO calendar_events (id, summary, description, location, start, "end",
				startAt, endAt, recurrence, recurrenceRule, recurrenceException, attendees,
				creator, organizer, htmlLink, iCalUID, sequence, status, transparency,
				visibility, hangoutLink, conferenceData, reminders, source, attachments,
				eventType, isActive, createdAt, updatedAt)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, args...)
		if execErr != nil {
			return wrapWriteErr(execErr)
		}
		if localID, err = res.LastInsertId(); err != nil {
			return err
		}
		e.CreatedAt = now
	case err != nil:
		return err
	default:
		createdAt, parseErr := parseTime(createdAtStr)
		if parseErr != nil {
			return parseErr
		}
		args := append(row.mutableArgs(e), formatTime(now), localID)
		if _, execErr := tx.Exec(`
			UPDATE calendar_events SET summary = ?, description = ?, location = ?,
				start = ?, "end" = ?, startAt = ?, endAt = ?, recurrence = ?,
				recurrenceRule = ?, recurrenceException = ?, attendees = ?, creator = ?,
				organizer = ?, htmlLink = ?, iCalUID = ?, sequence = ?, status = ?,
				transparency = ?, visibility = ?, hangoutLink = ?, conferenceData = ?,
				reminders = ?, source = ?, attachments = ?, eventType = ?, isActive = ?,
				updatedAt = ?
			WHERE localId = ?
		`, args...); execErr != nil {
			return wrapWriteErr(execErr)
		}
		e.CreatedAt = createdAt
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	e.localID = localID
	e.UpdatedAt = now
	return nil
}

// DeleteEvent removes the event with the given external id. Join rows cascade
// via foreign keys and the FTS entry via trigger. Deleting an absent event is
// a no-op.
func (s *Store) DeleteEvent(id string) error {
	_, err := s.db.Exec("DELETE FROM calendar_events WHERE id = ?", id)
	return wrapWriteErr(err)
}

// GetEvent returns the event with the given external id, or ErrNotFound.
func (s *Store) GetEvent(id string) (*CalendarEvent, error) {
	row := s.db.QueryRow(
		"SELECT "+eventColumns+" FROM calendar_events WHERE id = ?", id)
	e, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("event %s: %w", id, ErrNotFound)
	}
	return e, err
}

// EventsInRange returns events whose start instant falls in the half-open
// interval [start, end), ascending by start instant. The predicate runs on
// the promoted startAt column, never on the JSON blob.
func (s *Store) EventsInRange(start, end time.Time) ([]CalendarEvent, error) {
	rows, err := s.db.Query(`
		SELECT `+eventColumns+` FROM calendar_events
		WHERE startAt >= ? AND startAt < ?
		ORDER BY startAt, localId
	`, formatTime(start), formatTime(end))
	if err != nil {
		return nil, err
	}
	return collectEvents(rows)
}

// SearchEvents returns events matching the full-text query over summary,
// description, and location, ordered by start instant then localId for
// reproducible results.
func (s *Store) SearchEvents(query string) ([]CalendarEvent, error) {
	rows, err := s.db.Query(`
		SELECT `+prefixColumns("c", eventColumns)+`
		FROM calendar_events c
		JOIN calendar_events_fts fts ON fts.rowid = c.localId
		WHERE calendar_events_fts MATCH ?
		ORDER BY c.startAt, c.localId
	`, query)
	if err != nil {
		return nil, err
	}
	return collectEvents(rows)
}

// Events returns all events, ascending by start instant. Full scans are fine
// at local-dataset scale; callers needing narrower reads use EventsInRange or
// SearchEvents.
func (s *Store) Events() ([]CalendarEvent, error) {
	rows, err := s.db.Query(
		"SELECT " + eventColumns + " FROM calendar_events ORDER BY startAt, localId")
	if err != nil {
		return nil, err
	}
	return collectEvents(rows)
}

// ToggleEventActive flips the event's isActive flag and refreshes updatedAt.
func (s *Store) ToggleEventActive(id string) error {
	res, err := s.db.Exec(`
		UPDATE calendar_events SET isActive = 1 - isActive, updatedAt = ?
		WHERE id = ?
	`, formatTime(time.Now()), id)
	if err != nil {
		return wrapWriteErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("event %s: %w", id, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*CalendarEvent, error) {
	var e CalendarEvent
	var summary, description, location sql.NullString
	var start, end, startAt, endAt sql.NullString
	var recurrence, recurrenceRule, recurrenceException sql.NullString
	var attendees, creator, organizer sql.NullString
	var htmlLink, iCalUID sql.NullString
	var sequence sql.NullInt64
	var status, transparency, visibility, hangoutLink sql.NullString
	var conferenceData, reminders, source, attachments, eventType sql.NullString
	var isActive int
	var createdAt, updatedAt string

	err := row.Scan(
		&e.localID, &e.ID, &summary, &description, &location, &start, &end,
		&startAt, &endAt, &recurrence, &recurrenceRule, &recurrenceException,
		&attendees, &creator, &organizer, &htmlLink, &iCalUID, &sequence,
		&status, &transparency, &visibility, &hangoutLink, &conferenceData,
		&reminders, &source, &attachments, &eventType, &isActive,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.Summary = summary.String
	e.Description = description.String
	e.Location = location.String
	e.RecurrenceRule = recurrenceRule.String
	e.HTMLLink = htmlLink.String
	e.ICalUID = iCalUID.String
	e.Sequence = int(sequence.Int64)
	e.Status = status.String
	e.Transparency = transparency.String
	e.Visibility = visibility.String
	e.HangoutLink = hangoutLink.String
	e.EventType = eventType.String
	e.IsActive = isActive != 0

	if err := decodeJSONColumn("calendar_events", "start", e.ID, start, &e.Start); err != nil {
		return nil, err
	}
	if err := decodeJSONColumn("calendar_events", "end", e.ID, end, &e.End); err != nil {
		return nil, err
	}
	if err := decodeJSONColumn("calendar_events", "recurrence", e.ID, recurrence, &e.Recurrence); err != nil {
		return nil, err
	}
	if err := decodeJSONColumn("calendar_events", "recurrenceException", e.ID, recurrenceException, &e.RecurrenceException); err != nil {
		return nil, err
	}
	if err := decodeJSONColumn("calendar_events", "attendees", e.ID, attendees, &e.Attendees); err != nil {
		return nil, err
	}
	if err := decodeJSONColumn("calendar_events", "creator", e.ID, creator, &e.Creator); err != nil {
		return nil, err
	}
	if err := decodeJSONColumn("calendar_events", "organizer", e.ID, organizer, &e.Organizer); err != nil {
		return nil, err
	}
	if err := decodeJSONColumn("calendar_events", "conferenceData", e.ID, conferenceData, &e.ConferenceData); err != nil {
		return nil, err
	}
	if err := decodeJSONColumn("calendar_events", "reminders", e.ID, reminders, &e.Reminders); err != nil {
		return nil, err
	}
	if err := decodeJSONColumn("calendar_events", "source", e.ID, source, &e.Source); err != nil {
		return nil, err
	}
	if err := decodeJSONColumn("calendar_events", "attachments", e.ID, attachments, &e.Attachments); err != nil {
		return nil, err
	}

	if e.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if e.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}

func collectEvents(rows *sql.Rows) ([]CalendarEvent, error) {
	defer rows.Close()
	var events []CalendarEvent
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}
