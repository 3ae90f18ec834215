// ABOUTME: Tags, participants, and their join-table associations
// ABOUTME: Link rows cascade when either parent entity is deleted
package db

import (
	"database/sql"
	"fmt"
	"time"
)

// SaveTag inserts or replaces the tag keyed by its external id.
func (s *Store) SaveTag(t *Tag) error {
	now := time.Now().UTC().Truncate(time.Second)
	_, err := s.db.Exec(`
		INSERT INTO tags (id, name, color, createdAt)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, color = excluded.color
	`, t.ID, t.Name, nullStr(t.Color), formatTime(now))
	if err != nil {
		return wrapWriteErr(err)
	}

	// On the conflict branch LastInsertId is not the row's rowid and the
	// stored createdAt is the original one, so read both back.
	var createdAt string
	err = s.db.QueryRow("SELECT localId, createdAt FROM tags WHERE id = ?", t.ID).
		Scan(&t.localID, &createdAt)
	if err != nil {
		return err
	}
	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return err
	}
	return nil
}

// GetTag returns the tag with the given external id, or ErrNotFound.
func (s *Store) GetTag(id string) (*Tag, error) {
	var t Tag
	var color sql.NullString
	var createdAt string
	err := s.db.QueryRow(
		"SELECT localId, id, name, color, createdAt FROM tags WHERE id = ?", id).
		Scan(&t.localID, &t.ID, &t.Name, &color, &createdAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("tag %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	t.Color = color.String
	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// Tags returns all tags ordered by name.
func (s *Store) Tags() ([]Tag, error) {
	rows, err := s.db.Query(
		"SELECT localId, id, name, color, createdAt FROM tags ORDER BY name, localId")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []Tag
	for rows.Next() {
		var t Tag
		var color sql.NullString
		var createdAt string
		if err := rows.Scan(&t.localID, &t.ID, &t.Name, &color, &createdAt); err != nil {
			return nil, err
		}
		t.Color = color.String
		if t.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// DeleteTag removes the tag; all of its join rows cascade.
func (s *Store) DeleteTag(id string) error {
	_, err := s.db.Exec("DELETE FROM tags WHERE id = ?", id)
	return wrapWriteErr(err)
}

// SaveParticipant inserts or replaces the participant keyed by external id.
func (s *Store) SaveParticipant(p *Participant) error {
	now := time.Now().UTC().Truncate(time.Second)
	_, err := s.db.Exec(`
		INSERT INTO participants (id, email, displayName, avatarUrl, createdAt)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET email = excluded.email,
			displayName = excluded.displayName, avatarUrl = excluded.avatarUrl
	`, p.ID, p.Email, nullStr(p.DisplayName), nullStr(p.AvatarURL), formatTime(now))
	if err != nil {
		return wrapWriteErr(err)
	}

	var createdAt string
	err = s.db.QueryRow("SELECT localId, createdAt FROM participants WHERE id = ?", p.ID).
		Scan(&p.localID, &createdAt)
	if err != nil {
		return err
	}
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return err
	}
	return nil
}

// GetParticipant returns the participant with the given external id, or
// ErrNotFound.
func (s *Store) GetParticipant(id string) (*Participant, error) {
	p, err := scanParticipant(s.db.QueryRow(
		"SELECT localId, id, email, displayName, avatarUrl, createdAt FROM participants WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("participant %s: %w", id, ErrNotFound)
	}
	return p, err
}

// Participants returns all participants ordered by email.
func (s *Store) Participants() ([]Participant, error) {
	rows, err := s.db.Query(
		"SELECT localId, id, email, displayName, avatarUrl, createdAt FROM participants ORDER BY email, localId")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var participants []Participant
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, err
		}
		participants = append(participants, *p)
	}
	return participants, rows.Err()
}

// DeleteParticipant removes the participant; join rows cascade.
func (s *Store) DeleteParticipant(id string) error {
	_, err := s.db.Exec("DELETE FROM participants WHERE id = ?", id)
	return wrapWriteErr(err)
}

func scanParticipant(row rowScanner) (*Participant, error) {
	var p Participant
	var displayName, avatarURL sql.NullString
	var createdAt string
	err := row.Scan(&p.localID, &p.ID, &p.Email, &displayName, &avatarURL, &createdAt)
	if err != nil {
		return nil, err
	}
	p.DisplayName = displayName.String
	p.AvatarURL = avatarURL.String
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// Association writes are idempotent: re-linking an existing pair is a no-op.
// Linking against a missing parent fails the foreign key and surfaces as
// ErrConstraint.

// TagEvent associates a tag with a calendar event.
func (s *Store) TagEvent(eventID, tagID string) error {
	return s.link("event_tags", "eventId", "tagId", eventID, tagID)
}

// UntagEvent removes the association; absent pairs are a no-op.
func (s *Store) UntagEvent(eventID, tagID string) error {
	return s.unlink("event_tags", "eventId", "tagId", eventID, tagID)
}

// TagMessage associates a tag with a message.
func (s *Store) TagMessage(messageID, tagID string) error {
	return s.link("message_tags", "messageId", "tagId", messageID, tagID)
}

// UntagMessage removes the association.
func (s *Store) UntagMessage(messageID, tagID string) error {
	return s.unlink("message_tags", "messageId", "tagId", messageID, tagID)
}

// TagTask associates a tag with a task.
func (s *Store) TagTask(taskID, tagID string) error {
	return s.link("task_tags", "taskId", "tagId", taskID, tagID)
}

// UntagTask removes the association.
func (s *Store) UntagTask(taskID, tagID string) error {
	return s.unlink("task_tags", "taskId", "tagId", taskID, tagID)
}

func (s *Store) link(table, leftCol, rightCol, left, right string) error {
	stmt := fmt.Sprintf(
		"INSERT OR IGNORE INTO %s (%s, %s, createdAt) VALUES (?, ?, ?)",
		table, leftCol, rightCol)
	_, err := s.db.Exec(stmt, left, right, formatTime(time.Now()))
	return wrapWriteErr(err)
}

func (s *Store) unlink(table, leftCol, rightCol, left, right string) error {
	stmt := fmt.Sprintf("DELETE FROM %s WHERE %s = ? AND %s = ?", table, leftCol, rightCol)
	_, err := s.db.Exec(stmt, left, right)
	return wrapWriteErr(err)
}

// EventTags returns the tags associated with an event, ordered by name.
func (s *Store) EventTags(eventID string) ([]Tag, error) {
	return s.linkedTags("event_tags", "eventId", eventID)
}

// MessageTags returns the tags associated with a message.
func (s *Store) MessageTags(messageID string) ([]Tag, error) {
	return s.linkedTags("message_tags", "messageId", messageID)
}

// TaskTags returns the tags associated with a task.
func (s *Store) TaskTags(taskID string) ([]Tag, error) {
	return s.linkedTags("task_tags", "taskId", taskID)
}

func (s *Store) linkedTags(table, col, id string) ([]Tag, error) {
	stmt := fmt.Sprintf(`
		SELECT t.localId, t.id, t.name, t.color, t.createdAt
		FROM tags t JOIN %s j ON j.tagId = t.id
		WHERE j.%s = ?
		ORDER BY t.name, t.localId
	`, table, col)
	rows, err := s.db.Query(stmt, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []Tag
	for rows.Next() {
		var t Tag
		var color sql.NullString
		var createdAt string
		if err := rows.Scan(&t.localID, &t.ID, &t.Name, &color, &createdAt); err != nil {
			return nil, err
		}
		t.Color = color.String
		if t.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// EventsWithTag returns the events carrying the tag, ascending by start
// instant.
func (s *Store) EventsWithTag(tagID string) ([]CalendarEvent, error) {
	rows, err := s.db.Query(`
		SELECT `+prefixColumns("c", eventColumns)+`
		FROM calendar_events c JOIN event_tags j ON j.eventId = c.id
		WHERE j.tagId = ?
		ORDER BY c.startAt, c.localId
	`, tagID)
	if err != nil {
		return nil, err
	}
	return collectEvents(rows)
}

// TasksWithTag returns the tasks carrying the tag, in insertion order.
func (s *Store) TasksWithTag(tagID string) ([]Task, error) {
	rows, err := s.db.Query(`
		SELECT `+prefixColumns("t", taskColumns)+`
		FROM tasks t JOIN task_tags j ON j.taskId = t.id
		WHERE j.tagId = ?
		ORDER BY t.localId
	`, tagID)
	if err != nil {
		return nil, err
	}
	return collectTasks(rows)
}

// MessagesWithTag returns the messages carrying the tag, newest first.
func (s *Store) MessagesWithTag(tagID string) ([]Message, error) {
	rows, err := s.db.Query(`
		SELECT `+prefixColumns("m", messageColumns)+`
		FROM messages m JOIN message_tags j ON j.messageId = m.id
		WHERE j.tagId = ?
		ORDER BY m.date DESC, m.localId
	`, tagID)
	if err != nil {
		return nil, err
	}
	return collectMessages(rows)
}

// AddEventParticipant associates a participant with an event, with an
// optional role ("organizer", "attendee", "optional") and response status
// ("accepted", "declined", "tentative", "needsAction"). Re-adding an existing
// pair updates the qualifiers.
func (s *Store) AddEventParticipant(eventID, participantID, role, responseStatus string) error {
	_, err := s.db.Exec(`
		INSERT INTO event_participants (eventId, participantId, role, responseStatus, createdAt)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(eventId, participantId) DO UPDATE SET
			role = excluded.role, responseStatus = excluded.responseStatus
	`, eventID, participantID, nullStr(role), nullStr(responseStatus), formatTime(time.Now()))
	return wrapWriteErr(err)
}

// AddMessageParticipant associates a participant with a message, with an
// optional role ("from", "to", "cc", "bcc").
func (s *Store) AddMessageParticipant(messageID, participantID, role string) error {
	_, err := s.db.Exec(`
		INSERT INTO message_participants (messageId, participantId, role, createdAt)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(messageId, participantId) DO UPDATE SET role = excluded.role
	`, messageID, participantID, nullStr(role), formatTime(time.Now()))
	return wrapWriteErr(err)
}

// AddTaskParticipant associates a participant with a task, with an optional
// role ("creator", "assignee", "collaborator").
func (s *Store) AddTaskParticipant(taskID, participantID, role string) error {
	_, err := s.db.Exec(`
		INSERT INTO task_participants (taskId, participantId, role, createdAt)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(taskId, participantId) DO UPDATE SET role = excluded.role
	`, taskID, participantID, nullStr(role), formatTime(time.Now()))
	return wrapWriteErr(err)
}

// EventParticipants returns an event's participants with their role and
// response status, ordered by email.
func (s *Store) EventParticipants(eventID string) ([]EventParticipant, error) {
	rows, err := s.db.Query(`
		SELECT p.localId, p.id, p.email, p.displayName, p.avatarUrl, p.createdAt,
			j.role, j.responseStatus
		FROM participants p JOIN event_participants j ON j.participantId = p.id
		WHERE j.eventId = ?
		ORDER BY p.email, p.localId
	`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EventParticipant
	for rows.Next() {
		var ep EventParticipant
		var displayName, avatarURL, role, responseStatus sql.NullString
		var createdAt string
		err := rows.Scan(&ep.Participant.localID, &ep.Participant.ID,
			&ep.Participant.Email, &displayName, &avatarURL, &createdAt,
			&role, &responseStatus)
		if err != nil {
			return nil, err
		}
		ep.Participant.DisplayName = displayName.String
		ep.Participant.AvatarURL = avatarURL.String
		if ep.Participant.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		ep.Role = role.String
		ep.ResponseStatus = responseStatus.String
		out = append(out, ep)
	}
	return out, rows.Err()
}

// MessageParticipants returns a message's participants with their role.
func (s *Store) MessageParticipants(messageID string) ([]MessageParticipant, error) {
	rows, err := s.db.Query(`
		SELECT p.localId, p.id, p.email, p.displayName, p.avatarUrl, p.createdAt, j.role
		FROM participants p JOIN message_participants j ON j.participantId = p.id
		WHERE j.messageId = ?
		ORDER BY p.email, p.localId
	`, messageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MessageParticipant
	for rows.Next() {
		var mp MessageParticipant
		var displayName, avatarURL, role sql.NullString
		var createdAt string
		err := rows.Scan(&mp.Participant.localID, &mp.Participant.ID,
			&mp.Participant.Email, &displayName, &avatarURL, &createdAt, &role)
		if err != nil {
			return nil, err
		}
		mp.Participant.DisplayName = displayName.String
		mp.Participant.AvatarURL = avatarURL.String
		if mp.Participant.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		mp.Role = role.String
		out = append(out, mp)
	}
	return out, rows.Err()
}

// TaskParticipants returns a task's participants with their role.
func (s *Store) TaskParticipants(taskID string) ([]TaskParticipant, error) {
	rows, err := s.db.Query(`
		SELECT p.localId, p.id, p.email, p.displayName, p.avatarUrl, p.createdAt, j.role
		FROM participants p JOIN task_participants j ON j.participantId = p.id
		WHERE j.taskId = ?
		ORDER BY p.email, p.localId
	`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TaskParticipant
	for rows.Next() {
		var tp TaskParticipant
		var displayName, avatarURL, role sql.NullString
		var createdAt string
		err := rows.Scan(&tp.Participant.localID, &tp.Participant.ID,
			&tp.Participant.Email, &displayName, &avatarURL, &createdAt, &role)
		if err != nil {
			return nil, err
		}
		tp.Participant.DisplayName = displayName.String
		tp.Participant.AvatarURL = avatarURL.String
		if tp.Participant.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		tp.Role = role.String
		out = append(out, tp)
	}
	return out, rows.Err()
}
