// ABOUTME: Message reads and writes
// ABOUTME: Upserts keyed by external id, thread listing, full-text search
package db

import (
	"database/sql"
	"fmt"
	"time"
)

const messageColumns = `localId, id, subject, body, "from", "to", cc, bcc, date,
	threadId, labels, isRead, isImportant, isStarred, isDraft, isTrash, isSpam,
	attachments, createdAt, updatedAt`

type messageRow struct {
	to, cc, bcc any
	labels      any
	attachments any
}

func encodeMessage(m *Message) (*messageRow, error) {
	var r messageRow
	var err error
	if r.to, err = jsonSlice(m.To); err != nil {
		return nil, err
	}
	if r.cc, err = jsonSlice(m.Cc); err != nil {
		return nil, err
	}
	if r.bcc, err = jsonSlice(m.Bcc); err != nil {
		return nil, err
	}
	if r.labels, err = jsonSlice(m.Labels); err != nil {
		return nil, err
	}
	if r.attachments, err = jsonSlice(m.Attachments); err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *messageRow) mutableArgs(m *Message) []any {
	return []any{
		nullStr(m.Subject), nullStr(m.Body), nullStr(m.From),
		r.to, r.cc, r.bcc, formatTimePtr(m.Date), nullStr(m.ThreadID), r.labels,
		boolToInt(m.IsRead), boolToInt(m.IsImportant), boolToInt(m.IsStarred),
		boolToInt(m.IsDraft), boolToInt(m.IsTrash), boolToInt(m.IsSpam),
		r.attachments,
	}
}

// SaveMessage inserts or replaces the message keyed by its external id.
func (s *Store) SaveMessage(m *Message) error {
	return s.writeMessage(m, false)
}

// UpdateMessage mutates an existing message; ErrNotFound if absent.
func (s *Store) UpdateMessage(m *Message) error {
	return s.writeMessage(m, true)
}

func (s *Store) writeMessage(m *Message, mustExist bool) error {
	row, err := encodeMessage(m)
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
	err = tx.QueryRow("SELECT localId, createdAt FROM messages WHERE id = ?", m.ID).
		Scan(&localID, &createdAtStr)

	now := time.Now().UTC().Truncate(time.Second)
	switch {
	case err == sql.ErrNoRows:
		if mustExist {
			return fmt.Errorf("update message %s: %w", m.ID, ErrNotFound)
		}
		args := append([]any{m.ID}, row.mutableArgs(m)...)
		args = append(args, formatTime(now), formatTime(now))
		res, execErr := tx.Exec(`
			INSERT INTO messages (id, subject, body, "from", "to", cc, bcc, date,
				threadId, labels, isRead, isImportant, isStarred, isDraft, isTrash,
				isSpam, attachments, createdAt, updatedAt)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, args...)
		if execErr != nil {
			return wrapWriteErr(execErr)
		}
		if localID, err = res.LastInsertId(); err != nil {
			return err
		}
		m.CreatedAt = now
	case err != nil:
		return err
	default:
		createdAt, parseErr := parseTime(createdAtStr)
		if parseErr != nil {
			return parseErr
		}
		args := append(row.mutableArgs(m), formatTime(now), localID)
		if _, execErr := tx.Exec(`
			UPDATE messages SET subject = ?, body = ?, "from" = ?, "to" = ?, cc = ?,
				bcc = ?, date = ?, threadId = ?, labels = ?, isRead = ?,
				isImportant = ?, isStarred = ?, isDraft = ?, isTrash = ?, isSpam = ?,
				attachments = ?, updatedAt = ?
			WHERE localId = ?
		`, args...); execErr != nil {
			return wrapWriteErr(execErr)
		}
		m.CreatedAt = createdAt
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	m.localID = localID
	m.UpdatedAt = now
	return nil
}

// DeleteMessage removes the message with the given external id.
func (s *Store) DeleteMessage(id string) error {
	_, err := s.db.Exec("DELETE FROM messages WHERE id = ?", id)
	return wrapWriteErr(err)
}

// GetMessage returns the message with the given external id, or ErrNotFound.
func (s *Store) GetMessage(id string) (*Message, error) {
	row := s.db.QueryRow("SELECT "+messageColumns+" FROM messages WHERE id = ?", id)
	m, err := scanMessage(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("message %s: %w", id, ErrNotFound)
	}
	return m, err
}

// Messages returns all messages, newest date first.
func (s *Store) Messages() ([]Message, error) {
	rows, err := s.db.Query(
		"SELECT " + messageColumns + " FROM messages ORDER BY date DESC, localId")
	if err != nil {
		return nil, err
	}
	return collectMessages(rows)
}

// MessagesInThread returns a thread's messages in chronological order.
func (s *Store) MessagesInThread(threadID string) ([]Message, error) {
	rows, err := s.db.Query(
		"SELECT "+messageColumns+" FROM messages WHERE threadId = ? ORDER BY date, localId",
		threadID)
	if err != nil {
		return nil, err
	}
	return collectMessages(rows)
}

// SearchMessages returns messages matching the full-text query over subject
// and body, ordered by localId.
func (s *Store) SearchMessages(query string) ([]Message, error) {
	rows, err := s.db.Query(`
		SELECT `+prefixColumns("m", messageColumns)+`
		FROM messages m
		JOIN messages_fts fts ON fts.rowid = m.localId
		WHERE messages_fts MATCH ?
		ORDER BY m.localId
	`, query)
	if err != nil {
		return nil, err
	}
	return collectMessages(rows)
}

func scanMessage(row rowScanner) (*Message, error) {
	var m Message
	var subject, body, from sql.NullString
	var to, cc, bcc, labels, attachments sql.NullString
	var date, threadID sql.NullString
	var isRead, isImportant, isStarred, isDraft, isTrash, isSpam int
	var createdAt, updatedAt string

	err := row.Scan(
		&m.localID, &m.ID, &subject, &body, &from, &to, &cc, &bcc, &date,
		&threadID, &labels, &isRead, &isImportant, &isStarred, &isDraft,
		&isTrash, &isSpam, &attachments, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	m.Subject = subject.String
	m.Body = body.String
	m.From = from.String
	m.ThreadID = threadID.String
	m.IsRead = isRead != 0
	m.IsImportant = isImportant != 0
	m.IsStarred = isStarred != 0
	m.IsDraft = isDraft != 0
	m.IsTrash = isTrash != 0
	m.IsSpam = isSpam != 0

	if err := decodeJSONColumn("messages", "to", m.ID, to, &m.To); err != nil {
		return nil, err
	}
	if err := decodeJSONColumn("messages", "cc", m.ID, cc, &m.Cc); err != nil {
		return nil, err
	}
	if err := decodeJSONColumn("messages", "bcc", m.ID, bcc, &m.Bcc); err != nil {
		return nil, err
	}
	if err := decodeJSONColumn("messages", "labels", m.ID, labels, &m.Labels); err != nil {
		return nil, err
	}
	if err := decodeJSONColumn("messages", "attachments", m.ID, attachments, &m.Attachments); err != nil {
		return nil, err
	}

	if m.Date, err = parseTimePtr(date); err != nil {
		return nil, err
	}
	if m.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if m.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

func collectMessages(rows *sql.Rows) ([]Message, error) {
	defer rows.Close()
	var messages []Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, *m)
	}
	return messages, rows.Err()
}
