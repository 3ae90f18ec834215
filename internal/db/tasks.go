// ABOUTME: Task reads and writes
// ABOUTME: Upserts keyed by external id, status filters, full-text search
package db

import (
	"database/sql"
	"fmt"
	"time"
)

const taskColumns = `localId, id, title, description, notes, dueDate, important,
	calEventId, listId, status, priority, recurring, recurringRule, parentTaskId,
	projectId, createdAt, updatedAt`

func taskMutableArgs(t *Task) []any {
	return []any{
		t.Title, nullStr(t.Description), nullStr(t.Notes),
		formatTimePtr(t.DueDate), boolToInt(t.Important),
		nullStr(t.CalEventID), nullStr(t.ListID),
		string(t.Status), string(t.Priority),
		boolToInt(t.Recurring), nullStr(t.RecurringRule),
		nullStr(t.ParentTaskID), nullStr(t.ProjectID),
	}
}

// SaveTask inserts or replaces the task keyed by its external id. An empty
// Status or Priority is normalized to the schema defaults before writing, so
// a bare Task{ID, Title} round-trips to a well-formed row.
func (s *Store) SaveTask(t *Task) error {
	return s.writeTask(t, false)
}

// UpdateTask mutates an existing task; ErrNotFound if the id was never saved.
// No row is created on the failure path.
func (s *Store) UpdateTask(t *Task) error {
	return s.writeTask(t, true)
}

func (s *Store) writeTask(t *Task, mustExist bool) error {
	if t.Status == "" {
		t.Status = TaskPending
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var localID int64
	var createdAtStr string
	err = tx.QueryRow("SELECT localId, createdAt FROM tasks WHERE id = ?", t.ID).
		Scan(&localID, &createdAtStr)

	now := time.Now().UTC().Truncate(time.Second)
	switch {
	case err == sql.ErrNoRows:
		if mustExist {
			return fmt.Errorf("update task %s: %w", t.ID, ErrNotFound)
		}
		args := append([]any{t.ID}, taskMutableArgs(t)...)
		args = append(args, formatTime(now), formatTime(now))
		res, execErr := tx.Exec(`
			INSERT INTO tasks (id, title, description, notes, dueDate, important,
				calEventId, listId, status, priority, recurring, recurringRule,
				parentTaskId, projectId, createdAt, updatedAt)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, args...)
		if execErr != nil {
			return wrapWriteErr(execErr)
		}
		if localID, err = res.LastInsertId(); err != nil {
			return err
		}
		t.CreatedAt = now
	case err != nil:
		return err
	default:
		createdAt, parseErr := parseTime(createdAtStr)
		if parseErr != nil {
			return parseErr
		}
		args := append(taskMutableArgs(t), formatTime(now), localID)
		if _, execErr := tx.Exec(`
			UPDATE tasks SET title = ?, description = ?, notes = ?, dueDate = ?,
				important = ?, calEventId = ?, listId = ?, status = ?, priority = ?,
				recurring = ?, recurringRule = ?, parentTaskId = ?, projectId = ?,
				updatedAt = ?
			WHERE localId = ?
		`, args...); execErr != nil {
			return wrapWriteErr(execErr)
		}
		t.CreatedAt = createdAt
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	t.localID = localID
	t.UpdatedAt = now
	return nil
}

// DeleteTask removes the task with the given external id; join rows cascade.
func (s *Store) DeleteTask(id string) error {
	_, err := s.db.Exec("DELETE FROM tasks WHERE id = ?", id)
	return wrapWriteErr(err)
}

// GetTask returns the task with the given external id, or ErrNotFound.
func (s *Store) GetTask(id string) (*Task, error) {
	row := s.db.QueryRow("SELECT "+taskColumns+" FROM tasks WHERE id = ?", id)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	return t, err
}

// Tasks returns all tasks in insertion order.
func (s *Store) Tasks() ([]Task, error) {
	rows, err := s.db.Query("SELECT " + taskColumns + " FROM tasks ORDER BY localId")
	if err != nil {
		return nil, err
	}
	return collectTasks(rows)
}

// TasksByStatus returns tasks with the given status, in insertion order. The
// status value is matched verbatim; the store imposes no state machine.
func (s *Store) TasksByStatus(status TaskStatus) ([]Task, error) {
	rows, err := s.db.Query(
		"SELECT "+taskColumns+" FROM tasks WHERE status = ? ORDER BY localId",
		string(status))
	if err != nil {
		return nil, err
	}
	return collectTasks(rows)
}

// TasksDueBefore returns tasks with a due date strictly before t, ascending
// by due date.
func (s *Store) TasksDueBefore(t time.Time) ([]Task, error) {
	rows, err := s.db.Query(`
		SELECT `+taskColumns+` FROM tasks
		WHERE dueDate IS NOT NULL AND dueDate < ?
		ORDER BY dueDate, localId
	`, formatTime(t))
	if err != nil {
		return nil, err
	}
	return collectTasks(rows)
}

// SearchTasks returns tasks matching the full-text query over title and
// notes, ordered by localId.
func (s *Store) SearchTasks(query string) ([]Task, error) {
	rows, err := s.db.Query(`
		SELECT `+prefixColumns("t", taskColumns)+`
		FROM tasks t
		JOIN tasks_fts fts ON fts.rowid = t.localId
		WHERE tasks_fts MATCH ?
		ORDER BY t.localId
	`, query)
	if err != nil {
		return nil, err
	}
	return collectTasks(rows)
}

func scanTask(row rowScanner) (*Task, error) {
	var t Task
	var description, notes, dueDate sql.NullString
	var calEventID, listID, recurringRule, parentTaskID, projectID sql.NullString
	var status, priority string
	var important, recurring int
	var createdAt, updatedAt string

	err := row.Scan(
		&t.localID, &t.ID, &t.Title, &description, &notes, &dueDate, &important,
		&calEventID, &listID, &status, &priority, &recurring, &recurringRule,
		&parentTaskID, &projectID, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.Description = description.String
	t.Notes = notes.String
	t.Important = important != 0
	t.CalEventID = calEventID.String
	t.ListID = listID.String
	t.Status = TaskStatus(status)
	t.Priority = TaskPriority(priority)
	t.Recurring = recurring != 0
	t.RecurringRule = recurringRule.String
	t.ParentTaskID = parentTaskID.String
	t.ProjectID = projectID.String

	if t.DueDate, err = parseTimePtr(dueDate); err != nil {
		return nil, err
	}
	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if t.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func collectTasks(rows *sql.Rows) ([]Task, error) {
	defer rows.Close()
	var tasks []Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}
