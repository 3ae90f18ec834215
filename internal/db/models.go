// ABOUTME: Domain entities stored by the daybook database
// ABOUTME: Calendar events, tasks, messages, tags, participants, attachments
package db

import "time"

// EventDateTime is a calendar instant: either an all-day date or a wall-clock
// dateTime with an optional IANA time zone name. Matches the Google Calendar
// wire shape.
type EventDateTime struct {
	Date     string `json:"date,omitempty"`
	DateTime string `json:"dateTime,omitempty"`
	TimeZone string `json:"timeZone,omitempty"`
}

// EventAttendee is one invitee on a calendar event.
type EventAttendee struct {
	Email          string `json:"email,omitempty"`
	DisplayName    string `json:"displayName,omitempty"`
	Optional       bool   `json:"optional,omitempty"`
	ResponseStatus string `json:"responseStatus,omitempty"`
}

// EventPerson identifies an event's creator or organizer.
type EventPerson struct {
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	Self        bool   `json:"self,omitempty"`
}

// ConferenceEntryPoint is one way to join a conference (video URI, phone, ...).
type ConferenceEntryPoint struct {
	EntryPointType string `json:"entryPointType,omitempty"`
	URI            string `json:"uri,omitempty"`
	Label          string `json:"label,omitempty"`
}

// ConferenceSolution names the conferencing product backing an event.
type ConferenceSolution struct {
	Type    string `json:"type,omitempty"`
	Name    string `json:"name,omitempty"`
	IconURI string `json:"iconUri,omitempty"`
}

// ConferenceData carries the conferencing metadata attached to an event.
type ConferenceData struct {
	ConferenceID string                 `json:"conferenceId,omitempty"`
	EntryPoints  []ConferenceEntryPoint `json:"entryPoints,omitempty"`
	Solution     *ConferenceSolution    `json:"conferenceSolution,omitempty"`
	Notes        string                 `json:"notes,omitempty"`
}

// ReminderOverride is a single non-default reminder.
type ReminderOverride struct {
	Method  string `json:"method,omitempty"`
	Minutes int    `json:"minutes,omitempty"`
}

// EventReminders configures reminders for an event.
type EventReminders struct {
	UseDefault bool               `json:"useDefault"`
	Overrides  []ReminderOverride `json:"overrides,omitempty"`
}

// EventSource links an event back to where it was created.
type EventSource struct {
	Title string `json:"title,omitempty"`
	URL   string `json:"url,omitempty"`
}

// EventAttachmentRef is attachment metadata carried on an event record. The
// bytes themselves live in the content-addressed attachment store.
type EventAttachmentRef struct {
	FileURL  string `json:"fileUrl,omitempty"`
	Title    string `json:"title,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
	FileSize int64  `json:"fileSize,omitempty"`
}

// CalendarEvent is a stored calendar event. Nested structures persist as JSON
// text columns; Start/End additionally project to indexed instant columns for
// range queries.
type CalendarEvent struct {
	localID             int64
	ID                  string               `json:"id"`
	Summary             string               `json:"summary,omitempty"`
	Description         string               `json:"description,omitempty"`
	Location            string               `json:"location,omitempty"`
	Start               *EventDateTime       `json:"start,omitempty"`
	End                 *EventDateTime       `json:"end,omitempty"`
	Recurrence          []string             `json:"recurrence,omitempty"`
	RecurrenceRule      string               `json:"recurrenceRule,omitempty"`
	RecurrenceException []string             `json:"recurrenceException,omitempty"`
	Attendees           []EventAttendee      `json:"attendees,omitempty"`
	Creator             *EventPerson         `json:"creator,omitempty"`
	Organizer           *EventPerson         `json:"organizer,omitempty"`
	HTMLLink            string               `json:"htmlLink,omitempty"`
	ICalUID             string               `json:"iCalUID,omitempty"`
	Sequence            int                  `json:"sequence,omitempty"`
	Status              string               `json:"status,omitempty"`
	Transparency        string               `json:"transparency,omitempty"`
	Visibility          string               `json:"visibility,omitempty"`
	HangoutLink         string               `json:"hangoutLink,omitempty"`
	ConferenceData      *ConferenceData      `json:"conferenceData,omitempty"`
	Reminders           *EventReminders      `json:"reminders,omitempty"`
	Source              *EventSource         `json:"source,omitempty"`
	Attachments         []EventAttachmentRef `json:"attachments,omitempty"`
	EventType           string               `json:"eventType,omitempty"`
	IsActive            bool                 `json:"isActive"`
	CreatedAt           time.Time            `json:"createdAt"`
	UpdatedAt           time.Time            `json:"updatedAt"`
}

// TaskStatus is the persisted task state. The store preserves whatever value
// is set; these constants are the ones callers conventionally use.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskCancelled  TaskStatus = "cancelled"
)

// TaskPriority orders tasks by urgency.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

// Task is a stored to-do item, optionally linked to a calendar event, a list,
// a parent task, or a project.
type Task struct {
	localID       int64
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Description   string       `json:"description,omitempty"`
	Notes         string       `json:"notes,omitempty"`
	DueDate       *time.Time   `json:"dueDate,omitempty"`
	Important     bool         `json:"important"`
	CalEventID    string       `json:"calEventId,omitempty"`
	ListID        string       `json:"listId,omitempty"`
	Status        TaskStatus   `json:"status"`
	Priority      TaskPriority `json:"priority"`
	Recurring     bool         `json:"recurring"`
	RecurringRule string       `json:"recurringRule,omitempty"`
	ParentTaskID  string       `json:"parentTaskId,omitempty"`
	ProjectID     string       `json:"projectId,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// Message is a stored mail-style message. Attachments holds content hashes
// into the attachment store.
type Message struct {
	localID     int64
	ID          string     `json:"id"`
	Subject     string     `json:"subject,omitempty"`
	Body        string     `json:"body,omitempty"`
	From        string     `json:"from,omitempty"`
	To          []string   `json:"to,omitempty"`
	Cc          []string   `json:"cc,omitempty"`
	Bcc         []string   `json:"bcc,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
	ThreadID    string     `json:"threadId,omitempty"`
	Labels      []string   `json:"labels,omitempty"`
	IsRead      bool       `json:"isRead"`
	IsImportant bool       `json:"isImportant"`
	IsStarred   bool       `json:"isStarred"`
	IsDraft     bool       `json:"isDraft"`
	IsTrash     bool       `json:"isTrash"`
	IsSpam      bool       `json:"isSpam"`
	Attachments []string   `json:"attachments,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Tag is a user-defined label.
type Tag struct {
	localID   int64
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Participant is a person referenced by events, messages, or tasks.
type Participant struct {
	localID     int64
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName,omitempty"`
	AvatarURL   string    `json:"avatarUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Attachment is the metadata row for a content-addressed blob. Hash is the
// SHA-256 hex digest of the content and uniquely identifies it.
type Attachment struct {
	Hash             string    `json:"hash"`
	OriginalFilename string    `json:"originalFilename"`
	MimeType         string    `json:"mimeType"`
	FilePath         string    `json:"filePath"`
	FileSize         int64     `json:"fileSize"`
	CreatedAt        time.Time `json:"createdAt"`
}

// EventParticipant is a participant's association with an event.
type EventParticipant struct {
	Participant    Participant `json:"participant"`
	Role           string      `json:"role,omitempty"`
	ResponseStatus string      `json:"responseStatus,omitempty"`
}

// MessageParticipant is a participant's association with a message.
type MessageParticipant struct {
	Participant Participant `json:"participant"`
	Role        string      `json:"role,omitempty"`
}

// TaskParticipant is a participant's association with a task.
type TaskParticipant struct {
	Participant Participant `json:"participant"`
	Role        string      `json:"role,omitempty"`
}
