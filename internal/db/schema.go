// ABOUTME: Database schema definitions
// ABOUTME: SQL for entity tables, join tables, indexes, and FTS setup
package db

const schema = `
CREATE TABLE IF NOT EXISTS calendar_events (
    localId INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT NOT NULL UNIQUE,
    summary TEXT,
    description TEXT,
    location TEXT,
    start TEXT,
    "end" TEXT,
    startAt TEXT,
    endAt TEXT,
    recurrence TEXT,
    recurrenceRule TEXT,
    recurrenceException TEXT,
    attendees TEXT,
    creator TEXT,
    organizer TEXT,
    htmlLink TEXT,
    iCalUID TEXT,
    sequence INTEGER,
    status TEXT,
    transparency TEXT,
    visibility TEXT,
    hangoutLink TEXT,
    conferenceData TEXT,
    reminders TEXT,
    source TEXT,
    attachments TEXT,
    eventType TEXT,
    isActive INTEGER NOT NULL DEFAULT 0,
    createdAt TEXT NOT NULL,
    updatedAt TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS messages (
    localId INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT NOT NULL UNIQUE,
    subject TEXT,
    body TEXT,
    "from" TEXT,
    "to" TEXT,
    cc TEXT,
    bcc TEXT,
    date TEXT,
    threadId TEXT,
    labels TEXT,
    isRead INTEGER NOT NULL DEFAULT 0,
    isImportant INTEGER NOT NULL DEFAULT 0,
    isStarred INTEGER NOT NULL DEFAULT 0,
    isDraft INTEGER NOT NULL DEFAULT 0,
    isTrash INTEGER NOT NULL DEFAULT 0,
    isSpam INTEGER NOT NULL DEFAULT 0,
    attachments TEXT,
    createdAt TEXT NOT NULL,
    updatedAt TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS tasks (
    localId INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT NOT NULL UNIQUE,
    title TEXT NOT NULL,
    description TEXT,
    notes TEXT,
    dueDate TEXT,
    important INTEGER NOT NULL DEFAULT 0,
    calEventId TEXT,
    listId TEXT,
    status TEXT NOT NULL DEFAULT 'pending',
    priority TEXT NOT NULL DEFAULT 'medium',
    recurring INTEGER NOT NULL DEFAULT 0,
    recurringRule TEXT,
    parentTaskId TEXT,
    projectId TEXT,
    createdAt TEXT NOT NULL,
    updatedAt TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS tags (
    localId INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL,
    color TEXT,
    createdAt TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS participants (
    localId INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT NOT NULL UNIQUE,
    email TEXT NOT NULL,
    displayName TEXT,
    avatarUrl TEXT,
    createdAt TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS attachments (
    localId INTEGER PRIMARY KEY AUTOINCREMENT,
    hash TEXT NOT NULL UNIQUE,
    originalFilename TEXT NOT NULL,
    mimeType TEXT NOT NULL,
    filePath TEXT NOT NULL,
    fileSize INTEGER NOT NULL,
    createdAt TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS event_tags (
    eventId TEXT NOT NULL,
    tagId TEXT NOT NULL,
    createdAt TEXT NOT NULL,
    PRIMARY KEY (eventId, tagId),
    FOREIGN KEY (eventId) REFERENCES calendar_events(id) ON DELETE CASCADE,
    FOREIGN KEY (tagId) REFERENCES tags(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS event_participants (
    eventId TEXT NOT NULL,
    participantId TEXT NOT NULL,
    role TEXT,
    responseStatus TEXT,
    createdAt TEXT NOT NULL,
    PRIMARY KEY (eventId, participantId),
    FOREIGN KEY (eventId) REFERENCES calendar_events(id) ON DELETE CASCADE,
    FOREIGN KEY (participantId) REFERENCES participants(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS message_tags (
    messageId TEXT NOT NULL,
    tagId TEXT NOT NULL,
    createdAt TEXT NOT NULL,
    PRIMARY KEY (messageId, tagId),
    FOREIGN KEY (messageId) REFERENCES messages(id) ON DELETE CASCADE,
    FOREIGN KEY (tagId) REFERENCES tags(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS message_participants (
    messageId TEXT NOT NULL,
    participantId TEXT NOT NULL,
    role TEXT,
    createdAt TEXT NOT NULL,
    PRIMARY KEY (messageId, participantId),
    FOREIGN KEY (messageId) REFERENCES messages(id) ON DELETE CASCADE,
    FOREIGN KEY (participantId) REFERENCES participants(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS task_tags (
    taskId TEXT NOT NULL,
    tagId TEXT NOT NULL,
    createdAt TEXT NOT NULL,
    PRIMARY KEY (taskId, tagId),
    FOREIGN KEY (taskId) REFERENCES tasks(id) ON DELETE CASCADE,
    FOREIGN KEY (tagId) REFERENCES tags(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS task_participants (
    taskId TEXT NOT NULL,
    participantId TEXT NOT NULL,
    role TEXT,
    createdAt TEXT NOT NULL,
    PRIMARY KEY (taskId, participantId),
    FOREIGN KEY (taskId) REFERENCES tasks(id) ON DELETE CASCADE,
    FOREIGN KEY (participantId) REFERENCES participants(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_events_start ON calendar_events(startAt);
CREATE INDEX IF NOT EXISTS idx_messages_thread ON messages(threadId);
CREATE INDEX IF NOT EXISTS idx_messages_date ON messages(date);
CREATE INDEX IF NOT EXISTS idx_tasks_due ON tasks(dueDate);
CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);

CREATE VIRTUAL TABLE IF NOT EXISTS calendar_events_fts USING fts5(
    summary, description, location,
    content='calendar_events', content_rowid='localId'
);

CREATE VIRTUAL TABLE IF NOT EXISTS messages_fts USING fts5(
    subject, body,
    content='messages', content_rowid='localId'
);

CREATE VIRTUAL TABLE IF NOT EXISTS tasks_fts USING fts5(
    title, notes,
    content='tasks', content_rowid='localId'
);

-- Triggers to keep FTS in sync. Updates are delete-then-insert: external-content
-- FTS requires removing the old text before adding the new.
CREATE TRIGGER IF NOT EXISTS calendar_events_ai AFTER INSERT ON calendar_events BEGIN
  INSERT INTO calendar_events_fts(rowid, summary, description, location)
  VALUES (new.localId, new.summary, new.description, new.location);
END;

CREATE TRIGGER IF NOT EXISTS calendar_events_ad AFTER DELETE ON calendar_events BEGIN
  INSERT INTO calendar_events_fts(calendar_events_fts, rowid, summary, description, location)
  VALUES ('delete', old.localId, old.summary, old.description, old.location);
END;

CREATE TRIGGER IF NOT EXISTS calendar_events_au AFTER UPDATE ON calendar_events BEGIN
  INSERT INTO calendar_events_fts(calendar_events_fts, rowid, summary, description, location)
  VALUES ('delete', old.localId, old.summary, old.description, old.location);
  INSERT INTO calendar_events_fts(rowid, summary, description, location)
  VALUES (new.localId, new.summary, new.description, new.location);
END;

CREATE TRIGGER IF NOT EXISTS messages_ai AFTER INSERT ON messages BEGIN
  INSERT INTO messages_fts(rowid, subject, body)
  VALUES (new.localId, new.subject, new.body);
END;

CREATE TRIGGER IF NOT EXISTS messages_ad AFTER DELETE ON messages BEGIN
  INSERT INTO messages_fts(messages_fts, rowid, subject, body)
  VALUES ('delete', old.localId, old.subject, old.body);
END;

CREATE TRIGGER IF NOT EXISTS messages_au AFTER UPDATE ON messages BEGIN
  INSERT INTO messages_fts(messages_fts, rowid, subject, body)
  VALUES ('delete', old.localId, old.subject, old.body);
  INSERT INTO messages_fts(rowid, subject, body)
  VALUES (new.localId, new.subject, new.body);
END;

CREATE TRIGGER IF NOT EXISTS tasks_ai AFTER INSERT ON tasks BEGIN
  INSERT INTO tasks_fts(rowid, title, notes)
  VALUES (new.localId, new.title, new.notes);
END;

CREATE TRIGGER IF NOT EXISTS tasks_ad AFTER DELETE ON tasks BEGIN
  INSERT INTO tasks_fts(tasks_fts, rowid, title, notes)
  VALUES ('delete', old.localId, old.title, old.notes);
END;

CREATE TRIGGER IF NOT EXISTS tasks_au AFTER UPDATE ON tasks BEGIN
  INSERT INTO tasks_fts(tasks_fts, rowid, title, notes)
  VALUES ('delete', old.localId, old.title, old.notes);
  INSERT INTO tasks_fts(rowid, title, notes)
  VALUES (new.localId, new.title, new.notes);
END;
`
