//go:build sqlite_fts5

// ABOUTME: Message persistence tests
// ABOUTME: Validates upserts, thread listing, flag round-trips, and search
package db

import (
	"errors"
	"testing"
	"time"
)

func TestSaveMessageRoundTrip(t *testing.T) {
	store := newTestStore(t)

	date := time.Date(2024, 5, 20, 9, 30, 0, 0, time.UTC)
	msg := &Message{
		ID:          "msg-1",
		Subject:     "Quarterly figures",
		Body:        "Numbers attached, see the summary tab.",
		From:        "cfo@example.com",
		To:          []string{"team@example.com"},
		Cc:          []string{"audit@example.com"},
		Date:        &date,
		ThreadID:    "thread-7",
		Labels:      []string{"finance", "inbox"},
		IsRead:      true,
		IsStarred:   true,
		Attachments: []string{"deadbeef"},
	}

	if err := store.SaveMessage(msg); err != nil {
		t.Fatalf("SaveMessage failed: %v", err)
	}

	got, err := store.GetMessage("msg-1")
	if err != nil {
		t.Fatalf("GetMessage failed: %v", err)
	}
	if got.Subject != msg.Subject {
		t.Errorf("got subject %s, want %s", got.Subject, msg.Subject)
	}
	if got.From != "cfo@example.com" {
		t.Errorf("got from %s, want cfo@example.com", got.From)
	}
	if len(got.To) != 1 || got.To[0] != "team@example.com" {
		t.Errorf("recipients did not round-trip: %+v", got.To)
	}
	if got.Date == nil || !got.Date.Equal(date) {
		t.Errorf("got date %v, want %v", got.Date, date)
	}
	if len(got.Labels) != 2 {
		t.Errorf("labels did not round-trip: %+v", got.Labels)
	}
	if !got.IsRead || !got.IsStarred || got.IsTrash {
		t.Errorf("flags did not round-trip: %+v", got)
	}
	if len(got.Attachments) != 1 || got.Attachments[0] != "deadbeef" {
		t.Errorf("attachment hashes did not round-trip: %+v", got.Attachments)
	}
}

func TestUpdateMessageMissing(t *testing.T) {
	store := newTestStore(t)

	err := store.UpdateMessage(&Message{ID: "msg-ghost"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestMessagesInThread(t *testing.T) {
	store := newTestStore(t)

	mk := func(id, thread string, at time.Time) {
		msg := &Message{ID: id, ThreadID: thread, Subject: id, Date: &at}
		if err := store.SaveMessage(msg); err != nil {
			t.Fatalf("SaveMessage %s failed: %v", id, err)
		}
	}
	base := time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC)
	mk("msg-2", "thread-1", base.Add(time.Hour))
	mk("msg-1", "thread-1", base)
	mk("msg-3", "thread-2", base)

	got, err := store.MessagesInThread("thread-1")
	if err != nil {
		t.Fatalf("MessagesInThread failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d messages, want 2", len(got))
	}
	// Chronological within the thread
	if got[0].ID != "msg-1" || got[1].ID != "msg-2" {
		t.Errorf("got order [%s %s], want [msg-1 msg-2]", got[0].ID, got[1].ID)
	}
}

func TestMessagesNewestFirst(t *testing.T) {
	store := newTestStore(t)

	base := time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC)
	for i, id := range []string{"msg-old", "msg-mid", "msg-new"} {
		at := base.Add(time.Duration(i) * time.Hour)
		if err := store.SaveMessage(&Message{ID: id, Date: &at}); err != nil {
			t.Fatalf("SaveMessage failed: %v", err)
		}
	}

	got, err := store.Messages()
	if err != nil {
		t.Fatalf("Messages failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d messages, want 3", len(got))
	}
	if got[0].ID != "msg-new" {
		t.Errorf("got first message %s, want msg-new", got[0].ID)
	}
}

func TestSearchMessages(t *testing.T) {
	store := newTestStore(t)

	msgs := []*Message{
		{ID: "msg-1", Subject: "Invoice overdue", Body: "please pay by Friday"},
		{ID: "msg-2", Subject: "Lunch?", Body: "the usual place"},
	}
	for _, m := range msgs {
		if err := store.SaveMessage(m); err != nil {
			t.Fatalf("SaveMessage failed: %v", err)
		}
	}

	got, err := store.SearchMessages("invoice")
	if err != nil {
		t.Fatalf("SearchMessages failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != "msg-1" {
		t.Fatalf("subject search failed, got %d results", len(got))
	}

	// Body text is indexed too
	got, err = store.SearchMessages("friday")
	if err != nil {
		t.Fatalf("SearchMessages failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != "msg-1" {
		t.Fatalf("body search failed, got %d results", len(got))
	}

	// Deleted messages leave the index
	if err := store.DeleteMessage("msg-1"); err != nil {
		t.Fatalf("DeleteMessage failed: %v", err)
	}
	got, err = store.SearchMessages("invoice")
	if err != nil {
		t.Fatalf("SearchMessages failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("stale index: deleted message still matches")
	}
}
