//go:build sqlite_fts5

// ABOUTME: Tests for sample data population
// ABOUTME: Validates the seeded week is queryable through the store API
package seed

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/marlow/daybook/internal/db"
)

func TestPopulate(t *testing.T) {
	store, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer func() { _ = store.Close() }()

	anchor := time.Date(2024, 6, 12, 15, 0, 0, 0, time.UTC) // a Wednesday
	if err := Populate(store, anchor); err != nil {
		t.Fatalf("Populate failed: %v", err)
	}

	// Five standups plus client sync plus all hands
	events, err := store.Events()
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}
	if len(events) != 7 {
		t.Errorf("got %d events, want 7", len(events))
	}

	// The seeded week contains the anchor date
	monday := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	week, err := store.EventsInRange(monday, monday.AddDate(0, 0, 7))
	if err != nil {
		t.Fatalf("EventsInRange failed: %v", err)
	}
	if len(week) != len(events) {
		t.Errorf("got %d events in seeded week, want %d", len(week), len(events))
	}

	// Search reaches the seeded content
	found, err := store.SearchEvents("roadmap")
	if err != nil {
		t.Fatalf("SearchEvents failed: %v", err)
	}
	if len(found) != 1 || found[0].Summary != "Client sync" {
		t.Errorf("seeded client sync not searchable: %+v", found)
	}

	tasks, err := store.Tasks()
	if err != nil {
		t.Fatalf("Tasks failed: %v", err)
	}
	if len(tasks) != 3 {
		t.Errorf("got %d tasks, want 3", len(tasks))
	}

	tags, err := store.Tags()
	if err != nil {
		t.Fatalf("Tags failed: %v", err)
	}
	if len(tags) != 3 {
		t.Errorf("got %d tags, want 3", len(tags))
	}

	participants, err := store.Participants()
	if err != nil {
		t.Fatalf("Participants failed: %v", err)
	}
	if len(participants) != 3 {
		t.Errorf("got %d participants, want 3", len(participants))
	}
}

func TestPopulateTwiceGrowsData(t *testing.T) {
	store, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer func() { _ = store.Close() }()

	anchor := time.Date(2024, 6, 12, 15, 0, 0, 0, time.UTC)
	if err := Populate(store, anchor); err != nil {
		t.Fatalf("first Populate failed: %v", err)
	}
	// Seeding is uuid-keyed, so a second run adds a fresh batch rather than
	// colliding with the first.
	if err := Populate(store, anchor); err != nil {
		t.Fatalf("second Populate failed: %v", err)
	}

	events, err := store.Events()
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}
	if len(events) != 14 {
		t.Errorf("got %d events after two runs, want 14", len(events))
	}
}
