// ABOUTME: Tests for daily digest file writing
// ABOUTME: Validates markdown and JSON output shapes
package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/marlow/daybook/internal/db"
)

func sampleDay() (time.Time, []db.CalendarEvent, []db.Task) {
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	due := day.Add(17 * time.Hour)
	events := []db.CalendarEvent{
		{ID: "evt-1", Summary: "Standup", Start: &db.EventDateTime{DateTime: "2024-06-10T09:30:00Z"}},
		{ID: "evt-2", Summary: "Offsite", Location: "Pier 3", Start: &db.EventDateTime{Date: "2024-06-10"}},
	}
	tasks := []db.Task{
		{ID: "task-1", Title: "Send invoice", DueDate: &due, Status: db.TaskPending},
		{ID: "task-2", Title: "File expenses", Status: db.TaskCompleted},
	}
	return day, events, tasks
}

func TestWriteDigestMarkdown(t *testing.T) {
	tmpDir := t.TempDir()
	day, events, tasks := sampleDay()

	if err := WriteDigest(tmpDir, "markdown", day, events, tasks); err != nil {
		t.Fatalf("WriteDigest failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(tmpDir, "2024-06-10.md"))
	if err != nil {
		t.Fatalf("digest file missing: %v", err)
	}
	content := string(data)

	for _, want := range []string{
		"# 2024-06-10",
		"09:30 Standup",
		"all day Offsite (Pier 3)",
		"- [ ] Send invoice (due 2024-06-10)",
		"- [x] File expenses",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("digest missing %q:\n%s", want, content)
		}
	}
}

func TestWriteDigestJSON(t *testing.T) {
	tmpDir := t.TempDir()
	day, events, tasks := sampleDay()

	if err := WriteDigest(tmpDir, "json", day, events, tasks); err != nil {
		t.Fatalf("WriteDigest failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(tmpDir, "2024-06-10.json"))
	if err != nil {
		t.Fatalf("digest file missing: %v", err)
	}

	var doc struct {
		Date   string             `json:"date"`
		Events []db.CalendarEvent `json:"events"`
		Tasks  []db.Task          `json:"tasks"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("digest is not valid JSON: %v", err)
	}
	if doc.Date != "2024-06-10" {
		t.Errorf("got date %s, want 2024-06-10", doc.Date)
	}
	if len(doc.Events) != 2 || len(doc.Tasks) != 2 {
		t.Errorf("got %d events and %d tasks, want 2 and 2", len(doc.Events), len(doc.Tasks))
	}
}

func TestWriteDigestOverwrites(t *testing.T) {
	tmpDir := t.TempDir()
	day, events, tasks := sampleDay()

	if err := WriteDigest(tmpDir, "markdown", day, events, tasks); err != nil {
		t.Fatalf("first WriteDigest failed: %v", err)
	}
	// Second write for the same day replaces, not appends
	if err := WriteDigest(tmpDir, "markdown", day, nil, nil); err != nil {
		t.Fatalf("second WriteDigest failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(tmpDir, "2024-06-10.md"))
	if err != nil {
		t.Fatalf("digest file missing: %v", err)
	}
	if strings.Contains(string(data), "Standup") {
		t.Error("old digest content survived overwrite")
	}
	if !strings.Contains(string(data), "No events.") {
		t.Error("empty digest missing placeholder")
	}
}
