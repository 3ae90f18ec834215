// ABOUTME: Daily digest file writing
// ABOUTME: Formats a day's agenda and open tasks as markdown or JSON
package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/marlow/daybook/internal/db"
)

// digestDoc is the JSON shape of one day's digest file.
type digestDoc struct {
	Date   string             `json:"date"`
	Events []db.CalendarEvent `json:"events"`
	Tasks  []db.Task          `json:"tasks"`
}

// WriteDigest writes a snapshot of the day's events and open tasks to
// digestDir, one file per day. Writing the same day twice overwrites: the
// digest is a snapshot, not a journal.
func WriteDigest(digestDir, format string, date time.Time, events []db.CalendarEvent, tasks []db.Task) error {
	if err := os.MkdirAll(digestDir, 0755); err != nil {
		return err
	}

	day := date.Format("2006-01-02")

	var ext, content string
	switch format {
	case "json":
		data, err := json.MarshalIndent(digestDoc{Date: day, Events: events, Tasks: tasks}, "", "  ")
		if err != nil {
			return err
		}
		ext = ".json"
		content = string(data) + "\n"
	case "markdown":
		fallthrough
	default:
		ext = ".md"
		content = formatMarkdown(day, events, tasks)
	}

	return os.WriteFile(filepath.Join(digestDir, day+ext), []byte(content), 0644)
}

func formatMarkdown(day string, events []db.CalendarEvent, tasks []db.Task) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", day))

	sb.WriteString("## Agenda\n\n")
	if len(events) == 0 {
		sb.WriteString("No events.\n")
	}
	for _, e := range events {
		sb.WriteString(fmt.Sprintf("- %s %s", eventTime(&e), e.Summary))
		if e.Location != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", e.Location))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	sb.WriteString("## Tasks\n\n")
	if len(tasks) == 0 {
		sb.WriteString("No open tasks.\n")
	}
	for _, t := range tasks {
		mark := " "
		if t.Status == db.TaskCompleted {
			mark = "x"
		}
		sb.WriteString(fmt.Sprintf("- [%s] %s", mark, t.Title))
		if t.DueDate != nil {
			sb.WriteString(fmt.Sprintf(" (due %s)", t.DueDate.Format("2006-01-02")))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// eventTime renders the display time for an event line: HH:MM for timed
// events, "all day" for date-only ones.
func eventTime(e *db.CalendarEvent) string {
	if e.Start == nil {
		return "     "
	}
	if e.Start.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, e.Start.DateTime); err == nil {
			return t.UTC().Format("15:04")
		}
	}
	return "all day"
}
