// ABOUTME: Sample data population for demos and manual testing
// ABOUTME: Builds a working week of events, tasks, tags, and participants
package seed

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/marlow/daybook/internal/db"
)

// Populate fills the store with a plausible working week anchored on the
// Monday of the week containing anchor. All writes go through the public
// store API so seeding exercises the same paths as real callers.
func Populate(store *db.Store, anchor time.Time) error {
	monday := startOfWeek(anchor.UTC())

	tags, err := seedTags(store)
	if err != nil {
		return err
	}
	people, err := seedParticipants(store)
	if err != nil {
		return err
	}
	if err := seedEvents(store, monday, tags, people); err != nil {
		return err
	}
	return seedTasks(store, monday, tags, people)
}

func startOfWeek(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	return day.AddDate(0, 0, -offset)
}

func seedTags(store *db.Store) (map[string]string, error) {
	tags := map[string]string{}
	for _, entry := range []struct{ name, color string }{
		{"work", "#4a90d9"},
		{"personal", "#7bc86c"},
		{"urgent", "#e05d44"},
	} {
		id := uuid.New().String()
		if err := store.SaveTag(&db.Tag{ID: id, Name: entry.name, Color: entry.color}); err != nil {
			return nil, fmt.Errorf("seed tag %s: %w", entry.name, err)
		}
		tags[entry.name] = id
	}
	return tags, nil
}

func seedParticipants(store *db.Store) (map[string]string, error) {
	people := map[string]string{}
	for _, entry := range []struct{ email, name string }{
		{"ana@example.com", "Ana Torres"},
		{"bo@example.com", "Bo Lindqvist"},
		{"cam@example.com", "Cam Osei"},
	} {
		id := uuid.New().String()
		p := &db.Participant{ID: id, Email: entry.email, DisplayName: entry.name}
		if err := store.SaveParticipant(p); err != nil {
			return nil, fmt.Errorf("seed participant %s: %w", entry.email, err)
		}
		people[entry.email] = id
	}
	return people, nil
}

func seedEvents(store *db.Store, monday time.Time, tags, people map[string]string) error {
	instant := func(day int, hour, min int) string {
		return monday.AddDate(0, 0, day).Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute).Format(time.RFC3339)
	}

	// Daily standup, Monday through Friday
	for day := 0; day < 5; day++ {
		event := &db.CalendarEvent{
			ID:      uuid.New().String(),
			Summary: "Standup",
			Start:   &db.EventDateTime{DateTime: instant(day, 9, 30)},
			End:     &db.EventDateTime{DateTime: instant(day, 9, 45)},
			Status:  "confirmed",
			Reminders: &db.EventReminders{
				Overrides: []db.ReminderOverride{{Method: "popup", Minutes: 5}},
			},
			IsActive: true,
		}
		if err := store.SaveEvent(event); err != nil {
			return fmt.Errorf("seed standup: %w", err)
		}
		if err := store.TagEvent(event.ID, tags["work"]); err != nil {
			return err
		}
	}

	// Tuesday client call with conference details
	client := &db.CalendarEvent{
		ID:          uuid.New().String(),
		Summary:     "Client sync",
		Description: "Monthly roadmap review with the Meridian team",
		Start:       &db.EventDateTime{DateTime: instant(1, 14, 0)},
		End:         &db.EventDateTime{DateTime: instant(1, 15, 0)},
		Attendees: []db.EventAttendee{
			{Email: "ana@example.com", DisplayName: "Ana Torres", ResponseStatus: "accepted"},
			{Email: "pat@meridian.example", ResponseStatus: "needsAction"},
		},
		ConferenceData: &db.ConferenceData{
			ConferenceID: "mer-idia-n01",
			EntryPoints: []db.ConferenceEntryPoint{
				{EntryPointType: "video", URI: "https://meet.example.com/mer-idia-n01"},
			},
			Solution: &db.ConferenceSolution{Type: "hangoutsMeet", Name: "Meet"},
		},
		Status:   "confirmed",
		IsActive: true,
	}
	if err := store.SaveEvent(client); err != nil {
		return fmt.Errorf("seed client sync: %w", err)
	}
	if err := store.TagEvent(client.ID, tags["work"]); err != nil {
		return err
	}
	if err := store.AddEventParticipant(client.ID, people["ana@example.com"], "organizer", "accepted"); err != nil {
		return err
	}

	// Friday all-hands, all day
	allHands := &db.CalendarEvent{
		ID:       uuid.New().String(),
		Summary:  "All hands",
		Location: "Main floor",
		Start:    &db.EventDateTime{Date: monday.AddDate(0, 0, 4).Format("2006-01-02")},
		End:      &db.EventDateTime{Date: monday.AddDate(0, 0, 5).Format("2006-01-02")},
		Status:   "confirmed",
		IsActive: true,
	}
	if err := store.SaveEvent(allHands); err != nil {
		return fmt.Errorf("seed all hands: %w", err)
	}
	return store.TagEvent(allHands.ID, tags["work"])
}

func seedTasks(store *db.Store, monday time.Time, tags, people map[string]string) error {
	wedEOD := monday.AddDate(0, 0, 2).Add(17 * time.Hour)
	friEOD := monday.AddDate(0, 0, 4).Add(17 * time.Hour)

	entries := []struct {
		task *db.Task
		tag  string
	}{
		{
			task: &db.Task{
				ID:       uuid.New().String(),
				Title:    "Prepare client sync agenda",
				Notes:    "pull last month's action items",
				DueDate:  &wedEOD,
				Priority: db.PriorityHigh,
				Status:   db.TaskInProgress,
			},
			tag: "work",
		},
		{
			task: &db.Task{
				ID:        uuid.New().String(),
				Title:     "Send weekly status report",
				DueDate:   &friEOD,
				Important: true,
				Recurring: true, RecurringRule: "FREQ=WEEKLY;BYDAY=FR",
			},
			tag: "work",
		},
		{
			task: &db.Task{
				ID:       uuid.New().String(),
				Title:    "Book dentist appointment",
				Priority: db.PriorityLow,
			},
			tag: "personal",
		},
	}

	for _, entry := range entries {
		if err := store.SaveTask(entry.task); err != nil {
			return fmt.Errorf("seed task %s: %w", entry.task.Title, err)
		}
		if err := store.TagTask(entry.task.ID, tags[entry.tag]); err != nil {
			return err
		}
	}

	// First task has an assignee
	return store.AddTaskParticipant(entries[0].task.ID, people["ana@example.com"], "assignee")
}
