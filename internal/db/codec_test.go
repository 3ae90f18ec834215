// ABOUTME: Row codec tests
// ABOUTME: Validates canonical time formatting and event instant normalization
package db

import (
	"database/sql"
	"testing"
	"time"
)

func TestFormatTimeCanonical(t *testing.T) {
	// Non-UTC, sub-second input normalizes to UTC whole seconds
	loc := time.FixedZone("CEST", 2*60*60)
	in := time.Date(2024, 6, 10, 14, 30, 45, 999999999, loc)

	got := formatTime(in)
	if got != "2024-06-10T12:30:45Z" {
		t.Errorf("got %s, want 2024-06-10T12:30:45Z", got)
	}

	back, err := parseTime(got)
	if err != nil {
		t.Fatalf("parseTime failed: %v", err)
	}
	if !back.Equal(in.Truncate(time.Second)) {
		t.Errorf("round-trip mismatch: %v vs %v", back, in)
	}
}

func TestParseTimeRejectsGarbage(t *testing.T) {
	if _, err := parseTime("last tuesday"); err == nil {
		t.Error("expected error for unparseable time")
	}
}

func TestFormatTimePtr(t *testing.T) {
	if v := formatTimePtr(nil); v != nil {
		t.Errorf("nil time should bind NULL, got %v", v)
	}
	at := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	if v := formatTimePtr(&at); v != "2024-06-10T00:00:00Z" {
		t.Errorf("got %v, want 2024-06-10T00:00:00Z", v)
	}
}

func TestEventInstant(t *testing.T) {
	cases := []struct {
		name string
		in   *EventDateTime
		want string
	}{
		{"nil", nil, ""},
		{"empty", &EventDateTime{}, ""},
		{"dateTime", &EventDateTime{DateTime: "2024-06-10T14:00:00Z"}, "2024-06-10T14:00:00Z"},
		{"dateTime with offset", &EventDateTime{DateTime: "2024-06-10T16:00:00+02:00"}, "2024-06-10T14:00:00Z"},
		{"all-day", &EventDateTime{Date: "2024-06-10"}, "2024-06-10T00:00:00Z"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := eventInstant(tc.in)
			if err != nil {
				t.Fatalf("eventInstant failed: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestEventInstantRejectsGarbage(t *testing.T) {
	if _, err := eventInstant(&EventDateTime{DateTime: "not a time"}); err == nil {
		t.Error("expected error for bad dateTime")
	}
	if _, err := eventInstant(&EventDateTime{Date: "June 10th"}); err == nil {
		t.Error("expected error for bad date")
	}
}

func TestJSONHelpersNilToNull(t *testing.T) {
	v, err := jsonPtr[EventPerson](nil)
	if err != nil || v != nil {
		t.Errorf("nil pointer should bind NULL, got %v (%v)", v, err)
	}
	v, err = jsonSlice[string](nil)
	if err != nil || v != nil {
		t.Errorf("nil slice should bind NULL, got %v (%v)", v, err)
	}

	// Empty but non-nil still encodes
	v, err = jsonSlice([]string{})
	if err != nil || v != "[]" {
		t.Errorf("got %v (%v), want []", v, err)
	}
}

func TestDecodeJSONColumn(t *testing.T) {
	// NULL leaves the destination untouched
	var people []EventAttendee
	err := decodeJSONColumn("calendar_events", "attendees", "x", sql.NullString{}, &people)
	if err != nil || people != nil {
		t.Errorf("NULL column should be a no-op, got %v (%v)", people, err)
	}

	ns := sql.NullString{String: `[{"email":"a@example.com"}]`, Valid: true}
	if err := decodeJSONColumn("calendar_events", "attendees", "x", ns, &people); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(people) != 1 || people[0].Email != "a@example.com" {
		t.Errorf("got %+v", people)
	}

	// Malformed JSON surfaces as a DecodeError with full context
	bad := sql.NullString{String: "{", Valid: true}
	err = decodeJSONColumn("calendar_events", "attendees", "evt-9", bad, &people)
	decodeErr, ok := err.(*DecodeError)
	if !ok {
		t.Fatalf("got %T, want *DecodeError", err)
	}
	if decodeErr.Table != "calendar_events" || decodeErr.Column != "attendees" || decodeErr.ID != "evt-9" {
		t.Errorf("decode error missing context: %+v", decodeErr)
	}
}

func TestPrefixColumns(t *testing.T) {
	got := prefixColumns("c", "localId, id,\n\tsummary")
	if got != "c.localId, c.id, c.summary" {
		t.Errorf("got %q", got)
	}
}
