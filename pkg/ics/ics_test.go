package ics

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"tableflip.dev/planner/pkg/event"
)

const sample = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//test//test//EN\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:standup@example.com\r\n" +
	"DTSTAMP:20240601T080000Z\r\n" +
	"DTSTART:20240607T090000Z\r\n" +
	"DTEND:20240607T091500Z\r\n" +
	"SUMMARY:Standup\r\n" +
	"LOCATION:Room 4\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:holiday@example.com\r\n" +
	"DTSTAMP:20240601T080000Z\r\n" +
	"DTSTART;VALUE=DATE:20240610\r\n" +
	"DTEND;VALUE=DATE:20240612\r\n" +
	"SUMMARY:Holiday\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:weekly@example.com\r\n" +
	"DTSTAMP:20240601T080000Z\r\n" +
	"DTSTART:20240603T090000Z\r\n" +
	"DTEND:20240603T100000Z\r\n" +
	"RRULE:FREQ=WEEKLY\r\n" +
	"SUMMARY:Weekly\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"DTSTAMP:20240601T080000Z\r\n" +
	"DTSTART:20240604T090000Z\r\n" +
	"SUMMARY:No UID\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func TestImport(t *testing.T) {
	events, err := Import(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}

	standup := events[0]
	if standup.ID != IDFor("standup@example.com") || standup.Title != "Standup" || standup.Address != "Room 4" {
		t.Fatalf("unexpected standup %+v", standup)
	}
	if standup.AllDay || !standup.Start.Equal(time.Date(2024, time.June, 7, 9, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected standup times %v - %v", standup.Start, standup.End)
	}

	holiday := events[1]
	if !holiday.AllDay {
		t.Fatalf("expected all-day holiday")
	}
	if y, m, d := holiday.Start.Date(); y != 2024 || m != time.June || d != 10 {
		t.Fatalf("unexpected holiday start %v", holiday.Start)
	}
	if !holiday.OverlapsDay(holiday.Start.AddDate(0, 0, 1)) || holiday.OverlapsDay(holiday.Start.AddDate(0, 0, 2)) {
		t.Fatalf("holiday should cover June 10-11 only, end %v", holiday.End)
	}
}

func TestImportRejectsGarbage(t *testing.T) {
	if _, err := Import(strings.NewReader("not a calendar")); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestExportImportKeepsEvent(t *testing.T) {
	start := time.Date(2024, time.June, 7, 9, 0, 0, 0, time.UTC)
	in := &event.Event{
		ID:      "abc",
		Title:   "Dentist",
		Address: "12 Main St",
		Start:   start,
		End:     start.Add(time.Hour),
	}

	var buf bytes.Buffer
	if err := Export(&buf, []*event.Event{in}); err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(buf.String(), "SUMMARY:Dentist") {
		t.Fatalf("missing summary in %s", buf.String())
	}

	out, err := Import(&buf)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 event, got %d", len(out))
	}
	if out[0].ID != IDFor("abc") || out[0].Title != "Dentist" || !out[0].Start.Equal(start) || !out[0].End.Equal(start.Add(time.Hour)) {
		t.Fatalf("unexpected round trip %+v", out[0])
	}
}

func TestExportImportKeepsPlannerID(t *testing.T) {
	start := time.Date(2024, time.June, 7, 9, 0, 0, 0, time.UTC)
	in := event.New("Review", start, start.Add(30*time.Minute))

	var buf bytes.Buffer
	if err := Export(&buf, []*event.Event{in}); err != nil {
		t.Fatalf("export: %v", err)
	}
	out, err := Import(&buf)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(out) != 1 || out[0].ID != in.ID {
		t.Fatalf("expected id %s to survive the round trip, got %+v", in.ID, out)
	}
}

func TestIDFor(t *testing.T) {
	tests := []struct {
		uid  string
		want string
	}{
		{uid: "6F9619FF-8B86-D011-B42D-00C04FC964FF", want: "6f9619ff-8b86-d011-b42d-00c04fc964ff"},
		{uid: "standup@example.com", want: IDFor("standup@example.com")},
	}
	for _, tt := range tests {
		if got := IDFor(tt.uid); got != tt.want {
			t.Errorf("IDFor(%q): expected %s, got %s", tt.uid, tt.want, got)
		}
	}
	if IDFor("standup@example.com") == "standup@example.com" {
		t.Errorf("non-UUID UIDs should be hashed")
	}
}
