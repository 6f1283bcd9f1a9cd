// Package event defines calendar events and the day-overlap rules used to
// filter them.
package event

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"tableflip.dev/planner/pkg/datenav"
)

const (
	maxTitle   = 200
	maxContent = 1000
	maxAddress = 500
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("event: invalid")

// Event is a single calendar entry.
type Event struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Content string    `json:"content,omitempty"`
	Address string    `json:"address,omitempty"`
	Start   time.Time `json:"start_at"`
	End     time.Time `json:"end_at"`
	AllDay  bool      `json:"all_day"`
	Created time.Time `json:"created_at,omitempty"`
	Updated time.Time `json:"updated_at,omitempty"`
}

// New creates an event with a fresh ID.
func New(title string, start, end time.Time) *Event {
	now := time.Now().UTC()
	return &Event{
		ID:      uuid.NewString(),
		Title:   strings.TrimSpace(title),
		Start:   start,
		End:     end,
		Created: now,
		Updated: now,
	}
}

// Validate checks field lengths and that timed events end after they start.
func (e *Event) Validate() error {
	title := strings.TrimSpace(e.Title)
	switch {
	case title == "":
		return fmt.Errorf("%w: title is required", ErrInvalid)
	case utf8.RuneCountInString(title) > maxTitle:
		return fmt.Errorf("%w: title must be %d characters or less", ErrInvalid, maxTitle)
	case utf8.RuneCountInString(strings.TrimSpace(e.Content)) > maxContent:
		return fmt.Errorf("%w: content must be %d characters or less", ErrInvalid, maxContent)
	case utf8.RuneCountInString(strings.TrimSpace(e.Address)) > maxAddress:
		return fmt.Errorf("%w: address must be %d characters or less", ErrInvalid, maxAddress)
	case e.Start.IsZero() || e.End.IsZero():
		return fmt.Errorf("%w: start and end are required", ErrInvalid)
	case !e.AllDay && !e.End.After(e.Start):
		return fmt.Errorf("%w: end time must be after start time", ErrInvalid)
	}
	return nil
}

// OverlapsDay reports whether the event touches the calendar day of day:
// it starts before the next day begins and ends at or after this one does.
func (e *Event) OverlapsDay(day time.Time) bool {
	start := datenav.StripTime(day)
	next := datenav.AddDays(start, 1)
	return e.Start.Before(next) && !e.End.Before(start)
}

// Overlaps reports whether the event intersects the inclusive span [from, to].
func (e *Event) Overlaps(from, to time.Time) bool {
	return !e.Start.After(to) && !e.End.Before(from)
}

// FilterByDate keeps the events that overlap day.
func FilterByDate(events []*Event, day time.Time) []*Event {
	out := make([]*Event, 0, len(events))
	for _, e := range events {
		if e != nil && e.OverlapsDay(day) {
			out = append(out, e)
		}
	}
	return out
}

// Sort orders events by start time, then title, then ID.
func Sort(events []*Event) {
	sort.SliceStable(events, func(i, j int) bool {
		l, r := events[i], events[j]
		if !l.Start.Equal(r.Start) {
			return l.Start.Before(r.Start)
		}
		if l.Title != r.Title {
			return l.Title < r.Title
		}
		return l.ID < r.ID
	})
}

// FormatTime renders the event's time span for agenda lines.
func FormatTime(e *Event) string {
	if e.AllDay {
		return "All day"
	}
	if e.Start.IsZero() || e.End.IsZero() {
		return "Time not set"
	}
	return fmt.Sprintf("%s - %s", e.Start.Local().Format("15:04"), e.End.Local().Format("15:04"))
}

// FormatDay renders the event's start day, e.g. "Friday, Jun 7".
func FormatDay(e *Event) string {
	return e.Start.Local().Format("Monday, Jan 2")
}
