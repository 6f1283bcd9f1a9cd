// Package ics converts between iCalendar payloads and planner events.
package ics

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"tableflip.dev/planner/pkg/datenav"
	"tableflip.dev/planner/pkg/event"
	"tableflip.dev/planner/pkg/log"
)

const productID = "-//tableflip.dev//planner//EN"

// IDFor derives a stable event ID from an iCalendar UID, so importing the same
// file twice updates events instead of duplicating them. UIDs that are already
// UUIDs, such as the ones Export writes, are kept as the ID.
func IDFor(uid string) string {
	if id, err := uuid.Parse(uid); err == nil {
		return id.String()
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("ics:"+uid)).String()
}

// Import parses every VEVENT in r. Components without a UID or start, and
// recurring components, are skipped and logged.
func Import(r io.Reader) ([]*event.Event, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("ics: parse: %w", err)
	}

	events := make([]*event.Event, 0)
	for _, ve := range cal.Events() {
		e, err := fromVEvent(ve)
		if err != nil {
			log.Error("ics: skipping vevent", err, "uid", propValue(ve, ical.ComponentPropertyUniqueId))
			continue
		}
		events = append(events, e)
	}
	log.Info("ics: import parsed", "events", len(events))
	return events, nil
}

func fromVEvent(ve *ical.VEvent) (*event.Event, error) {
	uid := propValue(ve, ical.ComponentPropertyUniqueId)
	if uid == "" {
		return nil, errors.New("missing UID")
	}
	if propValue(ve, ical.ComponentPropertyRrule) != "" {
		return nil, errors.New("recurring events are not supported")
	}

	e := &event.Event{
		ID:      IDFor(uid),
		Title:   strings.TrimSpace(propValue(ve, ical.ComponentPropertySummary)),
		Content: propValue(ve, ical.ComponentPropertyDescription),
		Address: propValue(ve, ical.ComponentPropertyLocation),
		AllDay:  isAllDay(ve),
	}
	if e.Title == "" {
		e.Title = "(untitled)"
	}

	if e.AllDay {
		start, err := ve.GetAllDayStartAt()
		if err != nil {
			return nil, fmt.Errorf("DTSTART: %w", err)
		}
		// DTEND is exclusive for all-day events; store the inclusive last day.
		end, err := ve.GetAllDayEndAt()
		if err != nil || !end.After(start) {
			end = datenav.AddDays(start, 1)
		}
		e.Start = datenav.StripTime(start)
		e.End = datenav.StripTime(end).Add(-time.Millisecond)
	} else {
		start, err := ve.GetStartAt()
		if err != nil {
			return nil, fmt.Errorf("DTSTART: %w", err)
		}
		end, err := ve.GetEndAt()
		if err != nil {
			end = start
		}
		e.Start, e.End = start, end
		if !e.End.After(e.Start) {
			// Zero-length meetings still need to be valid timed events.
			e.End = e.Start.Add(time.Minute)
		}
	}

	now := time.Now().UTC()
	e.Created, e.Updated = now, now
	if t, err := ve.GetDtStampTime(); err == nil {
		e.Created = t
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

func isAllDay(ve *ical.VEvent) bool {
	prop := ve.GetProperty(ical.ComponentPropertyDtStart)
	if prop == nil {
		return false
	}
	if vs, ok := prop.ICalParameters[string(ical.ParameterValue)]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(prop.Value, "T")
}

func propValue(ve *ical.VEvent, p ical.ComponentProperty) string {
	if prop := ve.GetProperty(p); prop != nil {
		return prop.Value
	}
	return ""
}

// Export writes events as a VCALENDAR.
func Export(w io.Writer, events []*event.Event) error {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	for _, e := range events {
		ve := cal.AddEvent(e.ID)
		ve.SetSummary(e.Title)
		if e.Content != "" {
			ve.SetDescription(e.Content)
		}
		if e.Address != "" {
			ve.SetLocation(e.Address)
		}
		stamp := e.Updated
		if stamp.IsZero() {
			stamp = time.Now()
		}
		ve.SetDtStampTime(stamp.UTC())
		if e.AllDay {
			ve.SetAllDayStartAt(e.Start)
			ve.SetAllDayEndAt(datenav.AddDays(e.End, 1))
			continue
		}
		ve.SetStartAt(e.Start.UTC())
		ve.SetEndAt(e.End.UTC())
	}
	return cal.SerializeTo(w)
}
