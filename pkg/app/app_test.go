package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"tableflip.dev/planner/pkg/datenav"
	"tableflip.dev/planner/pkg/event"
	"tableflip.dev/planner/pkg/store"
)

type memoryPersistence struct {
	mu     sync.Mutex
	events map[string]*event.Event
}

func newMemoryPersistence(events ...*event.Event) *memoryPersistence {
	mp := &memoryPersistence{events: make(map[string]*event.Event)}
	for _, e := range events {
		cp := *e
		mp.events[e.ID] = &cp
	}
	return mp
}

func (m *memoryPersistence) Range(_ context.Context, r datenav.Range) []*event.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*event.Event
	for _, e := range m.events {
		if e.Overlaps(r.Start, r.End) {
			cp := *e
			out = append(out, &cp)
		}
	}
	event.Sort(out)
	return out
}

func (m *memoryPersistence) All(ctx context.Context) []*event.Event {
	return m.Range(ctx, datenav.Range{End: time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC)})
}

func (m *memoryPersistence) Get(_ context.Context, id string) (*event.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (m *memoryPersistence) Store(e *event.Event) error {
	if err := e.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *e
	m.events[e.ID] = &cp
	return nil
}

func (m *memoryPersistence) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.events[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.events, id)
	return nil
}

func (m *memoryPersistence) Watch(context.Context) (<-chan store.Change, error) {
	return make(chan store.Change), nil
}

func at(d, h int) time.Time {
	return time.Date(2024, time.June, d, h, 0, 0, 0, time.UTC)
}

func withID(id string, e *event.Event) *event.Event {
	e.ID = id
	return e
}

func newCursor() *datenav.Cursor {
	now := time.Date(2024, time.June, 5, 12, 0, 0, 0, time.UTC)
	return datenav.New(datenav.WithClock(func() time.Time { return now }))
}

func TestAgendaWeekAndSelectedDay(t *testing.T) {
	svc := &Service{Persistence: newMemoryPersistence(
		withID("mon", event.New("Monday", at(3, 9), at(3, 10))),
		withID("fri", event.New("Friday", at(7, 9), at(7, 10))),
		withID("next", event.New("Next week", at(11, 9), at(11, 10))),
	)}
	c := newCursor()
	ctx := context.Background()

	a, err := svc.Agenda(ctx, c)
	if err != nil {
		t.Fatalf("agenda: %v", err)
	}
	if a.Day != nil || len(a.Events) != 2 || a.Events[0].ID != "mon" || a.Events[1].ID != "fri" {
		t.Fatalf("unexpected week agenda %+v", a)
	}

	c.Select(at(7, 0))
	a, err = svc.Agenda(ctx, c)
	if err != nil {
		t.Fatalf("agenda: %v", err)
	}
	if a.Day == nil || len(a.Week) != 2 || len(a.Events) != 1 || a.Events[0].ID != "fri" {
		t.Fatalf("unexpected day agenda %+v", a)
	}
}

func TestAddUpdateDelete(t *testing.T) {
	mp := newMemoryPersistence()
	svc := &Service{Persistence: mp}
	ctx := context.Background()

	e, err := svc.Add(ctx, &event.Event{Title: "  Lunch ", Start: at(7, 12), End: at(7, 13)})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if e.ID == "" || e.Title != "Lunch" || e.Created.IsZero() {
		t.Fatalf("unexpected added event %+v", e)
	}

	title := "Long lunch"
	end := at(7, 15)
	updated, err := svc.Update(ctx, e.ID, Patch{Title: &title, End: &end})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != title || !updated.End.Equal(end) || !updated.Start.Equal(at(7, 12)) {
		t.Fatalf("unexpected updated event %+v", updated)
	}

	early := at(7, 11)
	if _, err := svc.Update(ctx, e.ID, Patch{End: &early}); !errors.Is(err, event.ErrInvalid) {
		t.Fatalf("expected validation error, got %v", err)
	}

	if err := svc.Delete(ctx, e.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Update(ctx, e.ID, Patch{}); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestServiceWithoutPersistence(t *testing.T) {
	svc := &Service{}
	if _, err := svc.Agenda(context.Background(), newCursor()); err == nil {
		t.Fatalf("expected error without persistence")
	}
}
