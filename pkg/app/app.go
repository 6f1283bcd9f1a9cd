// Package app provides the planner operations shared by the CLI and the TUI.
package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"tableflip.dev/planner/pkg/datenav"
	"tableflip.dev/planner/pkg/event"
	"tableflip.dev/planner/pkg/store"
	"tableflip.dev/planner/pkg/todo"
)

var (
	errNoPersistence = errors.New("app: no persistence configured")
	errNoTodos       = errors.New("app: no to-do persistence configured")
)

// Service wraps persistence so UIs and CLIs can share logic. Todos is
// optional; without it the agenda carries no due to-dos.
type Service struct {
	Persistence store.Persistence
	Todos       store.TodoPersistence
}

// Agenda is the set of events shown for a cursor position.
type Agenda struct {
	Range datenav.Range
	// Day is set when a single day is selected; Events is then filtered to it.
	Day    *time.Time
	Week   []*event.Event
	Events []*event.Event
	// Due lists the open to-dos due within Range, or on Day when set.
	Due []*todo.Todo
}

// Agenda loads the anchored week's events and narrows them to the selected
// day, if any.
func (s *Service) Agenda(ctx context.Context, c *datenav.Cursor) (*Agenda, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	r := c.WeekRange()
	week := s.Persistence.Range(ctx, r)
	a := &Agenda{Range: r, Week: week, Events: week}
	due := r
	if sel, ok := c.SelectedRange(); ok {
		day := sel.Start
		a.Day = &day
		a.Events = event.FilterByDate(week, day)
		due = sel
	}
	if s.Todos != nil {
		a.Due = todo.DueIn(s.Todos.Todos(ctx), due)
	}
	return a, nil
}

// Between lists events overlapping r.
func (s *Service) Between(ctx context.Context, r datenav.Range) ([]*event.Event, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	return s.Persistence.Range(ctx, r), nil
}

// All lists every stored event.
func (s *Service) All(ctx context.Context) ([]*event.Event, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	return s.Persistence.All(ctx), nil
}

// Add validates and stores a new event.
func (s *Service) Add(_ context.Context, e *event.Event) (*event.Event, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	if e.ID == "" {
		fresh := event.New(e.Title, e.Start, e.End)
		e.ID, e.Created, e.Updated = fresh.ID, fresh.Created, fresh.Updated
	}
	e.Title = strings.TrimSpace(e.Title)
	if err := s.Persistence.Store(e); err != nil {
		return nil, err
	}
	return e, nil
}

// Patch holds the fields an update may change. Nil fields are left alone.
type Patch struct {
	Title   *string
	Content *string
	Address *string
	Start   *time.Time
	End     *time.Time
	AllDay  *bool
}

// Update applies p to the event with the given id and re-validates it.
func (s *Service) Update(ctx context.Context, id string, p Patch) (*event.Event, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	e, err := s.Persistence.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Title != nil {
		e.Title = strings.TrimSpace(*p.Title)
	}
	if p.Content != nil {
		e.Content = *p.Content
	}
	if p.Address != nil {
		e.Address = *p.Address
	}
	if p.Start != nil {
		e.Start = *p.Start
	}
	if p.End != nil {
		e.End = *p.End
	}
	if p.AllDay != nil {
		e.AllDay = *p.AllDay
	}
	e.Updated = time.Now().UTC()
	if err := s.Persistence.Store(e); err != nil {
		return nil, err
	}
	return e, nil
}

// Delete removes the event with the given id.
func (s *Service) Delete(_ context.Context, id string) error {
	if s.Persistence == nil {
		return errNoPersistence
	}
	return s.Persistence.Delete(id)
}

// Watch subscribes to persistence change notifications.
func (s *Service) Watch(ctx context.Context) (<-chan store.Change, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	return s.Persistence.Watch(ctx)
}

// ListTodos returns every stored to-do, unsorted.
func (s *Service) ListTodos(ctx context.Context) ([]*todo.Todo, error) {
	if s.Todos == nil {
		return nil, errNoTodos
	}
	return s.Todos.Todos(ctx), nil
}

// AddTodo validates and stores a new open to-do.
func (s *Service) AddTodo(_ context.Context, text string, due *time.Time, priority int) (*todo.Todo, error) {
	if s.Todos == nil {
		return nil, errNoTodos
	}
	t := todo.New(text)
	t.Due = due
	t.Priority = priority
	if err := s.Todos.StoreTodo(t); err != nil {
		return nil, err
	}
	return t, nil
}

// CompleteTodo marks the to-do done, or open again when done is false.
func (s *Service) CompleteTodo(ctx context.Context, id string, done bool) (*todo.Todo, error) {
	if s.Todos == nil {
		return nil, errNoTodos
	}
	t, err := s.Todos.GetTodo(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.Completed == done {
		return t, nil
	}
	t.Complete(done)
	if err := s.Todos.StoreTodo(t); err != nil {
		return nil, err
	}
	return t, nil
}

// DeleteTodo removes the to-do with the given id.
func (s *Service) DeleteTodo(_ context.Context, id string) error {
	if s.Todos == nil {
		return errNoTodos
	}
	return s.Todos.DeleteTodo(id)
}

// ClearCompleted deletes every completed to-do and reports how many went.
func (s *Service) ClearCompleted(ctx context.Context) (int, error) {
	if s.Todos == nil {
		return 0, errNoTodos
	}
	n := 0
	for _, t := range todo.Completed(s.Todos.Todos(ctx)) {
		if err := s.Todos.DeleteTodo(t.ID); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
