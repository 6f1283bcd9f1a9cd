package todo

import (
	"errors"
	"strings"
	"testing"
	"time"

	"tableflip.dev/planner/pkg/datenav"
)

func day(d, h int) time.Time {
	return time.Date(2024, time.June, d, h, 0, 0, 0, time.UTC)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		priority int
		wantErr  bool
	}{
		{name: "ok", text: "Buy milk"},
		{name: "blank", text: "   ", wantErr: true},
		{name: "too long", text: strings.Repeat("x", maxText+1), wantErr: true},
		{name: "max length", text: strings.Repeat("x", maxText)},
		{name: "negative priority", text: "a", priority: -1, wantErr: true},
		{name: "priority too high", text: "a", priority: MaxPriority + 1, wantErr: true},
		{name: "max priority", text: "a", priority: MaxPriority},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			td := New(tt.text)
			td.Priority = tt.priority
			err := td.Validate()
			if tt.wantErr != (err != nil) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			if err != nil && !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestOpenAndCompleted(t *testing.T) {
	a := &Todo{ID: "a", Text: "a", Created: day(1, 9)}
	b := &Todo{ID: "b", Text: "b", Created: day(2, 9)}
	c := &Todo{ID: "c", Text: "c", Created: day(3, 9), Completed: true, Updated: day(4, 9)}
	d := &Todo{ID: "d", Text: "d", Created: day(1, 8), Completed: true, Updated: day(5, 9)}
	all := []*Todo{a, b, c, d, nil}

	open := Open(all)
	if len(open) != 2 || open[0] != b || open[1] != a {
		t.Fatalf("expected open newest first [b a], got %v", ids(open))
	}
	done := Completed(all)
	if len(done) != 2 || done[0] != d || done[1] != c {
		t.Fatalf("expected completed by finish time [d c], got %v", ids(done))
	}
}

func TestCompleteStampsUpdate(t *testing.T) {
	td := New("Call the bank")
	td.Updated = time.Time{}
	td.Complete(true)
	if !td.Completed || td.Updated.IsZero() {
		t.Fatalf("expected completed with a fresh update stamp, got %+v", td)
	}
	td.Complete(false)
	if td.Completed {
		t.Fatalf("expected reopened")
	}
}

func TestDueIn(t *testing.T) {
	c := datenav.New(datenav.WithClock(func() time.Time { return day(5, 12) }))
	due := func(id string, when time.Time, p int) *Todo {
		return &Todo{ID: id, Text: id, Due: &when, Priority: p}
	}
	late := due("late", day(9, 18), 0)
	early := due("early", day(4, 0), 0)
	urgent := due("urgent", day(4, 0), 3)
	outside := due("outside", day(10, 0), 0)
	finished := due("finished", day(6, 0), 0)
	finished.Completed = true
	undated := &Todo{ID: "undated", Text: "undated"}

	got := DueIn([]*Todo{late, early, urgent, outside, finished, undated}, c.WeekRange())
	if want := []string{"urgent", "early", "late"}; strings.Join(ids(got), ",") != strings.Join(want, ",") {
		t.Fatalf("expected %v, got %v", want, ids(got))
	}
}

func TestFormat(t *testing.T) {
	dueDay := time.Date(2024, time.June, 7, 0, 0, 0, 0, time.Local)
	dueTime := time.Date(2024, time.June, 7, 15, 30, 0, 0, time.Local)
	tests := []struct {
		td       *Todo
		due      string
		priority string
	}{
		{td: &Todo{}, due: "", priority: ""},
		{td: &Todo{Due: &dueDay, Priority: 2}, due: "due Fri Jun 7", priority: "!!"},
		{td: &Todo{Due: &dueTime, Priority: 5}, due: "due Fri Jun 7 15:30", priority: "!!!!!"},
	}
	for _, tt := range tests {
		if got := FormatDue(tt.td); got != tt.due {
			t.Errorf("FormatDue: expected %q, got %q", tt.due, got)
		}
		if got := FormatPriority(tt.td); got != tt.priority {
			t.Errorf("FormatPriority: expected %q, got %q", tt.priority, got)
		}
	}
}

func ids(todos []*Todo) []string {
	out := make([]string, 0, len(todos))
	for _, t := range todos {
		out = append(out, t.ID)
	}
	return out
}
