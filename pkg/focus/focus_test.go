package focus

import (
	"testing"
	"time"

	"tableflip.dev/planner/pkg/datenav"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// newCursor returns a cursor whose clock sits on Wednesday June 5 2024.
func newCursor(anchor time.Time) *datenav.Cursor {
	now := time.Date(2024, time.June, 5, 10, 0, 0, 0, time.UTC)
	return datenav.New(
		datenav.WithClock(func() time.Time { return now }),
		datenav.WithAnchor(anchor),
	)
}

type hookRecorder struct {
	calls []int
}

func (h *hookRecorder) hook(index int) {
	h.calls = append(h.calls, index)
}

func (h *hookRecorder) last() int {
	if len(h.calls) == 0 {
		return -1
	}
	return h.calls[len(h.calls)-1]
}

func TestInitializePreference(t *testing.T) {
	c := New(nil)

	cur := newCursor(date(2024, time.June, 3))
	c.Initialize(cur.MonthDays())
	if got := c.Index(); got != 9 {
		t.Fatalf("expected today (cell 9), got %d", got)
	}

	cur.Select(date(2024, time.June, 20))
	c.Initialize(cur.MonthDays())
	if got := c.Index(); got != 24 {
		t.Fatalf("expected selected day (cell 24), got %d", got)
	}

	cur = newCursor(date(2023, time.March, 6))
	c.Initialize(cur.MonthDays())
	if got := c.Index(); got != 0 {
		t.Fatalf("expected fallback to cell 0, got %d", got)
	}
}

func TestTabIndexRovesWithFocus(t *testing.T) {
	c := New(nil)
	grid := newCursor(date(2024, time.June, 3)).MonthDays()
	c.Initialize(grid)

	zeros := 0
	for i := range grid {
		switch c.TabIndex(i) {
		case 0:
			zeros++
			if i != c.Index() {
				t.Fatalf("cell %d is tabbable but focus is %d", i, c.Index())
			}
		case -1:
		default:
			t.Fatalf("unexpected tabindex %d", c.TabIndex(i))
		}
	}
	if zeros != 1 {
		t.Fatalf("expected exactly one tabbable cell, got %d", zeros)
	}
}

func TestHandleArrowWithinGrid(t *testing.T) {
	rec := &hookRecorder{}
	c := New(rec.hook)
	grid := newCursor(date(2024, time.June, 3)).MonthDays()

	tests := []struct {
		dir     Direction
		current int
		want    int
	}{
		{dir: Left, current: 10, want: 9},
		{dir: Right, current: 10, want: 11},
		{dir: Up, current: 10, want: 3},
		{dir: Down, current: 10, want: 17},
		{dir: Right, current: 6, want: 7},
	}
	for _, tt := range tests {
		months := MonthChange{
			Previous: func() []datenav.MonthDay { t.Fatalf("unexpected previous month"); return nil },
			Next:     func() []datenav.MonthDay { t.Fatalf("unexpected next month"); return nil },
		}
		c.HandleArrow(tt.dir, tt.current, grid, months)
		if c.Index() != tt.want || rec.last() != tt.want {
			t.Errorf("%s from %d: expected %d, got index %d hook %d", tt.dir, tt.current, tt.want, c.Index(), rec.last())
		}
	}
}

func TestHandleArrowWrapsAcrossMonths(t *testing.T) {
	tests := []struct {
		name      string
		dir       Direction
		current   int
		want      int
		wantMonth string
	}{
		{name: "left from first cell", dir: Left, current: 0, want: 41, wantMonth: "May 2024"},
		{name: "up from first row", dir: Up, current: 3, want: 38, wantMonth: "May 2024"},
		{name: "right from last cell", dir: Right, current: 41, want: 0, wantMonth: "July 2024"},
		{name: "down from last row", dir: Down, current: 38, want: 3, wantMonth: "July 2024"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &hookRecorder{}
			c := New(rec.hook)
			cur := newCursor(date(2024, time.June, 3))
			grid := cur.MonthDays()

			var prev, next int
			months := MonthChange{
				Previous: func() []datenav.MonthDay {
					prev++
					cur.PreviousMonth()
					return cur.MonthDays()
				},
				Next: func() []datenav.MonthDay {
					next++
					cur.NextMonth()
					return cur.MonthDays()
				},
			}
			c.HandleArrow(tt.dir, tt.current, grid, months)

			if prev+next != 1 {
				t.Fatalf("expected one month change, got prev=%d next=%d", prev, next)
			}
			if got := cur.MonthLabel(); got != tt.wantMonth {
				t.Fatalf("expected %s, got %s", tt.wantMonth, got)
			}
			if c.Index() != tt.want || rec.last() != tt.want {
				t.Fatalf("expected focus %d, got index %d hook %d", tt.want, c.Index(), rec.last())
			}
		})
	}
}

func TestHandleActivateKeepsFocus(t *testing.T) {
	rec := &hookRecorder{}
	c := New(rec.hook)
	grid := newCursor(date(2024, time.June, 3)).MonthDays()
	c.Initialize(grid)

	activated := -1
	c.HandleActivate(12, func(cell int) { activated = cell })
	if activated != 12 {
		t.Fatalf("expected activation of cell 12, got %d", activated)
	}
	if c.Index() != 9 || len(rec.calls) != 0 {
		t.Fatalf("activation moved focus: index %d hook calls %v", c.Index(), rec.calls)
	}
}

func TestHandleClickSelectAndDeselect(t *testing.T) {
	rec := &hookRecorder{}
	c := New(rec.hook)
	cur := newCursor(date(2024, time.June, 3))
	sel := Selection{
		Select: func(day datenav.MonthDay) []datenav.MonthDay {
			cur.Select(day.Date)
			return cur.MonthDays()
		},
		Deselect: func() []datenav.MonthDay {
			cur.ClearSelection()
			return cur.MonthDays()
		},
	}

	grid := cur.MonthDays()
	c.HandleClick(grid[20], grid, sel)
	if c.Index() != 20 || rec.last() != 20 {
		t.Fatalf("expected focus on clicked cell 20, got %d", c.Index())
	}
	if s, ok := cur.Selected(); !ok || !s.Equal(date(2024, time.June, 16)) {
		t.Fatalf("expected June 16 selected, got %v", s)
	}

	grid = cur.MonthDays()
	c.HandleClick(grid[20], grid, sel)
	if _, ok := cur.Selected(); ok {
		t.Fatalf("expected second click to deselect")
	}
	if c.Index() != 9 || rec.last() != 9 {
		t.Fatalf("expected focus to return to today (cell 9), got %d", c.Index())
	}
}

func TestHandleClickOnPaddingDayFollowsDate(t *testing.T) {
	c := New(nil)
	cur := newCursor(date(2024, time.June, 3))
	grid := cur.MonthDays()

	// Cell 1 is May 28, padding before June 1.
	c.HandleClick(grid[1], grid, Selection{
		Select: func(day datenav.MonthDay) []datenav.MonthDay {
			cur.Select(day.Date)
			return cur.MonthDays()
		},
	})

	next := cur.MonthDays()
	if got := next[c.Index()].Date; !got.Equal(date(2024, time.May, 28)) {
		t.Fatalf("expected focus on May 28, got %v (cell %d)", got, c.Index())
	}
}

func TestHandleMonthNavigationKeepsDayOfMonth(t *testing.T) {
	rec := &hookRecorder{}
	c := New(rec.hook)
	cur := newCursor(date(2024, time.March, 11))

	cur.NextMonth()
	grid := cur.MonthDays()
	c.HandleMonthNavigation(15, grid, false)
	if d := grid[c.Index()]; d.DayNumber != 15 || !d.IsCurrentMonth {
		t.Fatalf("expected April 15, got %+v", d)
	}

	c.HandleMonthNavigation(31, grid, false)
	if d := grid[c.Index()]; !d.Date.Equal(date(2024, time.April, 30)) {
		t.Fatalf("expected fallback to April 30, got %v", d.Date)
	}
	if rec.last() != c.Index() {
		t.Fatalf("expected hook to follow focus")
	}
}

func TestHandleMonthNavigationPreservesTrigger(t *testing.T) {
	rec := &hookRecorder{}
	c := New(rec.hook)
	cur := newCursor(date(2024, time.January, 29))
	cur.Select(date(2024, time.January, 31))

	cur.NextMonth()
	grid := cur.MonthDays()
	c.HandleMonthNavigation(31, grid, true)

	if d := grid[c.Index()]; !d.Date.Equal(date(2024, time.February, 29)) {
		t.Fatalf("expected Feb 29, got %v", d.Date)
	}
	if len(rec.calls) != 0 {
		t.Fatalf("expected trigger focus preserved, hook called with %v", rec.calls)
	}
}
