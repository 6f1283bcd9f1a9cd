package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"

	"tableflip.dev/planner/pkg/datenav"
	"tableflip.dev/planner/pkg/tui/theme"
)

func juneGrid() []datenav.MonthDay {
	now := time.Date(2024, time.June, 5, 12, 0, 0, 0, time.UTC)
	c := datenav.New(datenav.WithClock(func() time.Time { return now }))
	return c.MonthDays()
}

func TestRenderRows(t *testing.T) {
	out := ansi.Strip(Render(juneGrid(), Options{Theme: theme.Default().Calendar, ShowHeader: true}))
	lines := strings.Split(out, "\n")
	if len(lines) != 7 {
		t.Fatalf("expected header plus 6 rows, got %d:\n%s", len(lines), out)
	}
	if lines[0] != WeekdayHeader {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if lines[1] != "27 28 29 30 31  1  2" {
		t.Fatalf("unexpected first row %q", lines[1])
	}
	if lines[6] != " 1  2  3  4  5  6  7" {
		t.Fatalf("unexpected last row %q", lines[6])
	}
}

func TestRenderWithoutHeader(t *testing.T) {
	out := ansi.Strip(Render(juneGrid(), Options{}))
	if n := strings.Count(out, "\n"); n != 5 {
		t.Fatalf("expected 6 rows, got %d newlines", n)
	}
	if Render(nil, Options{}) != "" {
		t.Fatalf("expected empty render for empty grid")
	}
}

func TestHeader(t *testing.T) {
	out := ansi.Strip(Header("June 2024", 23, NavPrevious, theme.Default().Calendar))
	if !strings.HasPrefix(out, "‹ ") || !strings.Contains(out, "June 2024") || !strings.HasSuffix(out, "› W23") && !strings.HasSuffix(out, "W23") {
		t.Fatalf("unexpected header %q", out)
	}
}

func TestDayKey(t *testing.T) {
	if got := DayKey(time.Date(2024, time.June, 7, 23, 0, 0, 0, time.UTC)); got != "2024-06-07" {
		t.Fatalf("unexpected key %q", got)
	}
}
