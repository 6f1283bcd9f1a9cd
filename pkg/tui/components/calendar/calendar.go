// Package calendar renders the 42-cell month grid and its navigation header.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/planner/pkg/datenav"
	"tableflip.dev/planner/pkg/tui/theme"
)

// WeekdayHeader labels the Monday-first columns.
const WeekdayHeader = "Mo Tu We Th Fr Sa Su"

// NavControl identifies one of the month header controls.
type NavControl int

const (
	NavNone NavControl = iota
	NavPrevious
	NavNext
)

// Options controls grid rendering.
type Options struct {
	Theme theme.CalendarTheme
	// Focus is the roving-tabindex cell; it is drawn as focused only while
	// the grid owns input focus.
	Focus       int
	GridFocused bool
	// EventDays marks days that have events, keyed by DayKey.
	EventDays  map[string]bool
	ShowHeader bool
}

// DayKey formats a date for EventDays lookups.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// Render draws the grid as six rows of seven cells.
func Render(days []datenav.MonthDay, opts Options) string {
	if len(days) == 0 {
		return ""
	}

	var lines []string
	if opts.ShowHeader {
		lines = append(lines, opts.Theme.WeekdayHeader.Render(WeekdayHeader))
	}

	for row := 0; row*datenav.DaysPerWeek < len(days); row++ {
		cells := make([]string, 0, datenav.DaysPerWeek)
		for col := 0; col < datenav.DaysPerWeek; col++ {
			idx := row*datenav.DaysPerWeek + col
			if idx >= len(days) {
				break
			}
			cells = append(cells, renderDay(days[idx], idx, opts))
		}
		lines = append(lines, strings.Join(cells, " "))
	}

	return strings.Join(lines, "\n")
}

func renderDay(day datenav.MonthDay, idx int, opts Options) string {
	text := fmt.Sprintf("%2d", day.DayNumber)
	t := opts.Theme

	style := t.Day
	if !day.IsCurrentMonth {
		style = t.OtherMonth
	} else if opts.EventDays[DayKey(day.Date)] {
		style = t.HasEvents
	}
	if day.IsInCurrentWeek {
		style = style.Inherit(t.CurrentWeek)
	}
	if day.IsToday {
		style = style.Inherit(t.Today)
	}
	if day.IsSelected {
		style = style.Inherit(t.Selected)
	}
	if opts.GridFocused && idx == opts.Focus {
		style = t.Focused.Inherit(style)
	}
	return style.Render(text)
}

// Header draws "‹ June 2024 ›" followed by the ISO week number. The focused
// control, if any, is highlighted.
func Header(label string, week int, focused NavControl, t theme.CalendarTheme) string {
	prev := t.Nav
	next := t.Nav
	switch focused {
	case NavPrevious:
		prev = t.NavFocused
	case NavNext:
		next = t.NavFocused
	}
	title := t.Header.Render(label)
	width := lipgloss.Width(WeekdayHeader) - 4
	if w := lipgloss.Width(title); w < width {
		pad := width - w
		title = strings.Repeat(" ", pad/2) + title + strings.Repeat(" ", pad-pad/2)
	}
	return fmt.Sprintf("%s %s %s  W%02d", prev.Render("‹"), title, next.Render("›"), week)
}
