package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/planner/pkg/datenav"
	"tableflip.dev/planner/pkg/event"
)

const width = len("11 12 13 14 15 16 17") // an example week

// Month prints the cursor's 42-cell grid. Days with events are bold, padding
// days are faint, today is underlined and the anchored week is cyan.
func (pp *PrettyPrint) Month(c *datenav.Cursor, events []*event.Event) {
	tf := color.New(color.FgWhite, color.Italic)
	label := c.MonthLabel()
	mid := (width - len(label)) / 2
	if mid < 0 {
		mid = 0
	}
	_, _ = tf.Fprintf(pp.out(), "%s%s\n", strings.Repeat(" ", mid), label)

	h := color.New(color.Faint, color.Bold)
	_, _ = h.Fprintln(pp.out(), "Mo Tu We Th Fr Sa Su")

	marks := Marks(c.MonthDays(), events)
	for i, d := range c.MonthDays() {
		_, _ = dayPrinter(d, marks[d.Date]).Fprintf(pp.out(), "%2d", d.DayNumber)
		if (i+1)%datenav.DaysPerWeek == 0 {
			_, _ = fmt.Fprint(pp.out(), "\n")
		} else {
			_, _ = fmt.Fprint(pp.out(), " ")
		}
	}
	pp.NewLine()
}

// Marks reports which grid days overlap at least one event.
func Marks(days []datenav.MonthDay, events []*event.Event) map[time.Time]bool {
	marks := make(map[time.Time]bool, len(days))
	for _, d := range days {
		for _, e := range events {
			if e.OverlapsDay(d.Date) {
				marks[d.Date] = true
				break
			}
		}
	}
	return marks
}

func dayPrinter(d datenav.MonthDay, hasEvents bool) *color.Color {
	attrs := []color.Attribute{}
	switch {
	case !d.IsCurrentMonth:
		attrs = append(attrs, color.Faint)
	case hasEvents:
		attrs = append(attrs, color.Bold, color.FgHiWhite)
	default:
		attrs = append(attrs, color.FgWhite)
	}
	if d.IsInCurrentWeek {
		attrs = append(attrs, color.FgCyan)
	}
	if d.IsToday {
		attrs = append(attrs, color.Underline)
	}
	if d.IsSelected {
		attrs = append(attrs, color.ReverseVideo)
	}
	return color.New(attrs...)
}
