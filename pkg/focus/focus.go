// Package focus implements roving-tabindex keyboard focus over the month grid.
//
// A Controller owns a single index: the one grid cell that is keyboard
// focusable. It never changes months on its own. Month changes are requested
// through callbacks, which return the grid that resulted, and the controller
// re-derives its index from that grid.
package focus

import (
	"tableflip.dev/planner/pkg/datenav"
)

// Direction is an arrow-key direction.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	}
	return "unknown"
}

func (d Direction) delta() int {
	switch d {
	case Left:
		return -1
	case Right:
		return 1
	case Up:
		return -datenav.DaysPerWeek
	case Down:
		return datenav.DaysPerWeek
	}
	return 0
}

// Hook moves real input focus to the rendered cell at index. Views are
// expected to apply it after they have re-rendered the current grid.
type Hook func(index int)

// MonthChange requests a month change and returns the resulting grid.
type MonthChange struct {
	Previous func() []datenav.MonthDay
	Next     func() []datenav.MonthDay
}

// Selection applies a click to the cursor and returns the resulting grid.
type Selection struct {
	Select   func(day datenav.MonthDay) []datenav.MonthDay
	Deselect func() []datenav.MonthDay
}

// Controller tracks the focusable grid cell. The zero value is usable and
// focuses cell 0 with no hook.
type Controller struct {
	index int
	hook  Hook
}

// New returns a controller that reports focus moves to hook.
func New(hook Hook) *Controller {
	return &Controller{hook: hook}
}

// Index returns the focused cell.
func (c *Controller) Index() int {
	return c.index
}

// TabIndex returns 0 for the focusable cell and -1 for every other cell.
func (c *Controller) TabIndex(cell int) int {
	if cell == c.index {
		return 0
	}
	return -1
}

// Initialize focuses the selected cell, else today, else the first cell.
func (c *Controller) Initialize(grid []datenav.MonthDay) {
	c.index = preferredIndex(grid)
}

// Resync is Initialize followed by moving input focus to the chosen cell.
func (c *Controller) Resync(grid []datenav.MonthDay) {
	c.focus(preferredIndex(grid))
}

// HandleArrow moves focus one cell sideways or one row vertically. Leaving
// the grid asks for the adjacent month and lands on the matching edge of the
// new grid: Right on the first cell, Left on the last, Down and Up on the
// same column of the first or last row.
func (c *Controller) HandleArrow(dir Direction, current int, grid []datenav.MonthDay, months MonthChange) {
	target := current + dir.delta()
	switch {
	case target < 0:
		if months.Previous == nil {
			return
		}
		next := months.Previous()
		c.focus(clamp(len(next)+target, len(next)))
	case target >= len(grid):
		if months.Next == nil {
			return
		}
		next := months.Next()
		c.focus(clamp(target-len(grid), len(next)))
	default:
		c.focus(target)
	}
}

// HandleActivate runs the activation callback for Enter or Space without
// moving focus.
func (c *Controller) HandleActivate(cell int, onActivate func(cell int)) {
	if onActivate != nil {
		onActivate(cell)
	}
}

// HandleClick toggles selection of day. Deselecting re-derives focus from the
// new grid. Selecting focuses the clicked date directly.
func (c *Controller) HandleClick(day datenav.MonthDay, grid []datenav.MonthDay, sel Selection) {
	if day.IsSelected {
		if sel.Deselect == nil {
			return
		}
		c.Resync(sel.Deselect())
		return
	}
	if sel.Select == nil {
		return
	}
	clicked := indexOfDate(grid, day)
	next := sel.Select(day)
	// Selecting a padding day re-resolves the display month, so the clicked
	// date may sit at a different index afterwards.
	if clicked >= 0 && clicked < len(next) && datenav.SameDay(next[clicked].Date, day.Date) {
		c.focus(clicked)
		return
	}
	if idx := indexOfDate(next, day); idx >= 0 {
		c.focus(idx)
		return
	}
	c.Resync(next)
}

// HandleMonthNavigation re-targets focus after the previous/next month
// controls changed the grid. The same day of month is kept when it exists,
// otherwise the last day of the new month is used. With preserveTriggerFocus
// the index is updated but input focus stays on the triggering control.
func (c *Controller) HandleMonthNavigation(previousDayOfMonth int, grid []datenav.MonthDay, preserveTriggerFocus bool) {
	target := -1
	for i, d := range grid {
		if !d.IsCurrentMonth {
			continue
		}
		if d.DayNumber == previousDayOfMonth {
			target = i
			break
		}
		target = i
	}
	if target < 0 {
		target = 0
	}
	if preserveTriggerFocus {
		c.index = target
		return
	}
	c.focus(target)
}

func (c *Controller) focus(index int) {
	c.index = index
	if c.hook != nil {
		c.hook(index)
	}
}

func preferredIndex(grid []datenav.MonthDay) int {
	today := -1
	for i, d := range grid {
		if d.IsSelected {
			return i
		}
		if d.IsToday && today < 0 {
			today = i
		}
	}
	if today >= 0 {
		return today
	}
	return 0
}

func indexOfDate(grid []datenav.MonthDay, day datenav.MonthDay) int {
	for i, d := range grid {
		if datenav.SameDay(d.Date, day.Date) {
			return i
		}
	}
	return -1
}

func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
