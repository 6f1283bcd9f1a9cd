// Package datenav holds the calendar date cursor: the anchored week, an optional
// selected day, and the week and month views derived from them.
package datenav

import (
	"fmt"
	"time"
)

const (
	// DaysPerWeek is the width of every week row.
	DaysPerWeek = 7
	// GridCells is the size of the month grid (six full weeks).
	GridCells = 6 * DaysPerWeek

	// interiorDay is far enough into any month that moving by whole months
	// never skids into the following one.
	interiorDay = 8
	// majority is the number of days a month needs within a straddling week to
	// claim the display.
	majority = 4
)

// WeekDay is one day of the anchored week.
type WeekDay struct {
	Date       time.Time
	DayName    string // "Monday"
	ShortDate  string // "Oct 2"
	FullLabel  string // "Mon Oct 2"
	IsSelected bool
	IsToday    bool
}

// MonthDay is one cell of the 42-cell month grid.
type MonthDay struct {
	Date            time.Time
	DayNumber       int
	IsCurrentMonth  bool
	IsToday         bool
	IsSelected      bool
	IsInCurrentWeek bool
}

// Range is an inclusive span from the start of a day to the end of a day.
type Range struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the range, both ends inclusive.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

func (r Range) String() string {
	return fmt.Sprintf("%s..%s", r.Start.Format(time.RFC3339), r.End.Format(time.RFC3339))
}

// Option configures a Cursor.
type Option func(*Cursor)

// WithClock replaces the source of "now". The clock's location is used for
// every date-only value the cursor produces.
func WithClock(now func() time.Time) Option {
	return func(c *Cursor) {
		c.now = now
	}
}

// WithAnchor seeds the cursor on the week containing d.
func WithAnchor(d time.Time) Option {
	return func(c *Cursor) {
		c.seed = d
	}
}

// Cursor tracks which week is displayed and which day, if any, is selected.
// It is not safe for concurrent use; each view owns its own Cursor.
type Cursor struct {
	now  func() time.Time
	loc  *time.Location
	seed time.Time

	weekAnchor  time.Time
	selected    time.Time
	hasSelected bool
}

// New creates a cursor anchored on the current week unless WithAnchor says
// otherwise.
func New(opts ...Option) *Cursor {
	c := &Cursor{now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	c.loc = c.now().Location()
	if c.seed.IsZero() {
		c.setAnchor(c.today())
	} else {
		c.setAnchor(c.mustDate(c.seed))
	}
	c.seed = time.Time{}
	return c
}

// Clone returns an independent copy, for handing state to another goroutine.
func (c *Cursor) Clone() *Cursor {
	cp := *c
	return &cp
}

// WeekStart returns the Monday of the anchored week.
func (c *Cursor) WeekStart() time.Time {
	return c.weekAnchor
}

// Selected returns the selected day, if any.
func (c *Cursor) Selected() (time.Time, bool) {
	return c.selected, c.hasSelected
}

// NextWeek moves forward one week and drops the selection.
func (c *Cursor) NextWeek() {
	c.setAnchor(AddDays(c.weekAnchor, DaysPerWeek))
	c.clear()
}

// PreviousWeek moves back one week and drops the selection.
func (c *Cursor) PreviousWeek() {
	c.setAnchor(AddDays(c.weekAnchor, -DaysPerWeek))
	c.clear()
}

// Today anchors the current week and drops the selection.
func (c *Cursor) Today() {
	c.setAnchor(c.today())
	c.clear()
}

// NextMonth anchors the week holding the 8th of the month after the displayed one.
func (c *Cursor) NextMonth() {
	c.shiftMonth(1)
}

// PreviousMonth anchors the week holding the 8th of the month before the displayed one.
func (c *Cursor) PreviousMonth() {
	c.shiftMonth(-1)
}

func (c *Cursor) shiftMonth(delta int) {
	month := c.DisplayMonth()
	target := Date(month.Year(), month.Month()+time.Month(delta), interiorDay, c.loc)
	c.setAnchor(target)
	c.clear()
}

// Select marks d as the selected day. A day outside the anchored week pulls
// the anchor along with it.
func (c *Cursor) Select(d time.Time) {
	day := c.mustDate(d)
	c.selected = day
	c.hasSelected = true
	if !c.InCurrentWeek(day) {
		c.setAnchor(day)
	}
}

// ClearSelection drops the selected day and keeps the anchor.
func (c *Cursor) ClearSelection() {
	c.clear()
}

// InCurrentWeek reports whether d falls within the anchored week.
func (c *Cursor) InCurrentWeek(d time.Time) bool {
	return inWeek(c.dateOnly(d), c.weekAnchor)
}

// WeekDays lists the seven days of the anchored week.
func (c *Cursor) WeekDays() []WeekDay {
	today := c.today()
	days := make([]WeekDay, 0, DaysPerWeek)
	for i := 0; i < DaysPerWeek; i++ {
		date := AddDays(c.weekAnchor, i)
		short := fmt.Sprintf("%s %d", date.Format("Jan"), date.Day())
		days = append(days, WeekDay{
			Date:       date,
			DayName:    date.Weekday().String(),
			ShortDate:  short,
			FullLabel:  date.Format("Mon") + " " + short,
			IsSelected: c.hasSelected && SameDay(date, c.selected),
			IsToday:    SameDay(date, today),
		})
	}
	return days
}

// MonthDays builds the 42-cell grid for the display month, starting on the
// Monday on or before the 1st.
func (c *Cursor) MonthDays() []MonthDay {
	today := c.today()
	month := c.DisplayMonth()
	start := Monday(month)

	days := make([]MonthDay, 0, GridCells)
	for i := 0; i < GridCells; i++ {
		date := AddDays(start, i)
		days = append(days, MonthDay{
			Date:            date,
			DayNumber:       date.Day(),
			IsCurrentMonth:  date.Month() == month.Month() && date.Year() == month.Year(),
			IsToday:         SameDay(date, today),
			IsSelected:      c.hasSelected && SameDay(date, c.selected),
			IsInCurrentWeek: inWeek(date, c.weekAnchor),
		})
	}
	return days
}

// DisplayMonth returns the first day of the month the calendar should show.
//
// A selected day wins, then today when it is in the anchored week. Otherwise
// a week straddling two months shows whichever month holds at least four of
// its days.
func (c *Cursor) DisplayMonth() time.Time {
	ref := c.weekAnchor
	switch today := c.today(); {
	case c.hasSelected:
		ref = c.selected
	case inWeek(today, c.weekAnchor):
		ref = today
	default:
		end := AddDays(c.weekAnchor, DaysPerWeek-1)
		if end.Month() != c.weekAnchor.Month() && daysInStartMonth(c.weekAnchor) < majority {
			ref = end
		}
	}
	return Date(ref.Year(), ref.Month(), 1, c.loc)
}

// MonthLabel renders the display month as "January 2006".
func (c *Cursor) MonthLabel() string {
	return c.DisplayMonth().Format("January 2006")
}

// WeekNumber returns the ISO 8601 week number of the anchored week.
func (c *Cursor) WeekNumber() int {
	_, week := c.weekAnchor.ISOWeek()
	return week
}

// WeekRange spans the anchored week from the start of Monday to Sunday 23:59:59.999.
func (c *Cursor) WeekRange() Range {
	return Range{
		Start: c.weekAnchor,
		End:   EndOfDay(AddDays(c.weekAnchor, DaysPerWeek-1)),
	}
}

// SelectedRange spans the selected day, when there is one.
func (c *Cursor) SelectedRange() (Range, bool) {
	if !c.hasSelected {
		return Range{}, false
	}
	return Range{Start: c.selected, End: EndOfDay(c.selected)}, true
}

func (c *Cursor) setAnchor(d time.Time) {
	c.weekAnchor = Monday(d)
}

func (c *Cursor) clear() {
	c.selected = time.Time{}
	c.hasSelected = false
}

func (c *Cursor) today() time.Time {
	return c.dateOnly(c.now())
}

func (c *Cursor) dateOnly(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day(), c.loc)
}

func (c *Cursor) mustDate(t time.Time) time.Time {
	if t.IsZero() {
		panic("datenav: zero date passed to cursor")
	}
	return c.dateOnly(t)
}

func daysInStartMonth(monday time.Time) int {
	n := 0
	for i := 0; i < DaysPerWeek; i++ {
		if AddDays(monday, i).Month() == monday.Month() {
			n++
		}
	}
	return n
}

func inWeek(d, monday time.Time) bool {
	end := AddDays(monday, DaysPerWeek-1)
	return !d.Before(monday) && !d.After(end)
}
