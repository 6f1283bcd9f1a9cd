package datenav

import "time"

// Date returns the first instant of the civil day y-m-d in loc, normalizing
// out-of-range months and days the way time.Date does. That instant is
// midnight except on days where a daylight saving shift skips midnight, in
// which case it is the moment the clocks jump to.
func Date(y int, m time.Month, d int, loc *time.Location) time.Time {
	noon := time.Date(y, m, d, 12, 0, 0, 0, loc)
	y, m, d = noon.Date()
	t := time.Date(y, m, d, 0, 0, 0, 0, loc)
	for !SameDay(t, noon) {
		t = t.Add(15 * time.Minute)
	}
	return t
}

// StripTime returns the start of t's own wall-clock day.
func StripTime(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day(), t.Location())
}

// AddDays moves t by n calendar days and returns the start of that day.
// Unlike t.AddDate it never lands on the wrong day across a DST shift.
func AddDays(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	return Date(y, m, d+n, t.Location())
}

// EndOfDay returns the last millisecond of t's wall-clock day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// Monday returns the Monday of the ISO week containing t, at the start of day.
// Sunday belongs to the week that started six days earlier.
func Monday(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return AddDays(t, 1-weekday)
}

// SameDay compares calendar dates, ignoring time of day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DaysIn returns the number of days in the month of t.
func DaysIn(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 12, 0, 0, 0, t.Location()).Day()
}
