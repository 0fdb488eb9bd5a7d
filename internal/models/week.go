package models

import "time"

// LastCompletedWeek returns the Monday-Sunday window that most recently
// closed before now. When now falls on a Sunday the week ending that day is
// considered closed.
func LastCompletedWeek(now time.Time) (weekStart, weekEnd time.Time) {
	day := now.Truncate(24 * time.Hour)
	// Walk back to the most recent Sunday (today if now is a Sunday).
	offset := int(day.Weekday()) // Sunday == 0
	weekEnd = day.AddDate(0, 0, -offset)
	weekStart = weekEnd.AddDate(0, 0, -6)
	return weekStart, weekEnd
}

// SameDay reports whether two timestamps fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return DayKey(a) == DayKey(b)
}

// InRange reports whether t falls within [start, end] inclusive, by calendar
// date.
func InRange(t, start, end time.Time) bool {
	k := DayKey(t)
	return k >= DayKey(start) && k <= DayKey(end)
}
