package domain

import "time"

// PaceWindow is the trailing window used by the pace trend. It is not calendar aligned.
const PaceWindow = 30 * 24 * time.Hour

// StartOfWeek returns Monday 00:00 of the week containing now, shifted back weekOffset weeks.
func StartOfWeek(now time.Time, weekOffset int, loc *time.Location) time.Time {
	local := now.In(loc)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	sinceMonday := (int(midnight.Weekday()) + 6) % 7
	return midnight.AddDate(0, 0, -sinceMonday-7*weekOffset)
}

// WeekRange returns the inclusive bounds of a Monday aligned week, ending Sunday 23:59:59.999.
func WeekRange(now time.Time, weekOffset int, loc *time.Location) (time.Time, time.Time) {
	start := StartOfWeek(now, weekOffset, loc)
	return start, start.AddDate(0, 0, 7).Add(-time.Millisecond)
}

// MonthRange returns the inclusive bounds of the calendar month containing now.
func MonthRange(now time.Time, loc *time.Location) (time.Time, time.Time) {
	local := now.In(loc)
	start := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0).Add(-time.Millisecond)
}
