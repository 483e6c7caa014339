package calendar

import (
	"errors"
	"time"
)

var ErrBeforeStart = errors.New("date is before program start")

const day = 24 * time.Hour

// Day normalizes t to its calendar day (UTC midnight), keeping the
// year/month/day as seen in t's own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween counts whole calendar days from -> to (negative if to is before from).
func DaysBetween(from, to time.Time) int {
	return int(Day(to).Sub(Day(from)) / day)
}

// DateOf projects a program-relative (week, day) cursor onto the calendar.
// The program runs one template day per calendar day.
func DateOf(start time.Time, week, dayNum, daysPerWeek int) time.Time {
	offset := (week-1)*daysPerWeek + (dayNum - 1)
	return Day(start).AddDate(0, 0, offset)
}

// CursorOf is the inverse of DateOf.
func CursorOf(start, date time.Time, daysPerWeek int) (week, dayNum int, err error) {
	if daysPerWeek < 1 {
		return 0, 0, errors.New("days per week must be greater than 0")
	}
	offset := DaysBetween(start, date)
	if offset < 0 {
		return 0, 0, ErrBeforeStart
	}
	return offset/daysPerWeek + 1, offset%daysPerWeek + 1, nil
}

// Clamp pins a cursor into [1,durationWeeks]x[1,daysPerWeek]. A cursor past the
// last week lands on the very last program day.
func Clamp(week, dayNum, durationWeeks, daysPerWeek int) (int, int) {
	if week < 1 {
		return 1, 1
	}
	if week > durationWeeks {
		return durationWeeks, daysPerWeek
	}
	if dayNum < 1 {
		dayNum = 1
	}
	if dayNum > daysPerWeek {
		dayNum = daysPerWeek
	}
	return week, dayNum
}

// Span returns the first and the last scheduled date of a program.
func Span(start time.Time, durationWeeks, daysPerWeek int) (first, last time.Time) {
	first = Day(start)
	last = DateOf(start, durationWeeks, daysPerWeek, daysPerWeek)
	return first, last
}

type ScheduledDay struct {
	Date time.Time
	Week int
	Day  int
}

// Intersect enumerates every scheduled program day falling into [from, to] (inclusive).
func Intersect(start time.Time, durationWeeks, daysPerWeek int, from, to time.Time) []ScheduledDay {
	if durationWeeks < 1 || daysPerWeek < 1 {
		return nil
	}

	first, last := Span(start, durationWeeks, daysPerWeek)
	from, to = Day(from), Day(to)
	if from.Before(first) {
		from = first
	}
	if to.After(last) {
		to = last
	}
	if to.Before(from) {
		return nil
	}

	days := make([]ScheduledDay, 0, DaysBetween(from, to)+1)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		offset := DaysBetween(first, d)
		days = append(days, ScheduledDay{
			Date: d,
			Week: offset/daysPerWeek + 1,
			Day:  offset%daysPerWeek + 1,
		})
	}
	return days
}
