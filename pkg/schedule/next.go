package schedule

import (
	"math"
	"time"
)

// DateOnly strips the time of day from t, keeping its location.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// NextOccurrence returns the next date r fires on or after today. A recurring
// rule that matches today returns today. Once rules return their stored date
// even when it is in the past.
func NextOccurrence(r Rule, today time.Time) time.Time {
	day := DateOnly(today)
	loc := day.Location()

	switch r.Type {
	case Once:
		if r.Date.IsZero() {
			return time.Time{}
		}
		return DateOnly(r.Date.In(loc))

	case Weekday:
		delta := (int(r.Weekday) - int(day.Weekday()) + 7) % 7
		return day.AddDate(0, 0, delta)

	case Monthly:
		candidate := dayInMonth(day.Year(), day.Month(), r.DayOfMonth, loc)
		if candidate.Before(day) {
			y, m := nextMonth(day.Year(), day.Month())
			candidate = dayInMonth(y, m, r.DayOfMonth, loc)
		}
		return candidate

	case MonthlyWeekday, FirstWeekdayOfMonth:
		n := r.WeekOfMonth
		if r.Type == FirstWeekdayOfMonth || n < 1 {
			n = 1
		}
		candidate := nthWeekday(day.Year(), day.Month(), r.Weekday, n, loc)
		if candidate.Before(day) {
			y, m := nextMonth(day.Year(), day.Month())
			candidate = nthWeekday(y, m, r.Weekday, n, loc)
		}
		return candidate
	}
	return time.Time{}
}

// DaysUntil counts whole days from today to date, comparing dates only.
// Negative values mean date is in the past.
func DaysUntil(date, today time.Time) int {
	t := DateOnly(today)
	d := DateOnly(date.In(t.Location()))
	// Rounding absorbs the 23h/25h days around DST changes.
	return int(math.Round(d.Sub(t).Hours() / 24))
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

// dayInMonth clamps dom to the length of the month.
func dayInMonth(year int, month time.Month, dom int, loc *time.Location) time.Time {
	if last := daysIn(year, month, loc); dom > last {
		dom = last
	}
	if dom < 1 {
		dom = 1
	}
	return time.Date(year, month, dom, 0, 0, 0, 0, loc)
}

// nthWeekday is the first wd of the month plus n-1 weeks. A fifth occurrence
// that does not exist runs over into the following month.
func nthWeekday(year int, month time.Month, wd time.Weekday, n int, loc *time.Location) time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	offset := (int(wd) - int(first.Weekday()) + 7) % 7
	return first.AddDate(0, 0, offset+(n-1)*7)
}

func nextMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}
