package aitime

import (
	"fmt"
	"time"
)

// FormatDisplay renders ts for a list row, relative to now.
func FormatDisplay(ts, now time.Time) string {
	if ts.Equal(NeverTime) {
		return "Never"
	}
	ts = ts.In(now.Location())
	switch days := daysBetween(now, ts); {
	case days == 0:
		return ts.Format("3:04 PM")
	case days > 0 && days < 7:
		return ts.Format("Mon 3:04 PM")
	default:
		return ts.Format("Mon, Jan 2 3:04 PM")
	}
}

// clockText renders a 24-hour time as "9:05 am".
func clockText(hour, minute int) string {
	suffix := "am"
	if hour >= 12 {
		suffix = "pm"
	}
	h := hour % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d %s", h, minute, suffix)
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("in 1 %s", unit)
	}
	return fmt.Sprintf("in %d %ss", n, unit)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// atClock returns the calendar day of day at hour:minute.
func atClock(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}

// daysBetween counts calendar days from a to b in a's location.
func daysBetween(a, b time.Time) int {
	a0 := startOfDay(a)
	b0 := startOfDay(b.In(a.Location()))
	// Dates are compared through UTC midnights so DST shifts do not skew the count.
	ua := time.Date(a0.Year(), a0.Month(), a0.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b0.Year(), b0.Month(), b0.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

// nextWeekday returns the start of the next day strictly after now's day
// that falls on wd.
func nextWeekday(now time.Time, wd time.Weekday) time.Time {
	ahead := (int(wd) - int(now.Weekday()) + 7) % 7
	if ahead == 0 {
		ahead = 7
	}
	return startOfDay(now).AddDate(0, 0, ahead)
}
