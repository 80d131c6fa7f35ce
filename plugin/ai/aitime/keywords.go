package aitime

import (
	"strings"
	"time"
)

// keywordRule resolves a keyword to an instant. It returns false when the
// keyword yields no usable time for now.
type keywordRule func(now time.Time) (time.Time, bool)

// keywordEntry is one row of the keyword table.
type keywordEntry struct {
	matchers []string
	label    string
	rule     keywordRule
	never    bool
}

// keywordTable is scanned in order; the first entry per label wins.
var keywordTable = []keywordEntry{
	{matchers: []string{"noon", "midday"}, label: "noon", rule: nextClock(12, 0)},
	{matchers: []string{"midnight"}, label: "midnight", rule: midnight},
	{matchers: []string{"later", "later today"}, label: "later today", rule: laterToday},
	{matchers: []string{"tonight", "this evening"}, label: "tonight", rule: nextClock(21, 0)},
	{matchers: []string{"tomorrow", "tmr", "tmrw"}, label: "tomorrow", rule: tomorrowAt(9)},
	{matchers: []string{"tomorrow morning"}, label: "tomorrow morning", rule: tomorrowAt(9)},
	{matchers: []string{"tomorrow afternoon"}, label: "tomorrow afternoon", rule: tomorrowAt(14)},
	{matchers: []string{"tomorrow evening"}, label: "tomorrow evening", rule: tomorrowAt(19)},
	{matchers: []string{"tomorrow night"}, label: "tomorrow night", rule: tomorrowAt(21)},
	{matchers: []string{"this weekend", "weekend"}, label: "this weekend", rule: thisWeekend},
	{matchers: []string{"end of day", "eod"}, label: "end of day", rule: nextClock(17, 0)},
	{matchers: []string{"end of week", "eow"}, label: "end of week", rule: endOfWeek},
	{matchers: []string{"next week"}, label: "next week", rule: nextWeek},
	{matchers: []string{"next month"}, label: "next month", rule: nextMonth},
	{matchers: []string{"next quarter"}, label: "next quarter", rule: nextQuarter},
	{matchers: []string{"never"}, label: "never", never: true},
}

// parseKeywords matches the whole normalized input against the keyword table.
// A matcher hits when either string is a prefix of the other, or on a fuzzy match.
func parseKeywords(input string, now time.Time) []TimeSuggestion {
	if input == "" {
		return nil
	}
	seen := make(map[string]bool)
	var out []TimeSuggestion
	for _, entry := range keywordTable {
		if seen[entry.label] || !entry.matches(input) {
			continue
		}
		seen[entry.label] = true
		if entry.never {
			out = append(out, neverSuggestion(now))
			continue
		}
		ts, ok := entry.rule(now)
		if !ok || !ts.After(now) {
			continue
		}
		out = append(out, newSuggestion(entry.label, ts, now))
	}
	return out
}

func (e keywordEntry) matches(input string) bool {
	for _, m := range e.matchers {
		if strings.HasPrefix(m, input) || strings.HasPrefix(input, m) || FuzzyMatch(input, m) {
			return true
		}
	}
	return false
}

// nextClock is today at hour:minute, or tomorrow once that has passed.
func nextClock(hour, minute int) keywordRule {
	return func(now time.Time) (time.Time, bool) {
		ts := atClock(now, hour, minute)
		if !ts.After(now) {
			ts = atClock(startOfDay(now).AddDate(0, 0, 1), hour, minute)
		}
		return ts, true
	}
}

func tomorrowAt(hour int) keywordRule {
	return func(now time.Time) (time.Time, bool) {
		return atClock(startOfDay(now).AddDate(0, 0, 1), hour, 0), true
	}
}

func midnight(now time.Time) (time.Time, bool) {
	return startOfDay(now).AddDate(0, 0, 1), true
}

// laterToday is three hours out, rounded up to the next quarter hour.
// It yields nothing once that would spill into tomorrow.
func laterToday(now time.Time) (time.Time, bool) {
	ts := now.Add(3 * time.Hour).Truncate(time.Minute)
	if rem := ts.Minute() % 15; rem != 0 {
		ts = ts.Add(time.Duration(15-rem) * time.Minute)
	}
	if daysBetween(now, ts) != 0 {
		return time.Time{}, false
	}
	return ts, true
}

// thisWeekend is the coming Saturday at noon, today included while still ahead.
func thisWeekend(now time.Time) (time.Time, bool) {
	if now.Weekday() == time.Saturday {
		if ts := atClock(now, 12, 0); ts.After(now) {
			return ts, true
		}
	}
	return atClock(nextWeekday(now, time.Saturday), 12, 0), true
}

// endOfWeek is Friday 17:00 of this week, or next week's once passed.
func endOfWeek(now time.Time) (time.Time, bool) {
	ahead := (int(time.Friday) - int(now.Weekday()) + 7) % 7
	ts := atClock(startOfDay(now).AddDate(0, 0, ahead), 17, 0)
	if !ts.After(now) {
		ts = atClock(nextWeekday(now, time.Friday), 17, 0)
	}
	return ts, true
}

// nextWeek is the coming Monday at 09:00, never today.
func nextWeek(now time.Time) (time.Time, bool) {
	return atClock(nextWeekday(now, time.Monday), 9, 0), true
}

func nextMonth(now time.Time) (time.Time, bool) {
	return time.Date(now.Year(), now.Month()+1, 1, 9, 0, 0, 0, now.Location()), true
}

// nextQuarter is the first day of the next Jan/Apr/Jul/Oct at 09:00.
func nextQuarter(now time.Time) (time.Time, bool) {
	month := ((int(now.Month())-1)/3+1)*3 + 1
	return time.Date(now.Year(), time.Month(month), 1, 9, 0, 0, 0, now.Location()), true
}
