package aitime

import (
	"sort"
	"time"
)

const (
	maxBareNumber   = 999
	maxBareHours    = 48
	maxBareWeekdays = 30
)

// expandAmbiguous offers both the AM and PM reading of a 12-hour clock time
// on today and tomorrow, keeping the two nearest that are still ahead.
func expandAmbiguous(hour12, minute int, now time.Time) []TimeSuggestion {
	today := startOfDay(now)
	tomorrow := today.AddDate(0, 0, 1)

	type candidate struct {
		day  string
		ts   time.Time
		hour int
	}
	var candidates []candidate
	for _, h := range []int{hour12 % 12, hour12%12 + 12} {
		for _, d := range []struct {
			name string
			base time.Time
		}{{"today", today}, {"tomorrow", tomorrow}} {
			ts := atClock(d.base, h, minute)
			if !ts.After(now) {
				continue
			}
			candidates = append(candidates, candidate{day: d.name, ts: ts, hour: h})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].ts.Before(candidates[j].ts)
	})
	if len(candidates) > 2 {
		candidates = candidates[:2]
	}

	out := make([]TimeSuggestion, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, newSuggestion(c.day+" at "+clockText(c.hour, minute), c.ts, now))
	}
	return out
}

// parseBareNumber handles a lone number such as "5", "twenty" or "935".
func parseBareNumber(tokens []string, now time.Time) []TimeSuggestion {
	if len(tokens) != 1 {
		return nil
	}
	token := tokens[0]
	if DetectMeridiem(token) != MeridiemNone {
		return nil
	}

	var out []TimeSuggestion
	if hour, minute, ok := splitHourMinute(token); ok {
		out = append(out, expandAmbiguous(hour, minute, now)...)
	}

	n, ok := parseNumber(token)
	if !ok || n < 1 || n > maxBareNumber {
		return out
	}
	out = append(out, newSuggestion(plural(n, "minute"), now.Add(time.Duration(n)*time.Minute), now))
	if n <= maxBareHours {
		out = append(out, newSuggestion(plural(n, "hour"), now.Add(time.Duration(n)*time.Hour), now))
	}
	if n <= maxBareWeekdays {
		out = append(out, newSuggestion(plural(n, "weekday"), addWeekdays(now, n), now))
	}
	return out
}

// addWeekdays advances n business days, skipping Saturdays and Sundays and
// keeping the time of day.
func addWeekdays(now time.Time, n int) time.Time {
	t := now
	for n > 0 {
		t = t.AddDate(0, 0, 1)
		if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
			continue
		}
		n--
	}
	return t
}
