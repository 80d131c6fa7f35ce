package aitime

import (
	"sort"
	"strings"
	"time"
)

// weekdayNames lists the accepted spellings of each weekday, full name last.
var weekdayNames = []struct {
	day   time.Weekday
	forms []string
}{
	{time.Monday, []string{"mon", "monday"}},
	{time.Tuesday, []string{"tue", "tues", "tuesday"}},
	{time.Wednesday, []string{"wed", "weds", "wednesday"}},
	{time.Thursday, []string{"thu", "thur", "thurs", "thursday"}},
	{time.Friday, []string{"fri", "friday"}},
	{time.Saturday, []string{"sat", "saturday"}},
	{time.Sunday, []string{"sun", "sunday"}},
}

// matchWeekdays returns every weekday token could name, by prefix of at least
// two letters or by fuzzy match against any accepted spelling.
func matchWeekdays(token string) []time.Weekday {
	var out []time.Weekday
	for _, w := range weekdayNames {
		for _, form := range w.forms {
			if matchWord(token, form, 2) {
				out = append(out, w.day)
				break
			}
		}
	}
	return out
}

// weekdayName is the lowercase full name used in labels.
func weekdayName(wd time.Weekday) string {
	return strings.ToLower(wd.String())
}

// parseWeekday handles "fri", "friday", "next friday" and typos such as
// "fridey". Each resolves to the next such day after today at 09:00.
func parseWeekday(tokens []string, now time.Time) []TimeSuggestion {
	if len(tokens) == 2 && tokens[0] == "next" {
		tokens = tokens[1:]
	}
	if len(tokens) != 1 {
		return nil
	}

	days := matchWeekdays(tokens[0])
	out := make([]TimeSuggestion, 0, len(days))
	for _, wd := range days {
		ts := atClock(nextWeekday(now, wd), 9, 0)
		out = append(out, newSuggestion(weekdayName(wd), ts, now))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}
