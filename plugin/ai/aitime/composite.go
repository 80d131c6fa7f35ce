package aitime

import "time"

var tomorrowForms = map[string]bool{"tomorrow": true, "tmr": true, "tmrw": true, "tmw": true, "tom": true}

// dateFragment is the calendar day half of a composite phrase.
type dateFragment struct {
	day   time.Time // start of day
	label string
}

// resolveDateFragment reads "tomorrow", "today", "tonight", "friday" or
// "next friday" from tokens.
func resolveDateFragment(tokens []string, now time.Time) (dateFragment, bool) {
	for len(tokens) > 0 && (tokens[0] == "at" || tokens[0] == "on") {
		tokens = tokens[1:]
	}
	today := startOfDay(now)

	switch len(tokens) {
	case 1:
		token := tokens[0]
		switch {
		case tomorrowForms[token]:
			return dateFragment{day: today.AddDate(0, 0, 1), label: "tomorrow"}, true
		case token == "today", token == "tonight":
			return dateFragment{day: today, label: "today"}, true
		case matchWord(token, "tomorrow", 3):
			return dateFragment{day: today.AddDate(0, 0, 1), label: "tomorrow"}, true
		case matchWord(token, "today", 3), matchWord(token, "tonight", 3):
			return dateFragment{day: today, label: "today"}, true
		}
		return weekdayFragment(token, now)
	case 2:
		if tokens[0] != "next" {
			return dateFragment{}, false
		}
		return weekdayFragment(tokens[1], now)
	}
	return dateFragment{}, false
}

func weekdayFragment(token string, now time.Time) (dateFragment, bool) {
	days := matchWeekdays(token)
	if len(days) == 0 {
		return dateFragment{}, false
	}
	best := nextWeekday(now, days[0])
	label := weekdayName(days[0])
	for _, wd := range days[1:] {
		if d := nextWeekday(now, wd); d.Before(best) {
			best, label = d, weekdayName(wd)
		}
	}
	return dateFragment{day: best, label: label}, true
}

// parseComposite tries every split of tokens into a clock half and a date
// half, in either order. The first split that parses decides the result.
func parseComposite(tokens []string, now time.Time) []TimeSuggestion {
	for i := 1; i < len(tokens); i++ {
		left, right := tokens[:i], tokens[i:]

		ct, okClock := parseClockCore(left)
		date, okDate := resolveDateFragment(right, now)
		if !okClock || !okDate {
			date, okDate = resolveDateFragment(left, now)
			ct, okClock = parseClockCore(right)
		}
		if !okClock || !okDate {
			continue
		}

		ts := atClock(date.day, ct.hour, ct.minute)
		if !ts.After(now) {
			return nil
		}
		return []TimeSuggestion{newSuggestion(date.label+" at "+ct.String(), ts, now)}
	}
	return nil
}
