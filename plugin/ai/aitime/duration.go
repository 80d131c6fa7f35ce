package aitime

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const maxDurationAmount = 999

// compactDurationPattern matches digits glued to a unit, as in "3h" or "45min".
var compactDurationPattern = regexp.MustCompile(`^(\d+)([a-z]+)$`)

// durationUnit is a unit a duration can be expressed in.
type durationUnit struct {
	name    string
	aliases []string
	add     func(now time.Time, n int) time.Time
}

var durationUnits = []durationUnit{
	{name: "minute", add: func(now time.Time, n int) time.Time { return now.Add(time.Duration(n) * time.Minute) }},
	{name: "hour", aliases: []string{"hr", "hrs"}, add: func(now time.Time, n int) time.Time { return now.Add(time.Duration(n) * time.Hour) }},
	{name: "day", add: func(now time.Time, n int) time.Time { return now.AddDate(0, 0, n) }},
	{name: "week", add: func(now time.Time, n int) time.Time { return now.AddDate(0, 0, 7*n) }},
	{name: "month", add: func(now time.Time, n int) time.Time { return now.AddDate(0, n, 0) }},
}

// weekdayUnit counts business days. It is checked before the others so that
// "weekdays" does not also read as "weeks".
var weekdayUnit = durationUnit{name: "weekday", add: addWeekdays}

// parseDuration handles "3 days", "an hour", "half an hour" and "3h".
func parseDuration(tokens []string, now time.Time) []TimeSuggestion {
	n, unit, ok := splitDuration(tokens)
	if !ok {
		return nil
	}
	if unit == "" {
		return []TimeSuggestion{newSuggestion(plural(n, "minute"), now.Add(time.Duration(n)*time.Minute), now)}
	}
	if n < 1 || n > maxDurationAmount {
		return nil
	}

	var out []TimeSuggestion
	for _, u := range resolveUnits(unit) {
		ts := u.add(now, n)
		if !ts.After(now) {
			continue
		}
		out = append(out, newSuggestion(plural(n, u.name), ts, now))
	}
	return out
}

// splitDuration separates the amount from the unit. The half hour forms come
// back as 30 with an empty unit.
func splitDuration(tokens []string) (int, string, bool) {
	switch len(tokens) {
	case 1:
		m := compactDurationPattern.FindStringSubmatch(tokens[0])
		if m == nil {
			return 0, "", false
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, "", false
		}
		return n, m[2], true
	case 2:
		if tokens[0] == "half" && tokens[1] == "hour" {
			return 30, "", true
		}
		if tokens[0] == "a" || tokens[0] == "an" {
			return 1, tokens[1], true
		}
		n, ok := parseNumber(tokens[0])
		if !ok {
			return 0, "", false
		}
		return n, tokens[1], true
	case 3:
		if tokens[0] == "half" && (tokens[1] == "an" || tokens[1] == "a") && tokens[2] == "hour" {
			return 30, "", true
		}
	}
	return 0, "", false
}

// resolveUnits returns every unit the supplied string could abbreviate or
// extend. "m" is both minute and month.
func resolveUnits(unit string) []durationUnit {
	if strings.HasPrefix(unit, "weekd") {
		return []durationUnit{weekdayUnit}
	}
	var out []durationUnit
	for _, u := range durationUnits {
		if u.matches(unit) {
			out = append(out, u)
		}
	}
	return out
}

func (u durationUnit) matches(unit string) bool {
	if strings.HasPrefix(u.name, unit) || strings.HasPrefix(unit, u.name) {
		return true
	}
	for _, alias := range u.aliases {
		if unit == alias {
			return true
		}
	}
	return false
}
