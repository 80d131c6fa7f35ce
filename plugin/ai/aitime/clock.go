package aitime

import (
	"strconv"
	"strings"
	"time"
)

// periodWords map parts of the day to the meridiem they imply.
var periodWords = []struct {
	word     string
	meridiem Meridiem
}{
	{"morning", MeridiemAM},
	{"afternoon", MeridiemPM},
	{"evening", MeridiemPM},
	{"night", MeridiemPM},
}

// clockTime is a resolved time of day.
type clockTime struct {
	hour     int // 0..23
	minute   int
	meridiem Meridiem
	colon    bool
}

// ambiguous reports a colon time such as "9:30" that could be morning or evening.
func (c clockTime) ambiguous() bool {
	return c.meridiem == MeridiemNone && c.hour >= 1 && c.hour <= 12
}

func (c clockTime) String() string {
	return clockText(c.hour, c.minute)
}

// parseClockCore reads a time of day from tokens: "5pm", "5:30", "5 30 pm",
// "nine forty five p.m.", "7 in the morning". A bare hour with neither a
// meridiem nor a colon is rejected.
func parseClockCore(tokens []string) (clockTime, bool) {
	tokens = stripLeadingAt(tokens)
	if len(tokens) == 0 {
		return clockTime{}, false
	}

	meridiem := MeridiemNone
	if len(tokens) >= 2 {
		last := tokens[len(tokens)-1]
		if m := DetectMeridiem(last); m != MeridiemNone {
			meridiem = m
			tokens = tokens[:len(tokens)-1]
		} else if m := periodMeridiem(last); m != MeridiemNone {
			meridiem = m
			tokens = tokens[:len(tokens)-1]
		}
	}
	if meridiem == MeridiemNone {
		var rest string
		last := tokens[len(tokens)-1]
		if meridiem, rest = peelMeridiem(last); meridiem != MeridiemNone {
			tokens = append(tokens[:len(tokens)-1:len(tokens)-1], rest)
		}
	}

	var (
		hour, minute int
		colon        bool
		ok           bool
	)
	first := tokens[0]
	switch {
	case len(tokens) > 1:
		if hour, ok = parseNumber(first); !ok {
			return clockTime{}, false
		}
		if minute, ok = parseCompoundMinute(tokens[1:]); !ok {
			return clockTime{}, false
		}
	case strings.Contains(first, ":"):
		if hour, minute, ok = parseColonTime(first); !ok {
			return clockTime{}, false
		}
		colon = true
	default:
		if h, m, split := splitHourMinute(first); split && meridiem != MeridiemNone {
			hour, minute = h, m
			break
		}
		if hour, ok = parseNumber(first); !ok {
			return clockTime{}, false
		}
	}

	switch {
	case meridiem != MeridiemNone:
		if hour < 1 || hour > 12 {
			return clockTime{}, false
		}
		hour %= 12
		if meridiem == MeridiemPM {
			hour += 12
		}
	case colon:
		if hour > 23 {
			return clockTime{}, false
		}
	default:
		return clockTime{}, false
	}
	return clockTime{hour: hour, minute: minute, meridiem: meridiem, colon: colon}, true
}

// periodMeridiem matches a partially typed part-of-day word of at least two letters.
func periodMeridiem(token string) Meridiem {
	if len(token) < 2 {
		return MeridiemNone
	}
	for _, p := range periodWords {
		if strings.HasPrefix(p.word, token) {
			return p.meridiem
		}
	}
	return MeridiemNone
}

// peelMeridiem splits a glued suffix off a token: "5pm", "9om", "10a".
// The remainder has to look like a number for the split to count.
func peelMeridiem(token string) (Meridiem, string) {
	for _, n := range []int{2, 1} {
		if len(token) <= n {
			continue
		}
		rest := token[:len(token)-n]
		m := DetectMeridiem(token[len(token)-n:])
		if m == MeridiemNone || !numberLike(rest) {
			continue
		}
		return m, rest
	}
	return MeridiemNone, token
}

func numberLike(s string) bool {
	if _, ok := numberWords[s]; ok {
		return true
	}
	return s != "" && s[len(s)-1] >= '0' && s[len(s)-1] <= '9'
}

// parseColonTime parses "H:MM" or "HH:MM".
func parseColonTime(s string) (hour, minute int, ok bool) {
	h, m, found := strings.Cut(s, ":")
	if !found || !isDigits(h) || len(h) > 2 || !isDigits(m) || len(m) != 2 {
		return 0, 0, false
	}
	hour, _ = strconv.Atoi(h)
	minute, _ = strconv.Atoi(m)
	if minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}

// parseClockTime offers a clock expression today (while still ahead) and tomorrow.
func parseClockTime(tokens []string, now time.Time) []TimeSuggestion {
	ct, ok := parseClockCore(tokens)
	if !ok {
		return nil
	}
	if ct.ambiguous() {
		return expandAmbiguous(ct.hour, ct.minute, now)
	}

	var out []TimeSuggestion
	today := atClock(now, ct.hour, ct.minute)
	if today.After(now) {
		out = append(out, newSuggestion("today at "+ct.String(), today, now))
	}
	tomorrow := atClock(startOfDay(now).AddDate(0, 0, 1), ct.hour, ct.minute)
	out = append(out, newSuggestion("tomorrow at "+ct.String(), tomorrow, now))
	return out
}
