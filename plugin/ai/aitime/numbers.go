package aitime

import "strconv"

// numberWords maps spelled numbers to their values.
var numberWords = map[string]int{
	"one":       1,
	"two":       2,
	"three":     3,
	"four":      4,
	"five":      5,
	"six":       6,
	"seven":     7,
	"eight":     8,
	"nine":      9,
	"ten":       10,
	"eleven":    11,
	"twelve":    12,
	"thirteen":  13,
	"fourteen":  14,
	"fifteen":   15,
	"sixteen":   16,
	"seventeen": 17,
	"eighteen":  18,
	"nineteen":  19,
	"twenty":    20,
	"thirty":    30,
	"forty":     40,
	"fifty":     50,
}

// parseNumber reads a non-negative integer written in digits or as a word.
func parseNumber(token string) (int, bool) {
	if n, ok := numberWords[token]; ok {
		return n, true
	}
	if !isDigits(token) {
		return 0, false
	}
	n, err := strconv.Atoi(token)
	if err != nil {
		return 0, false
	}
	return n, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// parseCompoundMinute resolves one or two words into a minute in 0..59:
// "5", "forty", or "forty five".
func parseCompoundMinute(words []string) (int, bool) {
	switch len(words) {
	case 1:
		n, ok := parseNumber(words[0])
		if !ok || n > 59 {
			return 0, false
		}
		return n, true
	case 2:
		tens, ok := numberWords[words[0]]
		if !ok || tens < 20 || tens%10 != 0 {
			return 0, false
		}
		ones, ok := numberWords[words[1]]
		if !ok || ones < 1 || ones > 9 {
			return 0, false
		}
		if tens+ones > 59 {
			return 0, false
		}
		return tens + ones, true
	default:
		return 0, false
	}
}

// splitHourMinute decomposes "935" or "1230" into 12-hour clock parts.
func splitHourMinute(token string) (hour, minute int, ok bool) {
	if !isDigits(token) || len(token) < 3 || len(token) > 4 {
		return 0, 0, false
	}
	cut := len(token) - 2
	hour, _ = strconv.Atoi(token[:cut])
	minute, _ = strconv.Atoi(token[cut:])
	if hour < 1 || hour > 12 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}
