package aitime

import (
	"strings"
	"unicode"
)

// fillerWords carry no date information and are dropped from token lists.
var fillerWords = map[string]bool{
	"o'clock": true,
	"o’clock": true,
	"oclock":  true,
	"clock":   true,
	"in":      true,
	"the":     true,
	"o":       true,
}

// normalize lowercases text and collapses runs of whitespace.
func normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// tokenize splits normalized text on whitespace and hyphens and drops filler
// words. A leading "at" is dropped too; "at" elsewhere is kept so composite
// phrases like "tomorrow at 5pm" can still be split around it.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(normalize(text), func(r rune) bool {
		return unicode.IsSpace(r) || r == '-'
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if fillerWords[f] {
			continue
		}
		if f == "at" && len(tokens) == 0 {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// stripLeadingAt removes "at" tokens from the front of tokens.
func stripLeadingAt(tokens []string) []string {
	for len(tokens) > 0 && tokens[0] == "at" {
		tokens = tokens[1:]
	}
	return tokens
}
