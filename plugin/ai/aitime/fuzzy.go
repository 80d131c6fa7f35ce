package aitime

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Meridiem is an AM/PM marker.
type Meridiem int

const (
	MeridiemNone Meridiem = iota
	MeridiemAM
	MeridiemPM
)

func (m Meridiem) String() string {
	switch m {
	case MeridiemAM:
		return "am"
	case MeridiemPM:
		return "pm"
	default:
		return "none"
	}
}

var (
	amForms = map[string]bool{"am": true, "a.m.": true, "a.m": true, "a": true}
	pmForms = map[string]bool{"pm": true, "p.m.": true, "p.m": true, "p": true}

	// Keys around 'a' and 'p' on a QWERTY keyboard.
	aNeighbors = "qwsz"
	pNeighbors = "ol;["
)

// EditDistance is the Levenshtein distance with unit costs.
func EditDistance(a, b string) int {
	return fuzzy.LevenshteinDistance(a, b)
}

// FuzzyMatch reports whether input is a plausible typo of target. Both the
// length difference and the edit distance must stay within a quarter of the
// target length, and never below one.
func FuzzyMatch(input, target string) bool {
	tolerance := max(1, len(target)/4)
	diff := len(input) - len(target)
	if diff < 0 {
		diff = -diff
	}
	if diff > tolerance {
		return false
	}
	return EditDistance(input, target) <= tolerance
}

// DetectMeridiem classifies token as AM, PM or neither. Two-letter tokens
// one keystroke away from "am"/"pm" are accepted; ties are broken by which
// key the first letter neighbours.
func DetectMeridiem(token string) Meridiem {
	switch {
	case amForms[token]:
		return MeridiemAM
	case pmForms[token]:
		return MeridiemPM
	case len(token) != 2:
		return MeridiemNone
	}

	am := mismatches(token, "am")
	pm := mismatches(token, "pm")
	switch {
	case am <= 1 && am < pm:
		return MeridiemAM
	case pm <= 1 && pm < am:
		return MeridiemPM
	case am <= 1 && am == pm:
		first := token[:1]
		if strings.Contains(aNeighbors, first) {
			return MeridiemAM
		}
		if strings.Contains(pNeighbors, first) {
			return MeridiemPM
		}
	}
	return MeridiemNone
}

// mismatches counts positions where a and b differ. Both have equal length.
func mismatches(a, b string) int {
	n := 0
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			n++
		}
	}
	return n
}

// matchWord reports whether token names word exactly, as a prefix of at
// least minPrefix characters, or as a fuzzy typo.
func matchWord(token, word string, minPrefix int) bool {
	if token == word {
		return true
	}
	if len(token) >= minPrefix && strings.HasPrefix(word, token) {
		return true
	}
	return FuzzyMatch(token, word)
}
