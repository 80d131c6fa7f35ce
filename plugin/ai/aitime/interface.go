// Package aitime resolves free-form reminder text ("935", "5pm tomorrow",
// "fridey", "in 3 days") into ranked future timestamps.
//
// The deterministic Resolver never fails and never blocks. When it finds
// nothing, an AIExtractor may be consulted for one best-effort candidate.
package aitime

import (
	"context"
	"encoding/json"
	"math"
	"time"
)

// MaxSuggestions bounds the rule-based result set.
// The empty-input default set is not subject to it.
const MaxSuggestions = 6

// unixToInternal is the number of seconds between year 1 and 1970.
const unixToInternal int64 = (1969*365 + 1969/4 - 1969/100 + 1969/400) * 24 * 60 * 60

// NeverTime is the largest instant time.Time can represent.
// It marks a suggestion that must be stored but never delivered.
var NeverTime = time.Unix(math.MaxInt64-unixToInternal, 999999999)

// TimeSuggestion is one candidate resolution of the input text.
type TimeSuggestion struct {
	// Label is the human readable description and the dedup key.
	Label string
	// Timestamp is strictly after the reference instant unless IsNeverDeliver.
	Timestamp time.Time
	// FormattedDisplay is a short render of Timestamp relative to the reference instant.
	FormattedDisplay string
	IsAIGenerated    bool
	IsNeverDeliver   bool
}

// suggestionJSON is the wire form of TimeSuggestion. The never sentinel lies
// beyond what RFC 3339 can express, so its timestamp is left out.
type suggestionJSON struct {
	Label            string     `json:"label"`
	Timestamp        *time.Time `json:"timestamp,omitempty"`
	FormattedDisplay string     `json:"formatted_display"`
	IsAIGenerated    bool       `json:"is_ai_generated"`
	IsNeverDeliver   bool       `json:"is_never_deliver"`
}

// MarshalJSON implements json.Marshaler.
func (s TimeSuggestion) MarshalJSON() ([]byte, error) {
	out := suggestionJSON{
		Label:            s.Label,
		FormattedDisplay: s.FormattedDisplay,
		IsAIGenerated:    s.IsAIGenerated,
		IsNeverDeliver:   s.IsNeverDeliver,
	}
	if !s.IsNeverDeliver {
		out.Timestamp = &s.Timestamp
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler. A never-deliver suggestion
// gets NeverTime back.
func (s *TimeSuggestion) UnmarshalJSON(data []byte) error {
	var in suggestionJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*s = TimeSuggestion{
		Label:            in.Label,
		FormattedDisplay: in.FormattedDisplay,
		IsAIGenerated:    in.IsAIGenerated,
		IsNeverDeliver:   in.IsNeverDeliver,
	}
	switch {
	case in.IsNeverDeliver:
		s.Timestamp = NeverTime
	case in.Timestamp != nil:
		s.Timestamp = *in.Timestamp
	}
	return nil
}

// DateExtractor turns text into time suggestions relative to now.
// Implementations: Resolver (deterministic), AIExtractor (model assisted), Chain.
type DateExtractor interface {
	// Extract returns zero or more suggestions. An empty result is not an error.
	Extract(ctx context.Context, text string, now time.Time) ([]TimeSuggestion, error)
}

// SpanDetector is the generic date phrase detector used as the last
// deterministic resort. It reports every phrase it recognises in text.
type SpanDetector interface {
	Detect(text string, now time.Time) []Span
}

// Span is a recognised date phrase and the instant it resolves to.
type Span struct {
	Text string
	Time time.Time
}

// ExtractedDateTime is the structured answer of a date/time extraction capability.
type ExtractedDateTime struct {
	Label  string `json:"label"`
	Year   int    `json:"year"`
	Month  int    `json:"month"`
	Day    int    `json:"day"`
	Hour   int    `json:"hour"`
	Minute int    `json:"minute"`
}

// Capability is the external structured date/time extraction service.
// It may be unavailable; callers must treat any error as "no suggestion".
type Capability interface {
	ExtractDateTime(ctx context.Context, instruction string, now time.Time) (*ExtractedDateTime, error)
}

func newSuggestion(label string, ts, now time.Time) TimeSuggestion {
	return TimeSuggestion{
		Label:            label,
		Timestamp:        ts,
		FormattedDisplay: FormatDisplay(ts, now),
	}
}

func neverSuggestion(now time.Time) TimeSuggestion {
	return TimeSuggestion{
		Label:            "never",
		Timestamp:        NeverTime,
		FormattedDisplay: FormatDisplay(NeverTime, now),
		IsNeverDeliver:   true,
	}
}
