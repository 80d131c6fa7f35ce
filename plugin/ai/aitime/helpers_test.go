package aitime

import (
	"context"
	"time"
)

// refNow is Monday 2024-01-01 08:00 UTC.
var refNow = time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

func at(month time.Month, day, hour, minute int) time.Time {
	return time.Date(2024, month, day, hour, minute, 0, 0, time.UTC)
}

func labels(s []TimeSuggestion) []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[i] = v.Label
	}
	return out
}

func find(s []TimeSuggestion, label string) (TimeSuggestion, bool) {
	for _, v := range s {
		if v.Label == label {
			return v, true
		}
	}
	return TimeSuggestion{}, false
}

// extractorFunc adapts a function to DateExtractor.
type extractorFunc func(ctx context.Context, text string, now time.Time) ([]TimeSuggestion, error)

func (f extractorFunc) Extract(ctx context.Context, text string, now time.Time) ([]TimeSuggestion, error) {
	return f(ctx, text, now)
}

// staticDetector reports fixed spans regardless of input.
type staticDetector []Span

func (d staticDetector) Detect(string, time.Time) []Span { return d }
