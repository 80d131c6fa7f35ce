package aitime

import (
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"github.com/tj/go-naturaldate"
)

// WhenDetector finds English date phrases anywhere in free text.
type WhenDetector struct {
	parser *when.Parser
}

// NewWhenDetector builds a detector with the English and common rule sets.
func NewWhenDetector() *WhenDetector {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &WhenDetector{parser: w}
}

// Detect returns the phrase the rule set recognised, if any.
func (d *WhenDetector) Detect(text string, now time.Time) []Span {
	r, err := d.parser.Parse(text, now)
	if err != nil || r == nil {
		return nil
	}
	return []Span{{Text: r.Text, Time: r.Time}}
}

// NaturalDateDetector reads the whole text as one date expression,
// preferring future readings ("friday" is the coming one).
type NaturalDateDetector struct{}

// Detect returns the whole text as a span when it parses.
func (NaturalDateDetector) Detect(text string, now time.Time) []Span {
	t, err := naturaldate.Parse(text, now, naturaldate.WithDirection(naturaldate.Future))
	if err != nil || t.Equal(now) {
		return nil
	}
	return []Span{{Text: text, Time: t}}
}

// MultiDetector concatenates the spans of several detectors in order.
type MultiDetector []SpanDetector

// Detect implements SpanDetector.
func (m MultiDetector) Detect(text string, now time.Time) []Span {
	var out []Span
	for _, d := range m {
		out = append(out, d.Detect(text, now)...)
	}
	return out
}

// DefaultDetector is the detector the Resolver uses unless told otherwise.
func DefaultDetector() SpanDetector {
	return MultiDetector{NewWhenDetector(), NaturalDateDetector{}}
}

// detectSystemDates is the last deterministic resort. Every accepted span is
// labelled with the raw input, so at most one survives deduplication.
func detectSystemDates(d SpanDetector, raw string, now time.Time) []TimeSuggestion {
	label := strings.TrimSpace(raw)
	if d == nil || label == "" {
		return nil
	}
	var out []TimeSuggestion
	for _, span := range d.Detect(label, now) {
		if !span.Time.After(now) {
			continue
		}
		out = append(out, newSuggestion(label, span.Time, now))
	}
	return out
}

var (
	_ SpanDetector = (*WhenDetector)(nil)
	_ SpanDetector = NaturalDateDetector{}
	_ SpanDetector = MultiDetector(nil)
)
