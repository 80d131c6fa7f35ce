package aitime

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"
)

var (
	somedayHours   = []int{9, 10, 11, 12, 14, 15, 16, 17, 18, 19, 20}
	somedayMinutes = []int{0, 15, 30, 45}
)

const (
	somedayMinDays = 4
	somedayMaxDays = 30
)

// ruleParser is one deterministic rule. It receives both the filler-free
// tokens and their space-joined form.
type ruleParser func(tokens []string, joined string, now time.Time) []TimeSuggestion

// ruleParsers run in this order; composite readings come first so they win
// label collisions.
var ruleParsers = []ruleParser{
	func(t []string, _ string, now time.Time) []TimeSuggestion { return parseComposite(t, now) },
	func(t []string, _ string, now time.Time) []TimeSuggestion { return parseBareNumber(t, now) },
	func(t []string, _ string, now time.Time) []TimeSuggestion { return parseClockTime(t, now) },
	func(_ []string, j string, now time.Time) []TimeSuggestion { return parseKeywords(j, now) },
	func(t []string, _ string, now time.Time) []TimeSuggestion { return parseDuration(t, now) },
	func(t []string, _ string, now time.Time) []TimeSuggestion { return parseWeekday(t, now) },
}

// Resolver is the deterministic DateExtractor. It holds no mutable state and
// is safe for concurrent use.
type Resolver struct {
	detector SpanDetector
	pick     func(n int) int
	logger   *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithDetector replaces the system date phrase detector. nil disables it.
func WithDetector(d SpanDetector) Option {
	return func(r *Resolver) { r.detector = d }
}

// WithPicker replaces the random source behind the "someday" default.
// pick(n) must return a value in [0, n).
func WithPicker(pick func(n int) int) Option {
	return func(r *Resolver) { r.pick = pick }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) { r.logger = l }
}

// NewResolver creates a Resolver.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		detector: DefaultDetector(),
		pick:     rand.IntN,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns up to MaxSuggestions ranked suggestions for text. Blank
// text yields the default set instead.
func (r *Resolver) Resolve(text string, now time.Time) []TimeSuggestion {
	if normalize(text) == "" {
		return DefaultSuggestions(now, r.pick)
	}

	tokens := tokenize(text)
	joined := strings.Join(tokens, " ")

	var all []TimeSuggestion
	for _, parse := range ruleParsers {
		all = append(all, parse(tokens, joined, now)...)
	}
	out := aggregate(all, now)

	fallback := false
	if len(out) == 0 {
		fallback = true
		out = aggregate(detectSystemDates(r.detector, text, now), now)
	}

	r.logger.Debug("resolved time suggestions",
		"input_length", len(text),
		"tokens", len(tokens),
		"results", len(out),
		"system_fallback", fallback)
	return out
}

// Extract implements DateExtractor. It never fails.
func (r *Resolver) Extract(_ context.Context, text string, now time.Time) ([]TimeSuggestion, error) {
	return r.Resolve(text, now), nil
}

// aggregate drops past candidates, keeps the first suggestion per label and
// caps the result at MaxSuggestions.
func aggregate(candidates []TimeSuggestion, now time.Time) []TimeSuggestion {
	seen := make(map[string]bool, len(candidates))
	out := make([]TimeSuggestion, 0, min(len(candidates), MaxSuggestions))
	for _, s := range candidates {
		if len(out) == MaxSuggestions {
			break
		}
		if seen[s.Label] {
			continue
		}
		if !s.IsNeverDeliver && !s.Timestamp.After(now) {
			continue
		}
		seen[s.Label] = true
		out = append(out, s)
	}
	return out
}

// DefaultSuggestions is the fixed set offered for empty input. It has seven
// entries and is never truncated; "never" is always last.
func DefaultSuggestions(now time.Time, pick func(n int) int) []TimeSuggestion {
	if pick == nil {
		pick = rand.IntN
	}
	tonight, _ := nextClock(21, 0)(now)
	tomorrow, _ := tomorrowAt(9)(now)
	weekend, _ := thisWeekend(now)

	return []TimeSuggestion{
		newSuggestion("in 1 hour", now.Add(time.Hour), now),
		newSuggestion("in 3 hours", now.Add(3*time.Hour), now),
		newSuggestion("tonight", tonight, now),
		newSuggestion("tomorrow", tomorrow, now),
		newSuggestion("this weekend", weekend, now),
		newSuggestion("someday", someday(now, pick), now),
		neverSuggestion(now),
	}
}

// someday picks a day 4 to 30 days out at a plausible waking hour.
func someday(now time.Time, pick func(n int) int) time.Time {
	days := somedayMinDays + pick(somedayMaxDays-somedayMinDays+1)
	hour := somedayHours[pick(len(somedayHours))]
	minute := somedayMinutes[pick(len(somedayMinutes))]
	return atClock(startOfDay(now).AddDate(0, 0, days), hour, minute)
}

var _ DateExtractor = (*Resolver)(nil)
