package aitime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	aierrors "github.com/hrygo/remindat/internal/errors"
	"github.com/hrygo/remindat/internal/observability"
	"github.com/hrygo/remindat/plugin/ai/cache"
	"github.com/hrygo/remindat/plugin/ai/ratelimit"
	"github.com/hrygo/remindat/plugin/ai/timeout"
)

// AIExtractor asks an external extraction capability for a single
// suggestion when the rules found nothing. It never retries and never
// surfaces an error: unavailability, failure and cancellation all mean
// "no suggestion". Identical concurrent requests share one capability call,
// which is cancelled only when all of their callers have cancelled.
type AIExtractor struct {
	capability Capability
	provider   string
	cache      cache.CacheService
	cacheTTL   time.Duration
	limiter    *ratelimit.RateLimiter
	logger     *slog.Logger

	group singleflight.Group

	mu      sync.Mutex
	flights map[string]*flight
}

// flight is the shared capability call for one cache key. It is cancelled
// once every caller waiting on it has gone away.
type flight struct {
	ctx     context.Context
	cancel  context.CancelFunc
	waiters int
}

// AIOption configures an AIExtractor.
type AIOption func(*AIExtractor)

// WithProvider names the capability in logs and cache keys.
func WithProvider(name string) AIOption {
	return func(a *AIExtractor) { a.provider = name }
}

// WithCache memoises answers for identical text within the same minute.
func WithCache(c cache.CacheService, ttl time.Duration) AIOption {
	return func(a *AIExtractor) {
		a.cache = c
		if ttl > 0 {
			a.cacheTTL = ttl
		}
	}
}

// WithRateLimiter throttles calls per provider. Throttled calls yield nothing.
func WithRateLimiter(l *ratelimit.RateLimiter) AIOption {
	return func(a *AIExtractor) { a.limiter = l }
}

// WithAILogger sets the logger. Defaults to slog.Default().
func WithAILogger(l *slog.Logger) AIOption {
	return func(a *AIExtractor) { a.logger = l }
}

// NewAIExtractor wraps capability. A nil capability is allowed and always
// yields no suggestion.
func NewAIExtractor(capability Capability, opts ...AIOption) *AIExtractor {
	a := &AIExtractor{
		capability: capability,
		provider:   "default",
		cacheTTL:   timeout.AICacheTTL,
		logger:     slog.Default(),
		flights:    make(map[string]*flight),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ResolveWithAI returns at most one AI generated suggestion for text.
func (a *AIExtractor) ResolveWithAI(ctx context.Context, text string, now time.Time) *TimeSuggestion {
	text = strings.TrimSpace(text)
	if text == "" || a.capability == nil {
		return nil
	}

	reqCtx := observability.NewRequestContext(a.logger, a.provider)
	key := a.cacheKey(text, now)

	if s, ok := a.fromCache(ctx, key, text, now); ok {
		reqCtx.Debug("AI time fallback served from cache", slog.String("label", s.Label))
		return s
	}

	if a.limiter != nil && !a.limiter.Allow(a.provider) {
		a.logFailure(reqCtx, aierrors.RateLimitExceeded("AI time fallback throttled"))
		return nil
	}

	callCtx, release := a.join(observability.WithRequestContext(ctx, reqCtx), key)
	defer release()
	ch := a.group.DoChan(key, func() (any, error) {
		return a.capability.ExtractDateTime(callCtx, instructionFor(text), now)
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		a.logFailure(reqCtx, aierrors.ContextCanceled(ctx.Err()))
		return nil
	}
	if ctx.Err() != nil {
		a.logFailure(reqCtx, aierrors.ContextCanceled(ctx.Err()))
		return nil
	}
	if res.Err != nil {
		if ctxErr := aierrors.FromContext(res.Err); ctxErr != nil {
			a.logFailure(reqCtx, ctxErr)
		} else {
			a.logFailure(reqCtx, res.Err)
		}
		return nil
	}

	extracted, ok := res.Val.(*ExtractedDateTime)
	if !ok || extracted == nil {
		a.logFailure(reqCtx, aierrors.LLMUnavailable("capability returned no answer"))
		return nil
	}
	s, err := suggestionFromExtracted(extracted, text, now)
	if err != nil {
		a.logFailure(reqCtx, err)
		return nil
	}
	a.toCache(ctx, key, extracted)

	reqCtx.Info("AI time fallback produced a suggestion",
		slog.String("label", s.Label),
		slog.Int64(observability.LogFieldDuration, reqCtx.DurationMs()))
	return s
}

// Extract implements DateExtractor with zero or one suggestion and a nil error.
func (a *AIExtractor) Extract(ctx context.Context, text string, now time.Time) ([]TimeSuggestion, error) {
	if s := a.ResolveWithAI(ctx, text, now); s != nil {
		return []TimeSuggestion{*s}, nil
	}
	return nil, nil
}

// join registers a caller of the shared call for key and returns the context
// that call runs on. The context outlives any single caller; release drops
// the caller and cancels the call when nobody is left waiting.
func (a *AIExtractor) join(ctx context.Context, key string) (context.Context, func()) {
	a.mu.Lock()
	defer a.mu.Unlock()

	f, ok := a.flights[key]
	if !ok {
		callCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		f = &flight{ctx: callCtx, cancel: cancel}
		a.flights[key] = f
	}
	f.waiters++

	return f.ctx, func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		f.waiters--
		if f.waiters > 0 {
			return
		}
		f.cancel()
		if a.flights[key] == f {
			delete(a.flights, key)
			a.group.Forget(key)
		}
	}
}

func (a *AIExtractor) logFailure(reqCtx *observability.RequestContext, err error) {
	code := aierrors.GetCodeFromError(err, aierrors.ErrCodeLLMUnavailable)
	reqCtx.Warn("AI time fallback yielded nothing",
		slog.String(observability.LogFieldErrorCode, string(code)),
		slog.String("error", err.Error()),
		slog.Int64(observability.LogFieldDuration, reqCtx.DurationMs()))
}

func (a *AIExtractor) cacheKey(text string, now time.Time) string {
	return fmt.Sprintf("aitime:%s:%d:%s", a.provider, now.Truncate(time.Minute).Unix(), normalize(text))
}

func (a *AIExtractor) fromCache(ctx context.Context, key, text string, now time.Time) (*TimeSuggestion, bool) {
	if a.cache == nil {
		return nil, false
	}
	data, ok := a.cache.Get(ctx, key)
	if !ok {
		return nil, false
	}
	var extracted ExtractedDateTime
	if err := json.Unmarshal(data, &extracted); err != nil {
		return nil, false
	}
	s, err := suggestionFromExtracted(&extracted, text, now)
	if err != nil {
		return nil, false
	}
	return s, true
}

func (a *AIExtractor) toCache(ctx context.Context, key string, extracted *ExtractedDateTime) {
	if a.cache == nil {
		return
	}
	data, err := json.Marshal(extracted)
	if err != nil {
		return
	}
	if err := a.cache.Set(ctx, key, data, a.cacheTTL); err != nil {
		a.logger.Debug("failed to cache AI time answer", "error", err)
	}
}

// suggestionFromExtracted validates the capability's answer in now's location.
func suggestionFromExtracted(e *ExtractedDateTime, text string, now time.Time) (*TimeSuggestion, error) {
	if e == nil {
		return nil, aierrors.InvalidResponse("empty extraction result")
	}
	if e.Month < 1 || e.Month > 12 || e.Day < 1 || e.Day > 31 ||
		e.Hour < 0 || e.Hour > 23 || e.Minute < 0 || e.Minute > 59 {
		return nil, aierrors.InvalidResponse(fmt.Sprintf("field out of range: %+v", *e))
	}
	ts := time.Date(e.Year, time.Month(e.Month), e.Day, e.Hour, e.Minute, 0, 0, now.Location())
	if ts.Day() != e.Day {
		return nil, aierrors.InvalidResponse(fmt.Sprintf("no such date: %04d-%02d-%02d", e.Year, e.Month, e.Day))
	}
	if !ts.After(now) {
		return nil, aierrors.InvalidResponse("extracted time is not in the future")
	}

	label := strings.TrimSpace(e.Label)
	if label == "" {
		label = text
	}
	s := newSuggestion(label, ts, now)
	s.IsAIGenerated = true
	return &s, nil
}

// instructionFor is the natural language request handed to the capability.
func instructionFor(text string) string {
	return fmt.Sprintf("Extract the single future date and time the user means by: %q. "+
		"Give a short lowercase label describing it.", text)
}

var _ DateExtractor = (*AIExtractor)(nil)
