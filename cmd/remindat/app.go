package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"github.com/hrygo/remindat/internal/profile"
	"github.com/hrygo/remindat/plugin/ai"
	"github.com/hrygo/remindat/plugin/ai/aitime"
	"github.com/hrygo/remindat/plugin/ai/cache"
	"github.com/hrygo/remindat/plugin/ai/ratelimit"
)

// newAIExtractor builds the AI fallback from the profile. It returns nil
// when no provider is configured.
func newAIExtractor(ctx context.Context, p *profile.Profile) (*aitime.AIExtractor, error) {
	cfg := ai.NewConfigFromProfile(p)
	if !cfg.Enabled {
		slog.Debug("AI fallback disabled", "provider", p.AIProvider)
		return nil, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid AI configuration")
	}

	llm, err := ai.NewLLMService(ctx, &cfg.LLM)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create LLM service")
	}

	cacheCfg := cache.DefaultServiceConfig()
	if cfg.CacheTTL > 0 {
		cacheCfg.DefaultTTL = cfg.CacheTTL
	}

	opts := []aitime.AIOption{
		aitime.WithProvider(cfg.LLM.Provider),
		aitime.WithRateLimiter(ratelimit.NewRateLimiter(cfg.RatePerMinute, cfg.Burst)),
	}
	if cfg.CacheTTL > 0 {
		opts = append(opts, aitime.WithCache(cache.NewService(cacheCfg), cfg.CacheTTL))
	}
	return aitime.NewAIExtractor(ai.NewDateTimeExtractor(llm), opts...), nil
}

// referenceNow parses an RFC 3339 instant, or returns the current time, in
// the profile's location.
func referenceNow(raw string, p *profile.Profile) (time.Time, error) {
	if raw == "" {
		return time.Now().In(p.Location()), nil
	}
	now, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "invalid --now %q", raw)
	}
	return now.In(p.Location()), nil
}
