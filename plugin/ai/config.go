package ai

import (
	"time"

	"github.com/pkg/errors"

	"github.com/hrygo/remindat/internal/profile"
)

// Config represents AI configuration.
type Config struct {
	Enabled bool

	LLM LLMConfig

	RatePerMinute int
	Burst         int
	CacheTTL      time.Duration
}

// LLMConfig represents LLM configuration.
type LLMConfig struct {
	Provider    string // openai, deepseek, ollama, gemini
	Model       string // gpt-4o-mini
	APIKey      string
	BaseURL     string
	MaxTokens   int           // default: 256
	Temperature float32       // default: 0
	Timeout     time.Duration // per request
}

// NewConfigFromProfile creates AI config from profile.
func NewConfigFromProfile(p *profile.Profile) *Config {
	cfg := &Config{
		Enabled: p.IsAIEnabled(),
	}

	if !cfg.Enabled {
		return cfg
	}

	cfg.LLM = LLMConfig{
		Provider:    p.AIProvider,
		Model:       p.AIModel,
		APIKey:      p.AIAPIKey,
		BaseURL:     p.AIBaseURL,
		MaxTokens:   p.AIMaxTokens,
		Temperature: p.AITemperature,
		Timeout:     p.AITimeout,
	}
	cfg.RatePerMinute = p.AIRatePerMinute
	cfg.Burst = p.AIBurst
	cfg.CacheTTL = p.AICacheTTL

	return cfg
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}

	if c.LLM.Provider == "" {
		return errors.New("LLM provider is required")
	}

	if c.LLM.Provider != profile.ProviderOllama && c.LLM.APIKey == "" {
		return errors.New("LLM API key is required")
	}

	if c.LLM.Model == "" {
		return errors.New("LLM model is required")
	}

	return nil
}
