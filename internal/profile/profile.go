// Package profile loads runtime configuration through viper.
package profile

import (
	"log/slog"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. REMINDAT_AI_API_KEY.
const EnvPrefix = "REMINDAT"

// Configuration keys.
const (
	KeyMode            = "mode"
	KeyTimezone        = "timezone"
	KeyDebounce        = "resolver.debounce"
	KeyAIEnabled       = "ai.enabled"
	KeyAIProvider      = "ai.provider"
	KeyAIModel         = "ai.model"
	KeyAIAPIKey        = "ai.api_key"
	KeyAIBaseURL       = "ai.base_url"
	KeyAIMaxTokens     = "ai.max_tokens"
	KeyAITemperature   = "ai.temperature"
	KeyAIRatePerMinute = "ai.rate_per_minute"
	KeyAIBurst         = "ai.burst"
	KeyAICacheTTL      = "ai.cache_ttl"
	KeyAITimeout       = "ai.timeout"
)

// Supported AI providers.
const (
	ProviderOpenAI   = "openai"
	ProviderDeepSeek = "deepseek"
	ProviderOllama   = "ollama"
	ProviderGemini   = "gemini"
)

var providerDefaults = map[string]struct{ baseURL, model string }{
	ProviderOpenAI:   {"https://api.openai.com/v1", "gpt-4o-mini"},
	ProviderDeepSeek: {"https://api.deepseek.com", "deepseek-chat"},
	ProviderOllama:   {"http://localhost:11434/v1", "qwen2.5:7b"},
	ProviderGemini:   {"", "gemini-2.5-flash-lite"},
}

// Profile is the resolved runtime configuration.
type Profile struct {
	// Mode can be "prod" or "dev"
	Mode string
	// Timezone is an IANA name; empty means the local zone
	Timezone string
	// Debounce is the quiet period before the AI fallback runs
	Debounce time.Duration

	AIEnabled       bool
	AIProvider      string
	AIModel         string
	AIAPIKey        string
	AIBaseURL       string
	AIMaxTokens     int
	AITemperature   float32
	AIRatePerMinute int
	AIBurst         int
	AICacheTTL      time.Duration
	AITimeout       time.Duration

	location *time.Location
}

// NewViper returns a viper instance with defaults and environment binding.
// configFile may be empty.
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", configFile)
		}
	}
	return v, nil
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyMode, "prod")
	v.SetDefault(KeyTimezone, "")
	v.SetDefault(KeyDebounce, 500*time.Millisecond)
	v.SetDefault(KeyAIEnabled, false)
	v.SetDefault(KeyAIProvider, ProviderOpenAI)
	v.SetDefault(KeyAIModel, "")
	v.SetDefault(KeyAIAPIKey, "")
	v.SetDefault(KeyAIBaseURL, "")
	v.SetDefault(KeyAIMaxTokens, 256)
	v.SetDefault(KeyAITemperature, 0.0)
	v.SetDefault(KeyAIRatePerMinute, 30)
	v.SetDefault(KeyAIBurst, 5)
	v.SetDefault(KeyAICacheTTL, 2*time.Minute)
	v.SetDefault(KeyAITimeout, 30*time.Second)
}

// FromViper reads a Profile from v and validates it.
func FromViper(v *viper.Viper) (*Profile, error) {
	p := &Profile{
		Mode:            v.GetString(KeyMode),
		Timezone:        v.GetString(KeyTimezone),
		Debounce:        v.GetDuration(KeyDebounce),
		AIEnabled:       v.GetBool(KeyAIEnabled),
		AIProvider:      v.GetString(KeyAIProvider),
		AIModel:         v.GetString(KeyAIModel),
		AIAPIKey:        v.GetString(KeyAIAPIKey),
		AIBaseURL:       v.GetString(KeyAIBaseURL),
		AIMaxTokens:     v.GetInt(KeyAIMaxTokens),
		AITemperature:   float32(v.GetFloat64(KeyAITemperature)),
		AIRatePerMinute: v.GetInt(KeyAIRatePerMinute),
		AIBurst:         v.GetInt(KeyAIBurst),
		AICacheTTL:      v.GetDuration(KeyAICacheTTL),
		AITimeout:       v.GetDuration(KeyAITimeout),
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// IsAIEnabled returns true if AI is enabled and the provider can be reached
// with the configured credentials.
func (p *Profile) IsAIEnabled() bool {
	if !p.AIEnabled {
		return false
	}
	return p.AIProvider == ProviderOllama || p.AIAPIKey != ""
}

// Location returns the configured time zone, or time.Local.
func (p *Profile) Location() *time.Location {
	if p.location == nil {
		return time.Local
	}
	return p.location
}

// Validate normalises values and fills provider defaults.
func (p *Profile) Validate() error {
	if p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "prod"
	}

	p.location = nil
	if p.Timezone != "" {
		loc, err := time.LoadLocation(p.Timezone)
		if err != nil {
			return errors.Wrapf(err, "invalid timezone %q", p.Timezone)
		}
		p.location = loc
	}

	if p.Debounce <= 0 {
		p.Debounce = 500 * time.Millisecond
	}

	p.AIProvider = strings.ToLower(strings.TrimSpace(p.AIProvider))
	defaults, ok := providerDefaults[p.AIProvider]
	if !ok {
		return errors.Errorf("unsupported AI provider: %s", p.AIProvider)
	}
	if p.AIBaseURL == "" {
		p.AIBaseURL = defaults.baseURL
	}
	if p.AIModel == "" {
		p.AIModel = defaults.model
	}

	if p.AIMaxTokens <= 0 {
		p.AIMaxTokens = 256
	}
	if p.AITemperature < 0 || p.AITemperature > 2 {
		return errors.Errorf("AI temperature out of range: %v", p.AITemperature)
	}
	if p.AIRatePerMinute <= 0 {
		p.AIRatePerMinute = 30
	}
	if p.AIBurst <= 0 {
		p.AIBurst = 5
	}
	if p.AICacheTTL < 0 {
		p.AICacheTTL = 0
	}
	if p.AITimeout <= 0 {
		p.AITimeout = 30 * time.Second
	}

	if p.AIEnabled && !p.IsAIEnabled() {
		slog.Warn("AI fallback enabled without an API key; it will stay inactive",
			slog.String("provider", p.AIProvider))
	}
	return nil
}
