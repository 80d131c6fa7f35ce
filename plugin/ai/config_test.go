package ai

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hrygo/remindat/internal/profile"
)

func TestNewConfigFromProfile(t *testing.T) {
	prof := &profile.Profile{
		AIEnabled:       true,
		AIProvider:      profile.ProviderDeepSeek,
		AIModel:         "deepseek-chat",
		AIAPIKey:        "deepseek-key",
		AIBaseURL:       "https://api.deepseek.com",
		AIMaxTokens:     256,
		AIRatePerMinute: 30,
		AIBurst:         5,
		AICacheTTL:      2 * time.Minute,
		AITimeout:       10 * time.Second,
	}

	cfg := NewConfigFromProfile(prof)

	assert.True(t, cfg.Enabled)
	assert.Equal(t, profile.ProviderDeepSeek, cfg.LLM.Provider)
	assert.Equal(t, "deepseek-chat", cfg.LLM.Model)
	assert.Equal(t, "deepseek-key", cfg.LLM.APIKey)
	assert.Equal(t, "https://api.deepseek.com", cfg.LLM.BaseURL)
	assert.Equal(t, 256, cfg.LLM.MaxTokens)
	assert.Equal(t, 10*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 30, cfg.RatePerMinute)
	assert.Equal(t, 5, cfg.Burst)
	assert.Equal(t, 2*time.Minute, cfg.CacheTTL)
	assert.NoError(t, cfg.Validate())
}

func TestNewConfigFromProfile_Disabled(t *testing.T) {
	cfg := NewConfigFromProfile(&profile.Profile{AIEnabled: true, AIProvider: profile.ProviderOpenAI})

	assert.False(t, cfg.Enabled, "missing API key disables AI")
	assert.Empty(t, cfg.LLM.Provider)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"missing provider", Config{Enabled: true}, true},
		{"missing key", Config{Enabled: true, LLM: LLMConfig{Provider: "openai", Model: "m"}}, true},
		{"ollama without key", Config{Enabled: true, LLM: LLMConfig{Provider: "ollama", Model: "m"}}, false},
		{"missing model", Config{Enabled: true, LLM: LLMConfig{Provider: "openai", APIKey: "k"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
