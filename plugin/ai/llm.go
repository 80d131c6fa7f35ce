package ai

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sashabaranov/go-openai"

	aierrors "github.com/hrygo/remindat/internal/errors"
	"github.com/hrygo/remindat/internal/profile"
)

// Message represents a chat message.
type Message struct {
	Role    string // system, user, assistant
	Content string
}

// LLMService is the LLM service interface.
type LLMService interface {
	// ChatJSON performs a synchronous chat whose answer must be a JSON
	// object matching schema. It returns the raw answer text.
	ChatJSON(ctx context.Context, messages []Message, schema *JSONSchema) (string, error)
}

// JSONSchema is the subset of JSON Schema used for structured answers.
type JSONSchema struct {
	Type                 string                 `json:"type"`
	Properties           map[string]*JSONSchema `json:"properties,omitempty"`
	Required             []string               `json:"required,omitempty"`
	Description          string                 `json:"description,omitempty"`
	AdditionalProperties bool                   `json:"additionalProperties"`

	// Name identifies the schema to providers that require one.
	Name string `json:"-"`
}

func (s *JSONSchema) MarshalJSON() ([]byte, error) {
	type alias JSONSchema
	return json.Marshal((*alias)(s))
}

// NewLLMService creates the LLMService for cfg.Provider.
func NewLLMService(ctx context.Context, cfg *LLMConfig) (LLMService, error) {
	switch cfg.Provider {
	case profile.ProviderOpenAI, profile.ProviderDeepSeek, profile.ProviderOllama:
		return newOpenAIService(cfg), nil
	case profile.ProviderGemini:
		return newGeminiService(ctx, cfg)
	default:
		return nil, errors.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}

// openAIService talks to OpenAI and OpenAI-compatible endpoints
// (DeepSeek, Ollama's /v1 API).
type openAIService struct {
	client      *openai.Client
	provider    string
	model       string
	maxTokens   int
	temperature float32
}

func newOpenAIService(cfg *LLMConfig) *openAIService {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		clientConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &openAIService{
		client:      openai.NewClientWithConfig(clientConfig),
		provider:    cfg.Provider,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
	}
}

func (s *openAIService) ChatJSON(ctx context.Context, messages []Message, schema *JSONSchema) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:          s.model,
		MaxTokens:      s.maxTokens,
		Temperature:    s.temperature,
		Messages:       convertMessages(messages),
		ResponseFormat: s.responseFormat(schema),
	}

	start := time.Now()
	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", classifyError(err)
	}
	if len(resp.Choices) == 0 {
		return "", aierrors.InvalidResponse("empty chat response")
	}

	slog.Debug("LLM chat completed",
		"provider", s.provider,
		"model", s.model,
		"latency_ms", time.Since(start).Milliseconds(),
		"tokens", resp.Usage.TotalTokens)

	return resp.Choices[0].Message.Content, nil
}

// responseFormat uses strict JSON schema mode where the provider supports it
// and plain JSON object mode elsewhere.
func (s *openAIService) responseFormat(schema *JSONSchema) *openai.ChatCompletionResponseFormat {
	if schema == nil || s.provider != profile.ProviderOpenAI {
		return &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject}
	}
	name := schema.Name
	if name == "" {
		name = "response"
	}
	return &openai.ChatCompletionResponseFormat{
		Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
		JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
			Name:   name,
			Strict: true,
			Schema: schema,
		},
	}
}

func convertMessages(messages []Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		role := openai.ChatMessageRoleUser
		switch m.Role {
		case "system":
			role = openai.ChatMessageRoleSystem
		case "assistant":
			role = openai.ChatMessageRoleAssistant
		}
		out[i] = openai.ChatCompletionMessage{Role: role, Content: m.Content}
	}
	return out
}

// classifyError maps transport and API failures onto error codes.
func classifyError(err error) error {
	if ctxErr := aierrors.FromContext(err); ctxErr != nil {
		return ctxErr
	}

	status := 0
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return aierrors.Wrap(err, aierrors.ErrCodeUnauthorized, "provider rejected credentials")
	case status == http.StatusTooManyRequests:
		return aierrors.Wrap(err, aierrors.ErrCodeRateLimitExceeded, "provider rate limit reached")
	case strings.Contains(strings.ToLower(err.Error()), "timeout"):
		return aierrors.Wrap(err, aierrors.ErrCodeTimeout, "provider timed out")
	}
	return aierrors.Wrap(err, aierrors.ErrCodeLLMUnavailable, "chat completion failed")
}

// SystemPrompt creates a system message.
func SystemPrompt(content string) Message {
	return Message{Role: "system", Content: content}
}

// UserMessage creates a user message.
func UserMessage(content string) Message {
	return Message{Role: "user", Content: content}
}

var _ LLMService = (*openAIService)(nil)
