package ai

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/pkg/errors"
	"google.golang.org/genai"

	aierrors "github.com/hrygo/remindat/internal/errors"
)

// geminiService answers through the Gemini API with a response schema.
type geminiService struct {
	client      *genai.Client
	model       string
	maxTokens   int32
	temperature float32
	timeout     time.Duration
}

func newGeminiService(ctx context.Context, cfg *LLMConfig) (*geminiService, error) {
	clientConfig := &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  cfg.APIKey,
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create genai client")
	}

	return &geminiService{
		client:      client,
		model:       strings.TrimPrefix(cfg.Model, "models/"),
		maxTokens:   int32(cfg.MaxTokens),
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout,
	}, nil
}

func (s *geminiService) ChatJSON(ctx context.Context, messages []Message, schema *JSONSchema) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	system, contents := geminiContents(messages)
	temperature := s.temperature
	genConfig := &genai.GenerateContentConfig{
		Temperature:       &temperature,
		MaxOutputTokens:   s.maxTokens,
		SystemInstruction: system,
		ResponseMIMEType:  "application/json",
		ResponseSchema:    toGenaiSchema(schema),
	}

	start := time.Now()
	resp, err := s.client.Models.GenerateContent(ctx, s.model, contents, genConfig)
	if err != nil {
		if ctxErr := aierrors.FromContext(err); ctxErr != nil {
			return "", ctxErr
		}
		return "", aierrors.Wrap(err, aierrors.ErrCodeLLMUnavailable, "gemini request failed")
	}

	text, err := geminiText(resp)
	if err != nil {
		return "", err
	}

	slog.Debug("LLM chat completed",
		"provider", "gemini",
		"model", s.model,
		"latency_ms", time.Since(start).Milliseconds())
	return text, nil
}

// geminiContents splits system messages into the system instruction.
func geminiContents(messages []Message) (*genai.Content, []*genai.Content) {
	var system *genai.Content
	contents := make([]*genai.Content, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case "system":
			if system == nil {
				system = &genai.Content{}
			}
			system.Parts = append(system.Parts, &genai.Part{Text: m.Content})
		case "assistant":
			contents = append(contents, &genai.Content{Role: "model", Parts: []*genai.Part{{Text: m.Content}}})
		default:
			contents = append(contents, &genai.Content{Role: "user", Parts: []*genai.Part{{Text: m.Content}}})
		}
	}
	return system, contents
}

func geminiText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", aierrors.InvalidResponse("empty response from Gemini API")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", aierrors.InvalidResponse("no content in Gemini response")
	}
	text := candidate.Content.Parts[0].Text
	if text == "" {
		return "", aierrors.InvalidResponse("empty text in Gemini response")
	}
	return text, nil
}

var genaiTypes = map[string]genai.Type{
	"object":  genai.TypeObject,
	"string":  genai.TypeString,
	"integer": genai.TypeInteger,
	"number":  genai.TypeNumber,
	"boolean": genai.TypeBoolean,
}

func toGenaiSchema(s *JSONSchema) *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Type:        genaiTypes[s.Type],
		Description: s.Description,
		Required:    s.Required,
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = toGenaiSchema(prop)
		}
		out.PropertyOrdering = s.Required
	}
	return out
}

var _ LLMService = (*geminiService)(nil)
