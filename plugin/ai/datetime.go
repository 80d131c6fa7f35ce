package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	aierrors "github.com/hrygo/remindat/internal/errors"
	"github.com/hrygo/remindat/internal/observability"
	"github.com/hrygo/remindat/plugin/ai/aitime"
	"github.com/hrygo/remindat/plugin/ai/timeout"
)

// DateTimeExtractor turns a natural language instruction into a calendar
// date and time with the help of an LLM.
type DateTimeExtractor struct {
	llm LLMService
}

// NewDateTimeExtractor creates a DateTimeExtractor.
func NewDateTimeExtractor(llm LLMService) *DateTimeExtractor {
	return &DateTimeExtractor{llm: llm}
}

// dateTimeAnswer is the structured answer requested from the LLM.
type dateTimeAnswer struct {
	Found  bool   `json:"found"`
	Label  string `json:"label"`
	Year   int    `json:"year"`
	Month  int    `json:"month"`
	Day    int    `json:"day"`
	Hour   int    `json:"hour"`
	Minute int    `json:"minute"`
}

// ExtractDateTime implements aitime.Capability.
func (e *DateTimeExtractor) ExtractDateTime(ctx context.Context, instruction string, now time.Time) (*aitime.ExtractedDateTime, error) {
	if strings.TrimSpace(instruction) == "" {
		return nil, aierrors.InvalidArgument("instruction is empty")
	}
	if e.llm == nil {
		return nil, aierrors.LLMUnavailable("no LLM service configured")
	}

	messages := []Message{
		SystemPrompt(buildDateTimePrompt(now)),
		UserMessage(instruction),
	}

	content, err := e.llm.ChatJSON(ctx, messages, dateTimeSchema)
	if err != nil {
		return nil, err
	}

	answer, err := parseDateTimeAnswer(content)
	if err != nil {
		attrs := []slog.Attr{
			slog.String("content", truncate(content, timeout.MaxTruncateLength)),
			slog.Int(observability.LogFieldInputLen, len(instruction)),
			slog.String("error", err.Error()),
		}
		if reqCtx, ok := observability.FromContext(ctx); ok {
			reqCtx.Warn("failed to parse date time answer", attrs...)
		} else {
			slog.LogAttrs(ctx, slog.LevelWarn, "failed to parse date time answer", attrs...)
		}
		return nil, err
	}
	if !answer.Found {
		return nil, aierrors.InvalidResponse("no date or time found")
	}

	return &aitime.ExtractedDateTime{
		Label:  strings.ToLower(strings.TrimSpace(answer.Label)),
		Year:   answer.Year,
		Month:  answer.Month,
		Day:    answer.Day,
		Hour:   answer.Hour,
		Minute: answer.Minute,
	}, nil
}

func buildDateTimePrompt(now time.Time) string {
	zone, offset := now.Zone()
	return fmt.Sprintf(dateTimeSystemPrompt,
		now.Format("Monday, 2006-01-02 15:04"),
		zone,
		offset/3600,
		now.Location().String())
}

// parseDateTimeAnswer decodes the answer, tolerating prose or code fences
// around the JSON object.
func parseDateTimeAnswer(content string) (*dateTimeAnswer, error) {
	var answer dateTimeAnswer
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &answer); err == nil {
		return &answer, nil
	}

	jsonText, ok := extractJSON(content)
	if !ok {
		return nil, aierrors.InvalidResponse("no valid JSON found in response")
	}
	if err := json.Unmarshal([]byte(jsonText), &answer); err != nil {
		return nil, aierrors.Wrap(err, aierrors.ErrCodeInvalidResponse, "malformed date time answer")
	}
	return &answer, nil
}

// extractJSON finds a JSON object in text that may contain explanatory prose.
func extractJSON(text string) (string, bool) {
	candidates := make([]string, 0, 3)
	if start := strings.Index(text, "```json"); start != -1 {
		start += len("```json")
		if end := strings.Index(text[start:], "```"); end != -1 {
			candidates = append(candidates, text[start:start+end])
		}
	}
	if start := strings.Index(text, "```"); start != -1 {
		start += len("```")
		if end := strings.Index(text[start:], "```"); end != -1 {
			candidates = append(candidates, text[start:start+end])
		}
	}
	if start := strings.Index(text, "{"); start != -1 {
		if end := strings.LastIndex(text, "}"); end > start {
			candidates = append(candidates, text[start:end+1])
		}
	}

	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if json.Valid([]byte(c)) && strings.HasPrefix(c, "{") {
			return c, true
		}
	}
	return "", false
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

const dateTimeSystemPrompt = `You resolve reminder times. The current local time is %s (%s, UTC%+d, %s).
Read the user's request and answer with one JSON object:
found: whether the request names a date or time
label: a short lowercase description such as "next friday at 3:00 pm"
year, month, day, hour (0-23), minute: the single future moment meant, in local time
When only a day is given use 09:00. Never answer with a moment in the past.`

var dateTimeSchema = &JSONSchema{
	Name: "reminder_time",
	Type: "object",
	Properties: map[string]*JSONSchema{
		"found":  {Type: "boolean", Description: "Whether the request names a date or time"},
		"label":  {Type: "string", Description: "Short lowercase description of the moment"},
		"year":   {Type: "integer", Description: "Four digit year"},
		"month":  {Type: "integer", Description: "Month 1-12"},
		"day":    {Type: "integer", Description: "Day of month 1-31"},
		"hour":   {Type: "integer", Description: "Hour 0-23"},
		"minute": {Type: "integer", Description: "Minute 0-59"},
	},
	Required:             []string{"found", "label", "year", "month", "day", "hour", "minute"},
	AdditionalProperties: false,
}

var _ aitime.Capability = (*DateTimeExtractor)(nil)
