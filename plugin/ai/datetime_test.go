package ai

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	aierrors "github.com/hrygo/remindat/internal/errors"
)

var testNow = time.Date(2026, 3, 12, 14, 5, 0, 0, time.UTC)

func TestDateTimeExtractor_ExtractDateTime(t *testing.T) {
	llm := NewMockLLMService(`{"found":true,"label":"Next Friday at 3:00 PM","year":2026,"month":3,"day":20,"hour":15,"minute":0}`)
	e := NewDateTimeExtractor(llm)

	got, err := e.ExtractDateTime(context.Background(), "friday after next at three", testNow)
	require.NoError(t, err)

	assert.Equal(t, "next friday at 3:00 pm", got.Label)
	assert.Equal(t, 2026, got.Year)
	assert.Equal(t, 3, got.Month)
	assert.Equal(t, 20, got.Day)
	assert.Equal(t, 15, got.Hour)
	assert.Equal(t, 0, got.Minute)

	calls := llm.Calls()
	require.Len(t, calls, 1)
	require.Len(t, calls[0], 2)
	assert.Equal(t, "system", calls[0][0].Role)
	assert.Contains(t, calls[0][0].Content, "Thursday, 2026-03-12 14:05")
	assert.Equal(t, "friday after next at three", calls[0][1].Content)
}

func TestDateTimeExtractor_NotFound(t *testing.T) {
	e := NewDateTimeExtractor(NewMockLLMService(`{"found":false,"label":"","year":0,"month":0,"day":0,"hour":0,"minute":0}`))

	_, err := e.ExtractDateTime(context.Background(), "buy milk", testNow)
	assert.Equal(t, aierrors.ErrCodeInvalidResponse, aierrors.GetCodeFromError(err, ""))
}

func TestDateTimeExtractor_EmptyInstruction(t *testing.T) {
	llm := NewMockLLMService("{}")
	e := NewDateTimeExtractor(llm)

	_, err := e.ExtractDateTime(context.Background(), "  ", testNow)
	assert.Equal(t, aierrors.ErrCodeInvalidArgument, aierrors.GetCodeFromError(err, ""))
	assert.Empty(t, llm.Calls())
}

func TestDateTimeExtractor_PropagatesLLMError(t *testing.T) {
	llm := NewMockLLMService("")
	llm.Err = aierrors.LLMUnavailable("down")
	e := NewDateTimeExtractor(llm)

	_, err := e.ExtractDateTime(context.Background(), "soon", testNow)
	assert.Equal(t, aierrors.ErrCodeLLMUnavailable, aierrors.GetCodeFromError(err, ""))
}

func TestParseDateTimeAnswer(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantDay int
		wantErr bool
	}{
		{"plain", `{"found":true,"day":4}`, 4, false},
		{"fenced", "Sure:\n```json\n{\"found\":true,\"day\":5}\n```", 5, false},
		{"bare fence", "```\n{\"found\":true,\"day\":6}\n```", 6, false},
		{"prose", `The answer is {"found":true,"day":7} as requested.`, 7, false},
		{"garbage", "no idea", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDateTimeAnswer(tt.content)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Found)
			assert.Equal(t, tt.wantDay, got.Day)
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab...", truncate("abcdef", 2))
}

func TestDateTimeExtractor_NoLLM(t *testing.T) {
	e := NewDateTimeExtractor(nil)

	_, err := e.ExtractDateTime(context.Background(), "soon", testNow)
	assert.Equal(t, aierrors.ErrCodeLLMUnavailable, aierrors.GetCodeFromError(err, ""))
}
