package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestContext_LogsBaseFields(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	reqCtx := NewRequestContextWithID(logger, "req-1", "openai")
	reqCtx.Warn("fallback failed", slog.String(LogFieldErrorCode, "TIMEOUT"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "fallback failed", record["msg"])
	assert.Equal(t, "req-1", record[LogFieldRequestID])
	assert.Equal(t, "openai", record[LogFieldProvider])
	assert.Equal(t, "TIMEOUT", record[LogFieldErrorCode])
}

func TestNewRequestContext_GeneratesID(t *testing.T) {
	a := NewRequestContext(nil, "gemini")
	b := NewRequestContext(nil, "gemini")

	assert.NotEmpty(t, a.RequestID)
	assert.NotEqual(t, a.RequestID, b.RequestID)
	assert.NotNil(t, a.Logger)
	assert.GreaterOrEqual(t, a.DurationMs(), int64(0))
}

func TestRequestContext_RoundTripsThroughContext(t *testing.T) {
	reqCtx := NewRequestContext(nil, "openai")
	ctx := WithRequestContext(context.Background(), reqCtx)

	got, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Same(t, reqCtx, got)

	_, ok = FromContext(context.Background())
	assert.False(t, ok)
}
