// Package timeout defines centralized timing constants for the AI time fallback.
package timeout

import "time"

const (
	// FallbackDebounce is how long input must stay unchanged before the AI
	// fallback is invoked.
	FallbackDebounce = 500 * time.Millisecond

	// ProviderTimeout bounds a single HTTP exchange with an LLM provider.
	// The resolver itself enforces no timeout; cancellation is its only early exit.
	ProviderTimeout = 30 * time.Second

	// AICacheTTL is how long an AI answer stays reusable for identical input.
	AICacheTTL = 2 * time.Minute

	// MaxTruncateLength is the maximum length for truncating strings in logs.
	MaxTruncateLength = 200
)
