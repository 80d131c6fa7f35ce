package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Burst(t *testing.T) {
	rl := NewRateLimiter(1, 3)

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("openai"), "request %d within burst", i)
	}
	assert.False(t, rl.Allow("openai"))
}

func TestRateLimiter_KeysAreIndependent(t *testing.T) {
	rl := NewRateLimiter(1, 1)

	assert.True(t, rl.Allow("openai"))
	assert.False(t, rl.Allow("openai"))
	assert.True(t, rl.Allow("gemini"))
}

func TestRateLimiter_Defaults(t *testing.T) {
	rl := NewRateLimiter(0, 0)

	assert.Equal(t, time.Minute/DefaultPerMinute, rl.every)
	assert.Equal(t, DefaultBurst, rl.burst)
}
