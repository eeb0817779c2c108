package chathub_test

import (
	"testing"

	"pawlink/backend/internal/chathub"

	"github.com/stretchr/testify/assert"
)

func TestSenderLimiter_BurstThenThrottled(t *testing.T) {
	limiter := chathub.NewSenderLimiter(60, 3)
	defer limiter.Stop()

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Allow("user_A"), "send %d should be within burst", i)
	}
	assert.False(t, limiter.Allow("user_A"), "burst exhausted, send must be throttled")

	// Limits are per user.
	assert.True(t, limiter.Allow("user_B"))
}

func TestSenderLimiter_DefaultsWhenMisconfigured(t *testing.T) {
	limiter := chathub.NewSenderLimiter(0, 1)
	defer limiter.Stop()

	assert.True(t, limiter.Allow("user_A"))
}
