package ratelimiter

import (
	"context"
	"testing"
	"time"

	"anoa.com/careerhub/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilClientAllowsEverything(t *testing.T) {
	ctx := context.Background()

	allowed, err := CheckAndSetRateLimit(ctx, nil, "127.0.0.1", "signup", 5*time.Second)
	require.NoError(t, err)
	assert.True(t, allowed)

	assert.NoError(t, Enforce(ctx, nil, "127.0.0.1", "signup", 5*time.Second))
	assert.NoError(t, ClearRateLimit(ctx, nil, "127.0.0.1", "signup"))
}

func TestRateLimitErrorUnwrap(t *testing.T) {
	err := &RateLimitError{Message: "slow down", RetryAfter: 3 * time.Second}
	assert.ErrorIs(t, err, apperror.ErrRateLimitExceeded)
	assert.Equal(t, "slow down", err.Error())
}

func TestGetDurationFromEnv(t *testing.T) {
	t.Setenv("RATE_LIMIT_TEST", "2s")
	assert.Equal(t, 2*time.Second, GetDurationFromEnv("RATE_LIMIT_TEST", time.Minute))

	t.Setenv("RATE_LIMIT_TEST", "garbage")
	assert.Equal(t, time.Minute, GetDurationFromEnv("RATE_LIMIT_TEST", time.Minute))
}
