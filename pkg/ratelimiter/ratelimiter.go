package ratelimiter

import (
	"context"
	"fmt"
	"os"
	"time"

	"anoa.com/careerhub/pkg/apperror"
	"github.com/redis/go-redis/v9"
)

type RateLimitError struct {
	Message    string
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return e.Message
}

func (e *RateLimitError) Unwrap() error {
	return apperror.ErrRateLimitExceeded
}

func key(subject, action string) string {
	return fmt.Sprintf("rate_limit:%s:%s", subject, action)
}

// CheckAndSetRateLimit reports whether the action is allowed and, if so, starts its cooldown.
// A nil client disables limiting.
func CheckAndSetRateLimit(ctx context.Context, rdb *redis.Client, subject, action string, limit time.Duration) (bool, error) {
	if rdb == nil || limit <= 0 {
		return true, nil
	}

	wasSet, err := rdb.SetNX(ctx, key(subject, action), "locked", limit).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit in redis: %w", err)
	}

	return wasSet, nil
}

func GetRateLimitTTL(ctx context.Context, rdb *redis.Client, subject, action string) (time.Duration, error) {
	if rdb == nil {
		return 0, nil
	}
	return rdb.TTL(ctx, key(subject, action)).Result()
}

func ClearRateLimit(ctx context.Context, rdb *redis.Client, subject, action string) error {
	if rdb == nil {
		return nil
	}
	_, err := rdb.Del(ctx, key(subject, action)).Result()
	return err
}

// Enforce wraps CheckAndSetRateLimit and turns a denial into a *RateLimitError.
func Enforce(ctx context.Context, rdb *redis.Client, subject, action string, limit time.Duration) error {
	allowed, err := CheckAndSetRateLimit(ctx, rdb, subject, action, limit)
	if err != nil {
		return err
	}
	if allowed {
		return nil
	}

	ttl, _ := GetRateLimitTTL(ctx, rdb, subject, action)
	if ttl < 0 {
		ttl = limit
	}
	return &RateLimitError{
		Message:    fmt.Sprintf("You are doing that too fast. Please wait %.0f seconds.", ttl.Seconds()),
		RetryAfter: ttl,
	}
}

func GetDurationFromEnv(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}
