package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenBucketExhaustion(t *testing.T) {
	bucket := NewTokenBucket(3, 1, time.Minute)

	for i := 0; i < 3; i++ {
		allowed, _ := bucket.Allow()
		assert.True(t, allowed, "request %d should pass", i)
	}

	allowed, wait := bucket.Allow()
	assert.False(t, allowed)
	assert.Greater(t, wait, time.Duration(0))
	assert.LessOrEqual(t, wait, time.Minute)
}

func TestTokenBucketRefill(t *testing.T) {
	bucket := NewTokenBucket(2, 2, 10*time.Millisecond)

	bucket.Allow()
	bucket.Allow()
	allowed, _ := bucket.Allow()
	assert.False(t, allowed)

	time.Sleep(15 * time.Millisecond)

	allowed, _ = bucket.Allow()
	assert.True(t, allowed)
}

func TestRateLimiterIsolatesUsersAndActions(t *testing.T) {
	limiter := NewRateLimiter()

	// Drain one user's proposal budget.
	for i := 0; i < 5; i++ {
		allowed, _ := limiter.Allow("user-a", "create_proposal")
		assert.True(t, allowed)
	}
	allowed, _ := limiter.Allow("user-a", "create_proposal")
	assert.False(t, allowed)

	// Other actions for the same user keep their own bucket.
	allowed, _ = limiter.Allow("user-a", "send_message")
	assert.True(t, allowed)

	// Other users are unaffected.
	allowed, _ = limiter.Allow("user-b", "create_proposal")
	assert.True(t, allowed)
}

func TestRateLimiterCleanup(t *testing.T) {
	limiter := NewRateLimiter()
	limiter.Allow("user-a", "send_message")

	limiter.mutex.Lock()
	for _, bucket := range limiter.buckets {
		bucket.lastRefill = time.Now().Add(-2 * time.Hour)
	}
	limiter.mutex.Unlock()

	limiter.Cleanup()

	limiter.mutex.RLock()
	defer limiter.mutex.RUnlock()
	assert.Empty(t, limiter.buckets)
}
