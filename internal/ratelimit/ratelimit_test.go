package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestConfig implements the Config interface for testing
type TestConfig struct {
	DisableRateLimit bool
}

func (c *TestConfig) GetDisableRateLimit() bool {
	return c.DisableRateLimit
}

func TestCheckReanalysisRateLimit_Disabled(t *testing.T) {
	cfg := &TestConfig{DisableRateLimit: true}

	// Even with a recent run, should not block when disabled
	recentRun := time.Now().Add(-1 * time.Minute)
	result := CheckReanalysisRateLimit(cfg, &recentRun, false)

	assert.False(t, result.ShouldBlock)
	assert.Equal(t, "rate_limiting_disabled", result.Reason)
}

func TestCheckReanalysisRateLimit_Enabled(t *testing.T) {
	cfg := &TestConfig{DisableRateLimit: false}
	now := time.Now()

	t.Run("RecentRun", func(t *testing.T) {
		recentRun := now.Add(-2 * time.Minute)
		result := CheckReanalysisRateLimit(cfg, &recentRun, false)

		assert.True(t, result.ShouldBlock)
		assert.Equal(t, "rate_limit_active", result.Reason)
		assert.Greater(t, result.RemainingTime, time.Duration(0))
	})

	t.Run("OldRun", func(t *testing.T) {
		oldRun := now.Add(-6 * time.Minute)
		result := CheckReanalysisRateLimit(cfg, &oldRun, false)

		assert.False(t, result.ShouldBlock)
		assert.Equal(t, "rate_limit_passed", result.Reason)
	})

	t.Run("NeverRun", func(t *testing.T) {
		result := CheckReanalysisRateLimit(cfg, nil, false)

		assert.False(t, result.ShouldBlock)
		assert.Equal(t, "no_previous_reanalysis", result.Reason)
	})

	t.Run("Forced", func(t *testing.T) {
		recentRun := now.Add(-1 * time.Minute)
		result := CheckReanalysisRateLimit(cfg, &recentRun, true)

		assert.False(t, result.ShouldBlock)
		assert.Equal(t, "forced_reanalysis", result.Reason)
	})
}

func TestRateLimitRemainingTime(t *testing.T) {
	cfg := &TestConfig{DisableRateLimit: false}

	now := time.Now()
	lastRun := now.Add(-3 * time.Minute)

	result := CheckReanalysisRateLimit(cfg, &lastRun, false)
	assert.True(t, result.ShouldBlock)

	expectedRemaining := 2 * time.Minute
	assert.InDelta(t, expectedRemaining.Seconds(), result.RemainingTime.Seconds(), 5)
}
