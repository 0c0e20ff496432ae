package ratelimit

import (
	"time"
)

// Config interface for rate limiting configuration
type Config interface {
	GetDisableRateLimit() bool
}

// RateLimitResult contains the result of a rate limit check
type RateLimitResult struct {
	ShouldBlock   bool
	RemainingTime time.Duration
	Reason        string
}

// CheckReanalysisRateLimit checks if a reanalysis should be rate limited.
// This function is used by both manual reanalysis (handlers) and the
// background worker, so the cooldown behaves the same on either path.
func CheckReanalysisRateLimit(cfg Config, lastReanalyzedAt *time.Time, isForced bool) RateLimitResult {
	// Never rate limit if rate limiting is disabled
	if cfg.GetDisableRateLimit() {
		return RateLimitResult{
			ShouldBlock: false,
			Reason:      "rate_limiting_disabled",
		}
	}

	// Never rate limit forced reanalysis
	if isForced {
		return RateLimitResult{
			ShouldBlock: false,
			Reason:      "forced_reanalysis",
		}
	}

	// Never rate limit an analysis that has not been reprocessed yet
	if lastReanalyzedAt == nil {
		return RateLimitResult{
			ShouldBlock: false,
			Reason:      "no_previous_reanalysis",
		}
	}

	// Use a consistent 5-minute cooldown for manual and background runs
	rateLimit := GetRateLimitDuration()
	timeSinceLastRun := time.Since(*lastReanalyzedAt)

	if timeSinceLastRun < rateLimit {
		remainingTime := rateLimit - timeSinceLastRun
		return RateLimitResult{
			ShouldBlock:   true,
			RemainingTime: remainingTime,
			Reason:        "rate_limit_active",
		}
	}

	return RateLimitResult{
		ShouldBlock: false,
		Reason:      "rate_limit_passed",
	}
}

// GetRateLimitDuration returns the cooldown between reanalysis runs
func GetRateLimitDuration() time.Duration {
	return 5 * time.Minute
}
