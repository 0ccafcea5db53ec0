package usecase

import "time"

const (
	// DefaultRecentActivityLimit is how many recent transactions the wallet
	// activity view shows when the caller does not say otherwise.
	DefaultRecentActivityLimit = 4

	// RecentActivityCacheTTL bounds staleness of the cached activity view.
	RecentActivityCacheTTL = 30 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour
)
