package repositories

import "context"

type StatsRepository interface {
	// GetPlatformStats aggregates the admin dashboard counters. Revenue sums
	// completed enrollments only.
	GetPlatformStats(ctx context.Context) (*PlatformStats, error)
}
