// Package ports defines shared interfaces for the ratelimit module.
package ports

import (
	"context"
	"time"

	"subguard/internal/audit"
	"subguard/internal/ratelimit/models"
)

// BucketStore manages sliding window rate limit counters. Keys are simple
// strings; validation happens at the boundary.
type BucketStore interface {
	// Allow checks if a single attempt is allowed and consumes one slot if so.
	// A rejected attempt never consumes a slot.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.RateLimitResult, error)

	// AllowN checks if 'cost' attempts are allowed and consumes that many slots if so.
	AllowN(ctx context.Context, key string, cost, limit int, window time.Duration) (*models.RateLimitResult, error)

	// Reset clears the rate limit counter for a key.
	Reset(ctx context.Context, key string) error

	// GetCurrentCount returns the current attempt count in the window.
	// Used for monitoring and admin display.
	GetCurrentCount(ctx context.Context, key string) (int, error)
}

// AuditLog is the slice of the audit trail the limiter needs: violation
// events only ever go one way.
type AuditLog interface {
	Append(ctx context.Context, event audit.Event) error
}
