// Package service implements rate limiting for provisioning attempts.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	dErrors "subguard/pkg/domain-errors"
	id "subguard/pkg/domain"
	"subguard/pkg/platform/privacy"

	"subguard/internal/audit"
	"subguard/internal/ratelimit/metrics"
	"subguard/internal/ratelimit/models"
	"subguard/internal/ratelimit/ports"
)

const (
	// DefaultAttempts is the number of provisioning attempts allowed per
	// client within one window.
	DefaultAttempts = 5

	// DefaultWindow is the sliding window length.
	DefaultWindow = time.Hour
)

// Limiter enforces the per-client provisioning attempt budget. Every
// rejection is recorded on the audit trail before the caller sees it.
type Limiter struct {
	buckets  ports.BucketStore
	auditLog ports.AuditLog
	logger   *slog.Logger
	metrics  *metrics.Metrics
	attempts int
	window   time.Duration
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Limiter) { l.logger = logger }
}

// WithMetrics sets the Prometheus collectors.
func WithMetrics(m *metrics.Metrics) Option {
	return func(l *Limiter) { l.metrics = m }
}

// WithBudget overrides the default attempts-per-window budget.
func WithBudget(attempts int, window time.Duration) Option {
	return func(l *Limiter) {
		l.attempts = attempts
		l.window = window
	}
}

// NewLimiter creates a rate limiter backed by the given bucket store.
func NewLimiter(buckets ports.BucketStore, auditLog ports.AuditLog, opts ...Option) *Limiter {
	l := &Limiter{
		buckets:  buckets,
		auditLog: auditLog,
		logger:   slog.Default(),
		attempts: DefaultAttempts,
		window:   DefaultWindow,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Allow checks whether the client may make another provisioning attempt and
// consumes one slot if so. On rejection a rate_limit_violation event is
// appended to the audit trail; a failure to append is an internal fault and
// takes precedence over the rejection.
func (l *Limiter) Allow(ctx context.Context, client id.ClientIdentity) (*models.RateLimitResult, error) {
	result, err := l.buckets.Allow(ctx, bucketKey(client), l.attempts, l.window)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "rate limit check failed")
	}

	if result.Allowed {
		l.metrics.RecordCheck("allowed")
		return result, nil
	}

	l.metrics.RecordCheck("rejected")
	l.logger.WarnContext(ctx, "rate limit exceeded",
		"client", privacy.AnonymizeIP(client.String()),
		"limit", result.Limit,
		"retry_after", result.RetryAfter,
	)

	event := audit.Event{
		Type:        audit.EventRateLimitViolation,
		Description: fmt.Sprintf("rate limit exceeded: %d attempts per %s", l.attempts, l.window),
		Severity:    id.LevelHigh,
		Client:      client,
		ThreatType:  audit.ThreatRateLimitViolation,
		Metadata: audit.Metadata{
			"limit":       fmt.Sprintf("%d", result.Limit),
			"retry_after": fmt.Sprintf("%d", result.RetryAfter),
		},
	}
	if err := l.auditLog.Append(ctx, event); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "record rate limit violation")
	}

	return result, nil
}

// CurrentCount reports how many attempts the client has made in the live
// window without consuming a slot.
func (l *Limiter) CurrentCount(ctx context.Context, client id.ClientIdentity) (int, error) {
	count, err := l.buckets.GetCurrentCount(ctx, bucketKey(client))
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "rate limit count failed")
	}
	return count, nil
}

// Reset clears the client's window. Admin use only.
func (l *Limiter) Reset(ctx context.Context, client id.ClientIdentity) error {
	if err := l.buckets.Reset(ctx, bucketKey(client)); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "rate limit reset failed")
	}
	return nil
}

// Budget returns the configured attempts and window.
func (l *Limiter) Budget() (int, time.Duration) {
	return l.attempts, l.window
}

func bucketKey(client id.ClientIdentity) string {
	return "ratelimit:client:" + client.String()
}
