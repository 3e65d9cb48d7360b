package bucket

import (
	"context"
	"sync"
	"time"

	"subguard/internal/ratelimit/models"
)

// InMemoryBucketStore implements BucketStore using an in-memory sliding
// window per key. Single-process only; use the Redis store when limits must
// hold across replicas.
//
// Concurrent calls for the same key serialize under the store mutex, so
// check-then-record is atomic and two racing attempts can never both claim
// the last slot.
type InMemoryBucketStore struct {
	mu      sync.RWMutex
	buckets map[string]*slidingWindow
}

// slidingWindow tracks attempt timestamps. A sliding window (rather than
// fixed buckets) prevents boundary bursts from doubling the effective limit.
type slidingWindow struct {
	timestamps []time.Time
	window     time.Duration
}

// NewInMemoryBucketStore creates a new in-memory bucket store.
func NewInMemoryBucketStore() *InMemoryBucketStore {
	return &InMemoryBucketStore{
		buckets: make(map[string]*slidingWindow),
	}
}

// Allow checks if an attempt is allowed and records it if so.
func (s *InMemoryBucketStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.RateLimitResult, error) {
	return s.AllowN(ctx, key, 1, limit, window)
}

// AllowN checks if an attempt with custom cost is allowed. Rejected attempts
// are not recorded: only admitted checks consume window slots.
func (s *InMemoryBucketStore) AllowN(_ context.Context, key string, cost int, limit int, window time.Duration) (*models.RateLimitResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sw := s.getOrCreateBucket(key, window)
	sw.prune(time.Now())
	count := len(sw.timestamps)

	if count+cost <= limit {
		now := time.Now()
		for range cost {
			sw.timestamps = append(sw.timestamps, now)
		}

		var resetAt time.Time
		if len(sw.timestamps) > 0 {
			resetAt = sw.timestamps[0].Add(window)
		} else {
			resetAt = now.Add(window)
		}

		return &models.RateLimitResult{
			Allowed:   true,
			Limit:     limit,
			Remaining: limit - len(sw.timestamps),
			ResetAt:   resetAt,
		}, nil
	}

	resetAt := time.Now().Add(window)
	if len(sw.timestamps) > 0 {
		resetAt = sw.timestamps[0].Add(window)
	}
	return &models.RateLimitResult{
		Allowed:    false,
		Limit:      limit,
		Remaining:  0,
		ResetAt:    resetAt,
		RetryAfter: int(time.Until(resetAt).Seconds()) + 1,
	}, nil
}

// Reset clears the rate limit counter for a key.
func (s *InMemoryBucketStore) Reset(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.buckets, key)
	return nil
}

// GetCurrentCount returns the current attempt count for a key. It takes the
// write lock: prune mutates the window, so a read lock would let two
// concurrent counts race on the timestamp slice.
func (s *InMemoryBucketStore) GetCurrentCount(_ context.Context, key string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sw := s.buckets[key]
	if sw == nil {
		return 0, nil
	}

	sw.prune(time.Now())
	return len(sw.timestamps), nil
}

// prune removes expired timestamps from a sliding window.
func (sw *slidingWindow) prune(now time.Time) {
	cutoff := now.Add(-sw.window)
	i := 0
	for ; i < len(sw.timestamps); i++ {
		if sw.timestamps[i].After(cutoff) {
			break
		}
	}
	sw.timestamps = sw.timestamps[i:]
}

// getOrCreateBucket returns an existing bucket or creates a new one.
// Must be called while holding s.mu lock.
func (s *InMemoryBucketStore) getOrCreateBucket(key string, window time.Duration) *slidingWindow {
	if sw := s.buckets[key]; sw != nil {
		return sw
	}
	sw := &slidingWindow{timestamps: []time.Time{}, window: window}
	s.buckets[key] = sw
	return sw
}
