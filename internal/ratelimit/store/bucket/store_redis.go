package bucket

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"subguard/internal/ratelimit/models"
)

// allowScript implements the sliding window check-then-record atomically on
// the server. Without the script, two replicas racing on the same key could
// both observe count < limit and both record, admitting limit+1 attempts.
//
// KEYS[1] = bucket key (sorted set, member score = attempt unix micros)
// ARGV[1] = now (unix micros), ARGV[2] = window (micros),
// ARGV[3] = cost, ARGV[4] = limit, ARGV[5] = unique member token
// (members must never collide across same-tick calls or ZADD would
// silently coalesce two attempts into one)
//
// Returns {allowed, count, oldest} where count is the post-decision count and
// oldest is the unix-micro score of the earliest retained attempt (0 if none).
var allowScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local cost = tonumber(ARGV[3])
local limit = tonumber(ARGV[4])

redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)
local count = redis.call('ZCARD', key)

if count + cost > limit then
	local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
	local score = 0
	if oldest[2] then score = tonumber(oldest[2]) end
	return {0, count, score}
end

for i = 1, cost do
	redis.call('ZADD', key, now, ARGV[5] .. ':' .. tostring(i))
end
redis.call('PEXPIRE', key, math.ceil(window / 1000))

local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
local score = 0
if oldest[2] then score = tonumber(oldest[2]) end
return {1, count + cost, score}
`)

// RedisBucketStore implements BucketStore on Redis sorted sets. Limits hold
// across every replica sharing the same Redis.
type RedisBucketStore struct {
	client *redis.Client
	prefix string
}

// NewRedisBucketStore creates a Redis-backed bucket store.
func NewRedisBucketStore(client *redis.Client) *RedisBucketStore {
	return &RedisBucketStore{client: client, prefix: "subguard:bucket:"}
}

// Allow checks if a single attempt is allowed and records it if so.
func (s *RedisBucketStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.RateLimitResult, error) {
	return s.AllowN(ctx, key, 1, limit, window)
}

// AllowN checks if 'cost' attempts are allowed and records them if so.
// Rejected attempts are never recorded.
func (s *RedisBucketStore) AllowN(ctx context.Context, key string, cost, limit int, window time.Duration) (*models.RateLimitResult, error) {
	now := time.Now()
	raw, err := allowScript.Run(ctx, s.client,
		[]string{s.prefix + key},
		now.UnixMicro(), window.Microseconds(), cost, limit, uuid.NewString(),
	).Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("run rate limit script: %w", err)
	}
	if len(raw) != 3 {
		return nil, fmt.Errorf("rate limit script returned %d values, want 3", len(raw))
	}

	allowed := raw[0] == 1
	count := int(raw[1])

	resetAt := now.Add(window)
	if raw[2] > 0 {
		resetAt = time.UnixMicro(raw[2]).Add(window)
	}

	result := &models.RateLimitResult{
		Allowed:   allowed,
		Limit:     limit,
		Remaining: max(limit-count, 0),
		ResetAt:   resetAt,
	}
	if !allowed {
		result.RetryAfter = int(time.Until(resetAt).Seconds()) + 1
	}
	return result, nil
}

// Reset clears the rate limit counter for a key.
func (s *RedisBucketStore) Reset(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("reset rate limit key: %w", err)
	}
	return nil
}

// GetCurrentCount returns the current attempt count in the window.
func (s *RedisBucketStore) GetCurrentCount(ctx context.Context, key string) (int, error) {
	count, err := s.client.ZCard(ctx, s.prefix+key).Result()
	if err != nil {
		return 0, fmt.Errorf("count rate limit key: %w", err)
	}
	return int(count), nil
}
