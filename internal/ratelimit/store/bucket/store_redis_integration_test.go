//go:build integration

package bucket

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"subguard/pkg/testutil/containers"
)

type RedisBucketStoreSuite struct {
	suite.Suite
	store *RedisBucketStore
	ctx   context.Context
}

func (s *RedisBucketStoreSuite) SetupSuite() {
	rc := containers.NewRedisContainer(s.T())
	s.store = NewRedisBucketStore(rc.Client)
	s.ctx = context.Background()
}

func (s *RedisBucketStoreSuite) SetupTest() {
	s.Require().NoError(s.store.client.FlushAll(s.ctx).Err())
}

func TestRedisBucketStoreSuite(t *testing.T) {
	suite.Run(t, new(RedisBucketStoreSuite))
}

func (s *RedisBucketStoreSuite) TestAllow() {
	for i := 0; i < 5; i++ {
		result, err := s.store.Allow(s.ctx, "client-a", 5, time.Hour)
		s.Require().NoError(err)
		s.True(result.Allowed)
		s.Equal(4-i, result.Remaining)
	}

	result, err := s.store.Allow(s.ctx, "client-a", 5, time.Hour)
	s.Require().NoError(err)
	s.False(result.Allowed)
	s.Positive(result.RetryAfter)

	// Rejections never consume slots.
	count, err := s.store.GetCurrentCount(s.ctx, "client-a")
	s.Require().NoError(err)
	s.Equal(5, count)
}

func (s *RedisBucketStoreSuite) TestWindowExpiry() {
	for i := 0; i < 2; i++ {
		_, err := s.store.Allow(s.ctx, "client-b", 2, 200*time.Millisecond)
		s.Require().NoError(err)
	}

	result, err := s.store.Allow(s.ctx, "client-b", 2, 200*time.Millisecond)
	s.Require().NoError(err)
	s.False(result.Allowed)

	time.Sleep(300 * time.Millisecond)

	result, err = s.store.Allow(s.ctx, "client-b", 2, 200*time.Millisecond)
	s.Require().NoError(err)
	s.True(result.Allowed)
}

func (s *RedisBucketStoreSuite) TestReset() {
	_, err := s.store.Allow(s.ctx, "client-c", 1, time.Hour)
	s.Require().NoError(err)

	s.Require().NoError(s.store.Reset(s.ctx, "client-c"))

	result, err := s.store.Allow(s.ctx, "client-c", 1, time.Hour)
	s.Require().NoError(err)
	s.True(result.Allowed)
}

func (s *RedisBucketStoreSuite) TestConcurrentAllow() {
	const (
		goroutines = 50
		limit      = 10
	)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := s.store.Allow(s.ctx, "contended", limit, time.Hour)
			if err == nil && result.Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	s.Equal(limit, allowed)
}
