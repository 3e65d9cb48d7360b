package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	id "subguard/pkg/domain"

	"subguard/internal/audit"
	"subguard/internal/ratelimit/store/bucket"
)

type capturingAuditLog struct {
	events []audit.Event
	err    error
}

func (c *capturingAuditLog) Append(_ context.Context, event audit.Event) error {
	if c.err != nil {
		return c.err
	}
	c.events = append(c.events, event)
	return nil
}

type LimiterSuite struct {
	suite.Suite
	limiter  *Limiter
	auditLog *capturingAuditLog
	ctx      context.Context
}

func (s *LimiterSuite) SetupTest() {
	s.auditLog = &capturingAuditLog{}
	s.limiter = NewLimiter(
		bucket.NewInMemoryBucketStore(),
		s.auditLog,
		WithBudget(5, time.Hour),
	)
	s.ctx = context.Background()
}

func TestLimiterSuite(t *testing.T) {
	suite.Run(t, new(LimiterSuite))
}

func (s *LimiterSuite) TestAllow() {
	client := id.ClientIdentity("203.0.113.7")

	s.Run("admits attempts within the budget", func() {
		for i := 0; i < 5; i++ {
			result, err := s.limiter.Allow(s.ctx, client)
			s.Require().NoError(err)
			s.True(result.Allowed)
		}
		s.Empty(s.auditLog.events)
	})

	s.Run("rejects the sixth attempt and records a violation", func() {
		result, err := s.limiter.Allow(s.ctx, client)
		s.Require().NoError(err)
		s.False(result.Allowed)
		s.Positive(result.RetryAfter)

		s.Require().Len(s.auditLog.events, 1)
		event := s.auditLog.events[0]
		s.Equal(audit.EventRateLimitViolation, event.Type)
		s.Equal(id.LevelHigh, event.Severity)
		s.Equal(audit.ThreatRateLimitViolation, event.ThreatType)
		s.Equal(client, event.Client)
	})

	s.Run("rejections do not consume budget", func() {
		for i := 0; i < 3; i++ {
			_, err := s.limiter.Allow(s.ctx, client)
			s.Require().NoError(err)
		}

		count, err := s.limiter.CurrentCount(s.ctx, client)
		s.Require().NoError(err)
		s.Equal(5, count)
	})
}

func (s *LimiterSuite) TestAllowAuditFailure() {
	client := id.ClientIdentity("203.0.113.8")
	for i := 0; i < 5; i++ {
		_, err := s.limiter.Allow(s.ctx, client)
		s.Require().NoError(err)
	}

	s.auditLog.err = context.DeadlineExceeded

	_, err := s.limiter.Allow(s.ctx, client)
	s.Error(err)
}

func (s *LimiterSuite) TestReset() {
	client := id.ClientIdentity("203.0.113.9")
	for i := 0; i < 5; i++ {
		_, err := s.limiter.Allow(s.ctx, client)
		s.Require().NoError(err)
	}

	s.Require().NoError(s.limiter.Reset(s.ctx, client))

	result, err := s.limiter.Allow(s.ctx, client)
	s.Require().NoError(err)
	s.True(result.Allowed)
}

func (s *LimiterSuite) TestBudget() {
	attempts, window := s.limiter.Budget()
	s.Equal(5, attempts)
	s.Equal(time.Hour, window)
}
