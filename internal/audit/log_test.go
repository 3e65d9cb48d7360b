package audit_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"subguard/internal/audit"
	"subguard/internal/audit/store/memory"
	id "subguard/pkg/domain"
)

type LogSuite struct {
	suite.Suite
	store *memory.InMemoryStore
	log   *audit.Log
	ctx   context.Context
}

func (s *LogSuite) SetupTest() {
	s.store = memory.NewInMemoryStore()
	s.log = audit.NewLog(s.store)
	s.ctx = context.Background()
}

func TestLogSuite(t *testing.T) {
	suite.Run(t, new(LogSuite))
}

func (s *LogSuite) TestAppendStampsIdentity() {
	err := s.log.Append(s.ctx, audit.Event{
		Type:        audit.EventSubdomainValidation,
		Description: "validation passed",
		Severity:    id.LevelLow,
	})
	s.Require().NoError(err)

	events, err := s.store.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.NotEmpty(events[0].ID)
	s.False(events[0].Timestamp.IsZero())
}

func (s *LogSuite) TestAppendClampsMetadata() {
	metadata := audit.Metadata{}
	for i := 0; i < audit.MaxMetadataKeys+5; i++ {
		metadata[fmt.Sprintf("key%02d", i)] = "v"
	}
	metadata["long"] = strings.Repeat("x", audit.MaxMetadataValueLen+50)

	err := s.log.Append(s.ctx, audit.Event{
		Type:     audit.EventEnvironmentCreation,
		Severity: id.LevelLow,
		Metadata: metadata,
	})
	s.Require().NoError(err)

	events, err := s.store.ListAll(s.ctx)
	s.Require().NoError(err)
	stored := events[0].Metadata
	s.LessOrEqual(len(stored), audit.MaxMetadataKeys)
	for _, v := range stored {
		s.LessOrEqual(len(v), audit.MaxMetadataValueLen)
	}
}

func (s *LogSuite) TestRecent() {
	for i := 0; i < 7; i++ {
		err := s.log.Append(s.ctx, audit.Event{
			Type:        audit.EventSubdomainValidation,
			Description: fmt.Sprintf("event %d", i),
			Severity:    id.LevelLow,
		})
		s.Require().NoError(err)
	}

	recent, err := s.log.Recent(s.ctx, 3)
	s.Require().NoError(err)
	s.Require().Len(recent, 3)
	s.Equal("event 4", recent[0].Description)
	s.Equal("event 6", recent[2].Description)

	_, err = s.log.Recent(s.ctx, 0)
	s.Error(err)
}

func (s *LogSuite) TestThreatSummary() {
	appendWithThreat := func(threat audit.ThreatType) {
		s.Require().NoError(s.log.Append(s.ctx, audit.Event{
			Type:       audit.EventSuspiciousInput,
			Severity:   id.LevelHigh,
			ThreatType: threat,
		}))
	}
	appendWithThreat(audit.ThreatXSSAttempt)
	appendWithThreat(audit.ThreatXSSAttempt)
	appendWithThreat(audit.ThreatPhishingAttempt)
	s.Require().NoError(s.log.Append(s.ctx, audit.Event{
		Type:     audit.EventSubdomainValidation,
		Severity: id.LevelLow,
	}))

	summary, err := s.log.ThreatSummary(s.ctx)
	s.Require().NoError(err)
	s.Equal(map[audit.ThreatType]int{
		audit.ThreatXSSAttempt:      2,
		audit.ThreatPhishingAttempt: 1,
	}, summary)
}

func (s *LogSuite) TestMirrorIsBestEffort() {
	mirror := make(chan audit.Event, 1)
	log := audit.NewLog(s.store, audit.WithMirror(mirror))

	for i := 0; i < 3; i++ {
		err := log.Append(s.ctx, audit.Event{
			Type:     audit.EventSubdomainValidation,
			Severity: id.LevelLow,
		})
		s.Require().NoError(err)
	}

	// The full channel dropped two events from the mirror, never from the store.
	s.Len(mirror, 1)
	s.Equal(3, s.store.Len())
}
