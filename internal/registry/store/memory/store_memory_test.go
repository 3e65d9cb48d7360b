package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"subguard/internal/registry/models"
	id "subguard/pkg/domain"
	"subguard/pkg/platform/sentinel"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
	ctx   context.Context
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.ctx = context.Background()
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) record(name string) *models.DeploymentRecord {
	subdomain, err := id.ParseSubdomainName(name)
	s.Require().NoError(err)
	record, err := models.NewDeploymentRecord(
		subdomain,
		id.NewProjectID(),
		time.Now(),
		90,
		true,
		map[string]string{"X-Frame-Options": "DENY"},
		models.Isolation{Path: "/deployments/p/isolated/p", ResourceLimits: models.DefaultResourceLimits()},
	)
	s.Require().NoError(err)
	return record
}

func (s *InMemoryStoreSuite) TestInsert() {
	s.Run("inserts and retrieves a record", func() {
		record := s.record("acme123")
		s.Require().NoError(s.store.Insert(s.ctx, record))

		got, err := s.store.Get(s.ctx, record.Subdomain)
		s.Require().NoError(err)
		s.Equal(record.Subdomain, got.Subdomain)
		s.Equal(90, got.SecurityScore)
	})

	s.Run("rejects a duplicate name", func() {
		err := s.store.Insert(s.ctx, s.record("acme123"))
		s.ErrorIs(err, sentinel.ErrAlreadyUsed)
	})

	s.Run("name comparison is case-insensitive", func() {
		exists, err := s.store.Exists(s.ctx, id.SubdomainName("ACME123"))
		s.Require().NoError(err)
		s.True(exists)

		got, err := s.store.Get(s.ctx, id.SubdomainName("AcMe123"))
		s.Require().NoError(err)
		s.Equal("acme123", got.Subdomain.String())
	})
}

func (s *InMemoryStoreSuite) TestRemove() {
	record := s.record("ephemeral1")
	s.Require().NoError(s.store.Insert(s.ctx, record))

	s.Require().NoError(s.store.Remove(s.ctx, record.Subdomain))

	_, err := s.store.Get(s.ctx, record.Subdomain)
	s.ErrorIs(err, sentinel.ErrNotFound)

	s.ErrorIs(s.store.Remove(s.ctx, record.Subdomain), sentinel.ErrNotFound)
}

func (s *InMemoryStoreSuite) TestAll() {
	names := []string{"first1", "second2", "third3"}
	for _, name := range names {
		s.Require().NoError(s.store.Insert(s.ctx, s.record(name)))
	}

	records, err := s.store.All(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(records, 3)
	for i, record := range records {
		s.Equal(names[i], record.Subdomain.String())
	}
}

func (s *InMemoryStoreSuite) TestConcurrentInsertSameName() {
	const goroutines = 50

	records := make([]*models.DeploymentRecord, goroutines)
	for i := range records {
		records[i] = s.record("contended9")
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := s.store.Insert(s.ctx, records[i]); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	s.Equal(1, succeeded)
	s.Equal(1, s.store.Len())
}

func (s *InMemoryStoreSuite) TestConcurrentInsertDistinctNames() {
	const goroutines = 50

	records := make([]*models.DeploymentRecord, goroutines)
	for i := range records {
		records[i] = s.record(fmt.Sprintf("distinct%d", i))
	}

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.NoError(s.store.Insert(s.ctx, records[i]))
		}(i)
	}
	wg.Wait()

	s.Equal(goroutines, s.store.Len())
}
