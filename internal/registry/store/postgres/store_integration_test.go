//go:build integration

package postgres

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"subguard/internal/registry/models"
	id "subguard/pkg/domain"
	"subguard/pkg/platform/sentinel"
	"subguard/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	store *Store
	ctx   context.Context
}

func (s *PostgresStoreSuite) SetupSuite() {
	pg := containers.NewPostgresContainer(s.T())

	migration, err := os.ReadFile(filepath.Join("..", "..", "..", "..", "migrations", "0001_subdomains.sql"))
	s.Require().NoError(err)
	_, err = pg.Pool.Exec(context.Background(), string(migration))
	s.Require().NoError(err)

	s.store = New(pg.Pool)
	s.ctx = context.Background()
}

func TestPostgresStoreSuite(t *testing.T) {
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) record(name string) *models.DeploymentRecord {
	subdomain, err := id.ParseSubdomainName(name)
	s.Require().NoError(err)
	record, err := models.NewDeploymentRecord(
		subdomain,
		id.NewProjectID(),
		time.Now().UTC(),
		90,
		true,
		map[string]string{"X-Frame-Options": "DENY"},
		models.Isolation{Path: "/deployments/p/isolated/p", ResourceLimits: models.DefaultResourceLimits()},
	)
	s.Require().NoError(err)
	return record
}

func (s *PostgresStoreSuite) TestLifecycle() {
	record := s.record("pglifecycle9")
	s.Require().NoError(s.store.Insert(s.ctx, record))

	exists, err := s.store.Exists(s.ctx, record.Subdomain)
	s.Require().NoError(err)
	s.True(exists)

	got, err := s.store.Get(s.ctx, record.Subdomain)
	s.Require().NoError(err)
	s.Equal(record.Subdomain, got.Subdomain)
	s.Equal(record.ProjectID, got.ProjectID)
	s.Equal(90, got.SecurityScore)
	s.Equal("DENY", got.SecurityHeaders["X-Frame-Options"])
	s.Equal(models.DefaultResourceLimits(), got.Isolation.ResourceLimits)

	s.ErrorIs(s.store.Insert(s.ctx, s.record("pglifecycle9")), sentinel.ErrAlreadyUsed)

	s.Require().NoError(s.store.Remove(s.ctx, record.Subdomain))
	s.ErrorIs(s.store.Remove(s.ctx, record.Subdomain), sentinel.ErrNotFound)

	_, err = s.store.Get(s.ctx, record.Subdomain)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestAllOrdering() {
	names := []string{"pgorder1", "pgorder2", "pgorder3"}
	for _, name := range names {
		s.Require().NoError(s.store.Insert(s.ctx, s.record(name)))
	}

	records, err := s.store.All(s.ctx)
	s.Require().NoError(err)

	var got []string
	for _, record := range records {
		got = append(got, record.Subdomain.String())
	}
	s.Subset(got, names)
	s.True(indexOf(got, "pgorder1") < indexOf(got, "pgorder2"))
	s.True(indexOf(got, "pgorder2") < indexOf(got, "pgorder3"))
}

func (s *PostgresStoreSuite) TestConcurrentInsertSameName() {
	const goroutines = 20

	records := make([]*models.DeploymentRecord, goroutines)
	for i := range records {
		records[i] = s.record("pgcontended9")
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
}

func indexOf(values []string, target string) int {
	for i, v := range values {
		if v == target {
			return i
		}
	}
	return -1
}
