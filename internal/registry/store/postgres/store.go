// Package postgres provides the Postgres-backed registry store.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"subguard/internal/registry/models"
	id "subguard/pkg/domain"
	"subguard/pkg/platform/sentinel"
)

// Store implements the registry on Postgres. Uniqueness is enforced by a
// unique index on lower(name) (see migrations/0001_subdomains.sql), so the
// atomic check-then-insert lives in the database.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Postgres-backed registry store.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Exists reports whether an active record holds the name.
func (s *Store) Exists(ctx context.Context, name id.SubdomainName) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM subdomains WHERE lower(name) = $1)`
	if err := s.pool.QueryRow(ctx, query, name.Key()).Scan(&exists); err != nil {
		return false, fmt.Errorf("check subdomain existence: %w", err)
	}
	return exists, nil
}

// Insert adds a record. A concurrent insert of the same name loses the
// conflict and sees sentinel.ErrAlreadyUsed.
func (s *Store) Insert(ctx context.Context, record *models.DeploymentRecord) error {
	headers, err := json.Marshal(record.SecurityHeaders)
	if err != nil {
		return fmt.Errorf("marshal security headers: %w", err)
	}
	isolation, err := json.Marshal(record.Isolation)
	if err != nil {
		return fmt.Errorf("marshal isolation: %w", err)
	}

	query := `
		INSERT INTO subdomains (name, project_id, created_at, security_score, ssl_configured, security_headers, isolation)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT ((lower(name))) DO NOTHING
	`
	tag, err := s.pool.Exec(ctx, query,
		record.Subdomain.String(),
		record.ProjectID.String(),
		record.CreatedAt,
		record.SecurityScore,
		record.SSLConfigured,
		headers,
		isolation,
	)
	if err != nil {
		return fmt.Errorf("insert subdomain: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrAlreadyUsed
	}
	return nil
}

// Get returns the record for a name.
func (s *Store) Get(ctx context.Context, name id.SubdomainName) (*models.DeploymentRecord, error) {
	query := `
		SELECT name, project_id, created_at, security_score, ssl_configured, security_headers, isolation
		FROM subdomains WHERE lower(name) = $1
	`
	record, err := scanRecord(s.pool.QueryRow(ctx, query, name.Key()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get subdomain: %w", err)
	}
	return record, nil
}

// Remove revokes a name.
func (s *Store) Remove(ctx context.Context, name id.SubdomainName) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM subdomains WHERE lower(name) = $1`, name.Key())
	if err != nil {
		return fmt.Errorf("remove subdomain: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// All returns every active record in insertion order.
func (s *Store) All(ctx context.Context) ([]*models.DeploymentRecord, error) {
	query := `
		SELECT name, project_id, created_at, security_score, ssl_configured, security_headers, isolation
		FROM subdomains ORDER BY seq ASC
	`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query subdomains: %w", err)
	}
	defer rows.Close()

	var records []*models.DeploymentRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan subdomain: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subdomains: %w", err)
	}
	return records, nil
}

type row interface {
	Scan(dest ...any) error
}

func scanRecord(r row) (*models.DeploymentRecord, error) {
	var (
		record    models.DeploymentRecord
		name      string
		projectID string
		headers   []byte
		isolation []byte
	)
	if err := r.Scan(
		&name,
		&projectID,
		&record.CreatedAt,
		&record.SecurityScore,
		&record.SSLConfigured,
		&headers,
		&isolation,
	); err != nil {
		return nil, err
	}

	subdomain, err := id.ParseSubdomainName(name)
	if err != nil {
		return nil, fmt.Errorf("stored subdomain name invalid: %w", err)
	}
	record.Subdomain = subdomain

	record.ProjectID, err = id.ParseProjectID(projectID)
	if err != nil {
		return nil, fmt.Errorf("stored project id invalid: %w", err)
	}

	if len(headers) > 0 {
		if err := json.Unmarshal(headers, &record.SecurityHeaders); err != nil {
			return nil, fmt.Errorf("unmarshal security headers: %w", err)
		}
	}
	if len(isolation) > 0 {
		if err := json.Unmarshal(isolation, &record.Isolation); err != nil {
			return nil, fmt.Errorf("unmarshal isolation: %w", err)
		}
	}
	return &record, nil
}
