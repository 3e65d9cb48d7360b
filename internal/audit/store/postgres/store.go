package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"subguard/internal/audit"
	id "subguard/pkg/domain"
)

// Store implements audit.Store on Postgres. The seq column is the insertion
// order; rows are never updated or deleted by this store (retention is an
// external concern, see migrations/0002_audit_events.sql).
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Postgres-backed audit store.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Append inserts one event at the end of the trail.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	var metadata []byte
	if event.Metadata != nil {
		var err error
		metadata, err = json.Marshal(event.Metadata)
		if err != nil {
			return fmt.Errorf("marshal audit metadata: %w", err)
		}
	}

	query := `
		INSERT INTO audit_events (id, ts, event_type, description, severity, client, subdomain, threat_type, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.pool.Exec(ctx, query,
		event.ID,
		event.Timestamp,
		string(event.Type),
		event.Description,
		string(event.Severity),
		event.Client.String(),
		event.Subdomain,
		string(event.ThreatType),
		metadata,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// ListRecent returns the n most recent events in insertion order.
func (s *Store) ListRecent(ctx context.Context, n int) ([]audit.Event, error) {
	query := `
		SELECT id, ts, event_type, description, severity, client, subdomain, threat_type, metadata
		FROM (
			SELECT seq, id, ts, event_type, description, severity, client, subdomain, threat_type, metadata
			FROM audit_events ORDER BY seq DESC LIMIT $1
		) tail
		ORDER BY seq ASC
	`
	rows, err := s.pool.Query(ctx, query, n)
	if err != nil {
		return nil, fmt.Errorf("query recent audit events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

// ListAll returns every retained event in insertion order.
func (s *Store) ListAll(ctx context.Context) ([]audit.Event, error) {
	query := `
		SELECT id, ts, event_type, description, severity, client, subdomain, threat_type, metadata
		FROM audit_events ORDER BY seq ASC
	`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

type pgxRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanEvents(rows pgxRows) ([]audit.Event, error) {
	var events []audit.Event
	for rows.Next() {
		var (
			event      audit.Event
			eventType  string
			severity   string
			client     string
			threatType string
			metadata   []byte
		)
		if err := rows.Scan(
			&event.ID,
			&event.Timestamp,
			&eventType,
			&event.Description,
			&severity,
			&client,
			&event.Subdomain,
			&threatType,
			&metadata,
		); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		event.Type = audit.EventType(eventType)
		event.Severity = id.SecurityLevel(severity)
		event.Client = id.ClientIdentity(client)
		event.ThreatType = audit.ThreatType(threatType)
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &event.Metadata); err != nil {
				return nil, fmt.Errorf("unmarshal audit metadata: %w", err)
			}
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return events, nil
}
