// Package memory provides an in-memory registry store.
package memory

import (
	"context"
	"sync"

	"subguard/internal/registry/models"
	id "subguard/pkg/domain"
	"subguard/pkg/platform/sentinel"
)

// InMemoryStore keeps records in a map keyed by the case-folded name, with a
// side slice preserving insertion order for reporting.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[string]*models.DeploymentRecord
	order   []string
}

// NewInMemoryStore creates an empty registry store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		records: make(map[string]*models.DeploymentRecord),
	}
}

// Exists reports whether an active record holds the name.
func (s *InMemoryStore) Exists(_ context.Context, name id.SubdomainName) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.records[name.Key()]
	return ok, nil
}

// Insert adds a record. Check and insert happen under one lock so two
// concurrent inserts of the same name can never both succeed.
func (s *InMemoryStore) Insert(_ context.Context, record *models.DeploymentRecord) error {
	key := record.Subdomain.Key()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[key]; ok {
		return sentinel.ErrAlreadyUsed
	}
	clone := *record
	s.records[key] = &clone
	s.order = append(s.order, key)
	return nil
}

// Get returns the record for a name.
func (s *InMemoryStore) Get(_ context.Context, name id.SubdomainName) (*models.DeploymentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[name.Key()]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	clone := *record
	return &clone, nil
}

// Remove revokes a name.
func (s *InMemoryStore) Remove(_ context.Context, name id.SubdomainName) error {
	key := name.Key()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[key]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.records, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// All returns every active record in insertion order.
func (s *InMemoryStore) All(_ context.Context) ([]*models.DeploymentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]*models.DeploymentRecord, 0, len(s.order))
	for _, key := range s.order {
		clone := *s.records[key]
		records = append(records, &clone)
	}
	return records, nil
}

// Len returns the number of active records.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
