package memory

import (
	"context"
	"sync"

	"subguard/internal/audit"
)

// InMemoryStore keeps the audit trail in an append-only slice. Appends are
// atomic under the mutex, which is all the ordering guarantee concurrent
// requests need: each request's own events stay causally ordered because the
// pipeline appends them sequentially.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []audit.Event
}

// NewInMemoryStore creates an empty in-memory audit store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

// Append adds the event at the end of the trail.
func (s *InMemoryStore) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// ListRecent returns the n most recent events in insertion order.
func (s *InMemoryStore) ListRecent(_ context.Context, n int) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start := len(s.events) - n
	if start < 0 {
		start = 0
	}
	return append([]audit.Event{}, s.events[start:]...), nil
}

// ListAll returns every retained event in insertion order.
func (s *InMemoryStore) ListAll(_ context.Context) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]audit.Event{}, s.events...), nil
}

// Len reports the current trail length. Used by tests and reporting.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}
