package audit

import "context"

// Store is the persistence port for the audit trail. Implementations must
// treat Append as atomic with respect to concurrent appends and must never
// reorder, mutate, or drop stored events. Retention and rotation are an
// external concern; no deletion API exists here.
type Store interface {
	// Append adds one event at the end of the trail.
	Append(ctx context.Context, event Event) error

	// ListRecent returns the n most recent events in insertion order.
	ListRecent(ctx context.Context, n int) ([]Event, error)

	// ListAll returns every retained event in insertion order.
	ListAll(ctx context.Context) ([]Event, error)
}

// Sink receives a copy of every event for out-of-band processing (broker
// publishing, secondary stores). Sinks are best-effort; the primary store is
// the system of record.
type Sink interface {
	Append(ctx context.Context, event Event) error
}
