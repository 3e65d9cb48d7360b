package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	dErrors "subguard/pkg/domain-errors"
	"subguard/pkg/platform/privacy"
)

// Log captures structured audit events. It is append-only and uses the
// storage layer for persistence so tests can swap sinks easily. A write
// failure is never swallowed: callers treat it as an internal fault.
type Log struct {
	store  Store
	logger *slog.Logger
	mirror chan<- Event
}

// Option configures a Log.
type Option func(*Log)

// WithLogger attaches a structured logger; every appended event also emits
// one log line with the client identity anonymized.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Log) { l.logger = logger }
}

// WithMirror attaches a channel feeding a Worker. Mirroring is best-effort:
// if the channel is full the event is dropped from the mirror, never from
// the primary store.
func WithMirror(mirror chan<- Event) Option {
	return func(l *Log) { l.mirror = mirror }
}

// NewLog builds an audit log over the given store.
func NewLog(store Store, opts ...Option) *Log {
	l := &Log{store: store}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Append records one event. The ID and timestamp are stamped here if unset,
// and metadata is clamped to its bounds.
func (l *Log) Append(ctx context.Context, event Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	event.Metadata = clampMetadata(event.Metadata)

	if err := l.store.Append(ctx, event); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to append audit event")
	}

	if l.logger != nil {
		l.logger.InfoContext(ctx, string(event.Type),
			"log_type", "audit",
			"severity", event.Severity,
			"client", privacy.AnonymizeIP(event.Client.String()),
			"subdomain", event.Subdomain,
			"description", event.Description,
		)
	}

	if l.mirror != nil {
		select {
		case l.mirror <- event:
		default:
		}
	}
	return nil
}

// Recent returns the n most recent events in insertion order.
func (l *Log) Recent(ctx context.Context, n int) ([]Event, error) {
	if n <= 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "recent event count must be positive")
	}
	events, err := l.store.ListRecent(ctx, n)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list audit events")
	}
	return events, nil
}

// ThreatSummary scans every retained event and returns occurrence counts per
// threat type. Events without a threat classification are skipped.
func (l *Log) ThreatSummary(ctx context.Context) (map[ThreatType]int, error) {
	events, err := l.store.ListAll(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to scan audit events")
	}
	summary := make(map[ThreatType]int)
	for _, event := range events {
		if event.ThreatType != "" {
			summary[event.ThreatType]++
		}
	}
	return summary, nil
}
