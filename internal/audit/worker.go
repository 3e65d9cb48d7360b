package audit

import (
	"context"
	"log/slog"
)

// Worker consumes mirrored audit events from a channel and forwards them to a
// secondary sink (broker, warehouse store). It keeps background fan-out off
// the provisioning path: the pipeline only ever blocks on the primary store.
type Worker struct {
	sink   Sink
	inbox  <-chan Event
	logger *slog.Logger
}

// NewWorker builds a worker draining inbox into sink.
func NewWorker(sink Sink, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{sink: sink, inbox: inbox, logger: logger}
}

// Run drains the inbox until the context is cancelled. Sink failures are
// logged and skipped; the primary trail already holds the event.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.sink.Append(ctx, event); err != nil && w.logger != nil {
				w.logger.WarnContext(ctx, "audit mirror append failed",
					"event_id", event.ID,
					"event_type", event.Type,
					"error", err,
				)
			}
		}
	}
}
