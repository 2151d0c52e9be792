package audit

import (
	"context"
	"log/slog"
)

// Worker drains queued audit events into a store. Append failures are logged
// and the event is dropped; audit never blocks registration.
type Worker struct {
	store  Store
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(store Store, inbox <-chan Event, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{store: store, inbox: inbox, logger: logger}
}

// Run processes events until ctx is done or the inbox is closed. Events still
// buffered when the inbox closes are flushed first.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.inbox:
			if !ok {
				return nil
			}
			if err := w.store.Append(ctx, event); err != nil {
				w.logger.ErrorContext(ctx, "failed to append audit event",
					"event_id", event.ID.String(),
					"action", string(event.Action),
					"error", err,
				)
			}
		}
	}
}
