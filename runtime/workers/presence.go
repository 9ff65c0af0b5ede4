package workers

import (
	"context"
	"log/slog"
	"pulse/contract"
	"time"
)

var _ contract.Worker = (*PresenceWorker)(nil)

// PresenceWorker coalesces registry changes and publishes presence at most once per debounce window.
type PresenceWorker struct {
	log       *slog.Logger
	publisher contract.IPresencePublisher
	signals   <-chan struct{}
	debounce  time.Duration
}

func NewPresenceWorker(log *slog.Logger, publisher contract.IPresencePublisher,
	signals <-chan struct{}, debounce time.Duration) *PresenceWorker {
	return &PresenceWorker{log: log, publisher: publisher, signals: signals, debounce: debounce}
}

func (w *PresenceWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping presence worker")
			return nil
		case <-w.signals:
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(w.debounce):
		}

		// Changes raised during the window are covered by this publish
		select {
		case <-w.signals:
		default:
		}
		w.publisher.Publish(ctx)
	}
}
