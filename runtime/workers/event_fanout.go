package workers

import (
	"context"
	"log/slog"
	"pulse/contract"
)

var _ contract.Worker = (*EventFanout)(nil)

// EventFanout drains fan-out jobs off the request path.
//
// It provides best-effort fan-out with no guarantees regarding delivery,
// ordering, durability, or retries. Each recipient is subject to the
// emitter's offline drop.
type EventFanout struct {
	log     *slog.Logger
	emitter contract.IEmitter
	jobs    <-chan contract.FanoutJob
}

func NewEventFanout(log *slog.Logger, emitter contract.IEmitter, jobs <-chan contract.FanoutJob) *EventFanout {
	return &EventFanout{log: log, emitter: emitter, jobs: jobs}
}

func (w *EventFanout) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping fan-out")
			return nil
		case job, ok := <-w.jobs:
			if !ok {
				w.log.Debug("Fan-out channel is closed")
				return nil
			}
			w.Fanout(ctx, job)
		}
	}
}

func (w *EventFanout) Fanout(ctx context.Context, job contract.FanoutJob) {
	report := w.emitter.EmitToMany(ctx, job.Recipients, job.Event)
	w.log.Debug("Fan-out done",
		"event", job.Event.Name,
		"recipients", report.Recipients,
		"delivered", report.Delivered,
		"offline", report.Offline,
		"failed", report.Failed)
}
