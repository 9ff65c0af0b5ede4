package runtime

import (
	"context"
	"log/slog"
	"pulse/contract"
	"pulse/domain"
	"pulse/domain/event"
	"pulse/observability"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// Emitter delivers directed events to the connection currently registered for a user.
// Offline recipients are silently skipped: durability belongs to the notification store.
type Emitter struct {
	log         *slog.Logger
	registry    contract.IRegistry
	monitoring  *observability.MonitoringManager
	batchSize   int
	concurrency int
}

var _ contract.IEmitter = (*Emitter)(nil)

func NewEmitter(log *slog.Logger, registry contract.IRegistry,
	monitoring *observability.MonitoringManager, batchSize, concurrency int) *Emitter {
	return &Emitter{
		log:         log,
		registry:    registry,
		monitoring:  monitoring,
		batchSize:   max(batchSize, 1),
		concurrency: max(concurrency, 1),
	}
}

// EmitTo never returns an error: a missing recipient is a drop and a
// transport failure is logged, the next disconnect cleans the registry.
func (e *Emitter) EmitTo(ctx context.Context, userID string, evt event.Outbound) domain.Delivery {
	delivery := e.emit(ctx, userID, evt)
	e.monitoring.IncrEmitted(string(evt.Name), delivery.String())
	return delivery
}

func (e *Emitter) emit(ctx context.Context, userID string, evt event.Outbound) (delivery domain.Delivery) {
	conn, ok := e.registry.Lookup(userID)
	if !ok {
		return domain.Offline
	}

	defer func() {
		if r := recover(); r != nil {
			e.log.Error("Connection panicked on send", "user_id", userID, "event", evt.Name, "panic", r)
			delivery = domain.Failed
		}
	}()

	if err := conn.Send(ctx, evt); err != nil {
		e.log.Debug("Directed event not delivered",
			"user_id", userID,
			"connection_id", conn.ID(),
			"event", evt.Name,
			"error", err)
		return domain.Failed
	}
	return domain.Delivered
}

// EmitToMany fans one event out to every recipient exactly once.
// Recipients are processed batch by batch with a bounded number of concurrent
// sends, so a large follower list does not monopolise the caller.
func (e *Emitter) EmitToMany(ctx context.Context, userIDs []string, evt event.Outbound) domain.FanoutReport {
	var report domain.FanoutReport
	recipients := lo.Uniq(lo.Compact(userIDs))

	for _, batch := range lo.Chunk(recipients, e.batchSize) {
		if ctx.Err() != nil {
			e.log.Debug("Fan-out interrupted", "event", evt.Name, "remaining", len(recipients)-report.Recipients)
			break
		}
		deliveries := make([]domain.Delivery, len(batch))

		var g errgroup.Group
		g.SetLimit(e.concurrency)
		for i, userID := range batch {
			g.Go(func() error {
				deliveries[i] = e.EmitTo(ctx, userID, evt)
				return nil
			})
		}
		_ = g.Wait()

		for _, d := range deliveries {
			report.Add(d)
		}
	}
	return report
}
