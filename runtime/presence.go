package runtime

import (
	"context"
	"log/slog"
	"pulse/contract"
	"pulse/domain/event"
	"pulse/observability"
	"slices"
	"sync"
)

// PresencePublisher broadcasts the full presence set to every connection.
//
// Without debounce, Changed publishes inline. With debounce, Changed only raises a
// coalescing signal consumed by workers.PresenceWorker, which always publishes the
// snapshot taken at publish time so every client converges once the registry settles.
type PresencePublisher struct {
	mu         sync.Mutex // serializes snapshot and send so a stale snapshot never goes out last
	log        *slog.Logger
	registry   contract.IRegistry
	monitoring *observability.MonitoringManager
	signals    chan struct{}
}

var _ contract.IPresencePublisher = (*PresencePublisher)(nil)

func NewPresencePublisher(log *slog.Logger, registry contract.IRegistry,
	monitoring *observability.MonitoringManager, debounced bool) *PresencePublisher {
	p := &PresencePublisher{log: log, registry: registry, monitoring: monitoring}
	if debounced {
		p.signals = make(chan struct{}, 1)
	}
	return p
}

// Publish sends the snapshot taken under the publish lock. Send never blocks,
// so holding the lock across the loop is bounded by the number of connections.
func (p *PresencePublisher) Publish(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	identities := p.registry.Identities()
	slices.Sort(identities)
	connections := p.registry.Connections()

	evt := event.Outbound{Name: event.PresenceListType, Payload: event.PresenceList(identities)}
	for _, conn := range connections {
		if err := conn.Send(ctx, evt); err != nil {
			p.log.Debug("Presence not delivered", "connection_id", conn.ID(), "error", err)
		}
	}
	p.monitoring.IncrPresenceBroadcast()
	p.monitoring.SetConnections(len(connections), len(identities))
}

func (p *PresencePublisher) Changed(ctx context.Context) {
	if p.signals == nil {
		p.Publish(ctx)
		return
	}
	select {
	case p.signals <- struct{}{}:
	default:
		// A publish is already pending, it will carry this change too
	}
}

// Signals is nil when the publisher is synchronous.
func (p *PresencePublisher) Signals() <-chan struct{} {
	return p.signals
}
