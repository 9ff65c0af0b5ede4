package runtime

import (
	"context"
	stderrors "errors"
	"log/slog"
	"pulse/contract"
	"pulse/domain/event"
	"pulse/errors"
	"pulse/observability"
	"sync"
)

const unknownEventLabel = "unknown"

// Router is bound to every new connection. It registers the connection,
// relays client events to their target and cleans up on disconnect.
type Router struct {
	log        *slog.Logger
	registry   contract.IRegistry
	presence   contract.IPresencePublisher
	emitter    contract.IEmitter
	monitoring *observability.MonitoringManager
}

func NewRouter(log *slog.Logger, registry contract.IRegistry, presence contract.IPresencePublisher,
	emitter contract.IEmitter, monitoring *observability.MonitoringManager) *Router {
	return &Router{
		log:        log,
		registry:   registry,
		presence:   presence,
		emitter:    emitter,
		monitoring: monitoring,
	}
}

// Session is the Connected state of one connection. Close moves it to the
// terminal Disconnected state; a reconnect is a brand-new session.
type Session struct {
	router    *Router
	conn      contract.Connection
	userID    string
	closeOnce sync.Once
}

// Connect registers the connection under userID (when not empty) and publishes presence.
// Anonymous connections still receive presence broadcasts but no directed event.
func (r *Router) Connect(ctx context.Context, conn contract.Connection, userID string) *Session {
	r.registry.Attach(conn)
	if userID != "" {
		r.registry.Register(userID, conn)
	}
	r.log.Debug("Connection opened", "user_id", userID, "connection_id", conn.ID())
	r.presence.Changed(ctx)
	return &Session{router: r, conn: conn, userID: userID}
}

func (s *Session) UserID() string { return s.userID }

// Handle routes one inbound frame. Malformed or unknown frames are dropped;
// a panic is contained to this frame.
func (s *Session) Handle(ctx context.Context, env event.Envelope) {
	r := s.router
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("Inbound handler panicked", "event", env.Event, "user_id", s.userID, "panic", rec)
		}
	}()

	inbound, err := event.Decode(env.Event, env.Data)
	if err != nil {
		// Client-chosen names never become metric labels
		label := unknownEventLabel
		if !stderrors.Is(err, errors.ErrUnknownEvent) {
			label = string(env.Event)
		}
		r.monitoring.IncrInbound(label, false)
		r.log.Debug("Inbound event dropped", "event", env.Event, "user_id", s.userID, "error", err)
		return
	}
	r.monitoring.IncrInbound(string(inbound.Kind()), true)
	r.emitter.EmitTo(ctx, inbound.Target(), inbound.Outbound(s.userID))
}

// Close unregisters the connection only if it still owns its identity, then publishes presence.
func (s *Session) Close(ctx context.Context) {
	s.closeOnce.Do(func() {
		r := s.router
		removed := r.registry.Unregister(s.userID, s.conn)
		r.registry.Detach(s.conn)
		r.log.Debug("Connection closed",
			"user_id", s.userID,
			"connection_id", s.conn.ID(),
			"unregistered", removed)
		r.presence.Changed(ctx)
	})
}
