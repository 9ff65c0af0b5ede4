package runtime

import (
	"pulse/contract"
	"sync"

	"github.com/samber/lo"
)

// Registry is the process-wide directory of live connections.
// It is created once at startup and injected into the router, the emitter
// and the presence publisher.
//
// Horizontal scaling is not supported: a multi-process deployment would need the
// user -> connection mapping in a shared store with an atomic compare-and-delete,
// and the presence broadcast on a pub/sub channel.
type Registry struct {
	mu          sync.RWMutex
	sessions    map[string]contract.Connection // map user identity -> connection
	connections map[string]contract.Connection // map connection ID -> connection
}

func NewRegistry() *Registry {
	return &Registry{
		sessions:    make(map[string]contract.Connection),
		connections: make(map[string]contract.Connection),
	}
}

// Attach tracks a connection whether or not it carries an identity,
// so it receives server-wide broadcasts.
func (r *Registry) Attach(conn contract.Connection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.connections[conn.ID()] = conn
}

func (r *Registry) Detach(conn contract.Connection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.connections, conn.ID())
}

// Register stores the connection of a user, replacing any previous one (last connect wins).
// The replaced connection is not closed. An empty identity is ignored.
func (r *Registry) Register(userID string, conn contract.Connection) {
	if userID == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[userID] = conn
}

// Unregister removes the mapping only while it still points at conn.
// A stale connection closing after its user reconnected must not evict the newer one.
func (r *Registry) Unregister(userID string, conn contract.Connection) bool {
	if userID == "" {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.sessions[userID]
	if !ok || current.ID() != conn.ID() {
		return false
	}
	delete(r.sessions, userID)
	return true
}

func (r *Registry) Lookup(userID string) (contract.Connection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	conn, ok := r.sessions[userID]
	return conn, ok
}

// Identities returns a snapshot of the presence set.
func (r *Registry) Identities() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lo.Keys(r.sessions)
}

// Connections returns a snapshot of every attached connection.
func (r *Registry) Connections() []contract.Connection {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lo.Values(r.connections)
}

func (r *Registry) Online(userID string) bool {
	_, ok := r.Lookup(userID)
	return ok
}

// Count returns the number of attached connections and of registered identities.
func (r *Registry) Count() (connections, online int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.connections), len(r.sessions)
}
