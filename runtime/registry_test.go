package runtime

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Register_One_User(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	userID := uuid.NewString()
	conn := newFakeConn()

	// Given nobody is connected
	req.Empty(registry.Identities())

	// When a user registers a connection
	registry.Attach(conn)
	registry.Register(userID, conn)

	// Then the user is online and resolves to that connection
	found, ok := registry.Lookup(userID)
	req.True(ok)
	req.Equal(conn.ID(), found.ID())
	req.ElementsMatch([]string{userID}, registry.Identities())
	req.True(registry.Online(userID))
}

func TestRegistry_Register_Last_Connect_Wins(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	userID := uuid.NewString()
	first, second := newFakeConn(), newFakeConn()

	// Given a user connected from a first tab
	registry.Register(userID, first)

	// When the same user connects from a second tab
	registry.Register(userID, second)

	// Then the identity resolves to the latest connection only
	found, ok := registry.Lookup(userID)
	req.True(ok)
	req.Equal(second.ID(), found.ID())
	req.Len(registry.Identities(), 1)
}

func TestRegistry_Unregister_Stale_Connection_Keeps_Newer_One(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	userID := uuid.NewString()
	first, second := newFakeConn(), newFakeConn()

	// Given a user reconnected, replacing their first connection
	registry.Register(userID, first)
	registry.Register(userID, second)

	// When the stale first connection closes
	removed := registry.Unregister(userID, first)

	// Then the newer mapping is untouched
	req.False(removed)
	found, ok := registry.Lookup(userID)
	req.True(ok)
	req.Equal(second.ID(), found.ID())
	req.Contains(registry.Identities(), userID)
}

func TestRegistry_Unregister_Current_Connection(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	userID := uuid.NewString()
	conn := newFakeConn()
	registry.Register(userID, conn)

	// When the current connection closes
	removed := registry.Unregister(userID, conn)

	// Then the user is offline
	req.True(removed)
	_, ok := registry.Lookup(userID)
	req.False(ok)
	req.Empty(registry.Identities())

	// And unregistering twice is a no-op
	req.False(registry.Unregister(userID, conn))
}

func TestRegistry_Empty_Identity_Is_Ignored(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	conn := newFakeConn()

	// When an anonymous connection is attached
	registry.Attach(conn)
	registry.Register("", conn)

	// Then it receives broadcasts but holds no identity
	req.Empty(registry.Identities())
	req.Len(registry.Connections(), 1)
	req.False(registry.Unregister("", conn))

	connections, online := registry.Count()
	req.Equal(1, connections)
	req.Equal(0, online)
}

func TestRegistry_Detach(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	conn1, conn2 := newFakeConn(), newFakeConn()
	registry.Attach(conn1)
	registry.Attach(conn2)

	// When one connection is detached
	registry.Detach(conn1)

	// Then only the other one remains
	connections := registry.Connections()
	req.Len(connections, 1)
	req.Equal(conn2.ID(), connections[0].ID())
}

func TestRegistry_Concurrent_Access(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	const users = 50

	// When many users connect and disconnect concurrently
	var wg sync.WaitGroup
	for i := 0; i < users; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			userID := uuid.NewString()
			conn := newFakeConn()
			registry.Attach(conn)
			registry.Register(userID, conn)
			_ = registry.Identities()
			registry.Unregister(userID, conn)
			registry.Detach(conn)
		}()
	}
	wg.Wait()

	// Then the registry ends empty
	connections, online := registry.Count()
	req.Zero(connections)
	req.Zero(online)
}
