package runtime

import (
	"context"
	"pulse/domain/event"
	"sync"

	"github.com/google/uuid"
)

// fakeConn records every event sent to it.
type fakeConn struct {
	mu     sync.Mutex
	id     string
	events []event.Outbound
	err    error
	panic  bool
}

func newFakeConn() *fakeConn {
	return &fakeConn{id: uuid.NewString()}
}

func (c *fakeConn) ID() string { return c.id }

func (c *fakeConn) Send(_ context.Context, evt event.Outbound) error {
	if c.panic {
		panic("connection exploded")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.events = append(c.events, evt)
	return nil
}

func (c *fakeConn) Received() []event.Outbound {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]event.Outbound(nil), c.events...)
}

func (c *fakeConn) ReceivedNamed(name event.Name) []event.Outbound {
	var out []event.Outbound
	for _, e := range c.Received() {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}

// LastPresence returns the identities of the latest presence broadcast received.
func (c *fakeConn) LastPresence() (event.PresenceList, bool) {
	lists := c.ReceivedNamed(event.PresenceListType)
	if len(lists) == 0 {
		return nil, false
	}
	return lists[len(lists)-1].Payload.(event.PresenceList), true
}
