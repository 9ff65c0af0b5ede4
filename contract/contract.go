//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"pulse/domain"
	"pulse/domain/event"
	"reflect"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// Connection is the handle on one live real-time session.
// Send must not block: it either queues the event or fails.
type Connection interface {
	ID() string
	Send(ctx context.Context, evt event.Outbound) error
}

// IRegistry maps user identities to their single live connection.
// Attach/Detach track every connection, identified or not, for presence broadcast.
type IRegistry interface {
	Attach(conn Connection)
	Detach(conn Connection)
	Register(userID string, conn Connection)
	Unregister(userID string, conn Connection) bool
	Lookup(userID string) (Connection, bool)
	Identities() []string
	Connections() []Connection
}

type IPresencePublisher interface {
	// Publish broadcasts the current presence set to every connection.
	Publish(ctx context.Context)
	// Changed signals that the registry was mutated.
	Changed(ctx context.Context)
}

type IEmitter interface {
	EmitTo(ctx context.Context, userID string, evt event.Outbound) domain.Delivery
	EmitToMany(ctx context.Context, userIDs []string, evt event.Outbound) domain.FanoutReport
}

// FanoutJob is one event to push to many recipients, e.g. a new story to every follower.
type FanoutJob struct {
	Recipients []string
	Event      event.Outbound
}

// IDispatcher queues fan-out jobs off the caller's path.
type IDispatcher interface {
	Dispatch(job FanoutJob) bool
}
