// Package runtime handles connection registration, presence and directed event delivery.
// It orchestrates the real-time layer without containing business logic or domain rules.
package runtime

import (
	"context"
	"log/slog"
	"pulse/contract"
	"pulse/observability"
	"pulse/runtime/workers"
	"sync"
	"time"
)

var _ contract.IDispatcher = (*Orchestrator)(nil)

type Orchestrator struct {
	mu         sync.Mutex
	log        *slog.Logger
	supervisor contract.ISupervisor
	registry   *Registry
	presence   *PresencePublisher
	emitter    *Emitter
	router     *Router
	fanoutJobs chan contract.FanoutJob
	debounce   time.Duration
	extra      []contract.Worker
}

type Options struct {
	BufferSize        int
	PresenceDebounce  time.Duration
	FanoutBatchSize   int
	FanoutConcurrency int
}

// NewOrchestrator builds the registry and every component reading it.
// The registry is owned here and injected, never shared through package state.
func NewOrchestrator(log *slog.Logger, supervisor contract.ISupervisor,
	monitoring *observability.MonitoringManager, opts Options) *Orchestrator {
	registry := NewRegistry()
	presence := NewPresencePublisher(log, registry, monitoring, opts.PresenceDebounce > 0)
	emitter := NewEmitter(log, registry, monitoring, opts.FanoutBatchSize, opts.FanoutConcurrency)
	return &Orchestrator{
		log:        log,
		supervisor: supervisor,
		registry:   registry,
		presence:   presence,
		emitter:    emitter,
		router:     NewRouter(log, registry, presence, emitter, monitoring),
		fanoutJobs: make(chan contract.FanoutJob, max(opts.BufferSize, 1)),
		debounce:   opts.PresenceDebounce,
	}
}

func (o *Orchestrator) Registry() *Registry { return o.registry }

func (o *Orchestrator) Router() *Router { return o.router }

func (o *Orchestrator) Emitter() contract.IEmitter { return o.emitter }

// Add registers extra workers (servers, stats) supervised alongside the pipeline.
func (o *Orchestrator) Add(worker ...contract.Worker) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.extra = append(o.extra, worker...)
}

// Dispatch queues a fan-out job without blocking the caller.
func (o *Orchestrator) Dispatch(job contract.FanoutJob) bool {
	select {
	case o.fanoutJobs <- job:
		return true
	default:
		o.log.Warn("Fan-out channel full, dropping job",
			"event", job.Event.Name, "recipients", len(job.Recipients))
		return false
	}
}

// Start registers every worker to the supervisor and blocks until they all stop.
func (o *Orchestrator) Start(ctx context.Context) error {
	o.mu.Lock()
	o.supervisor.Add(workers.NewEventFanout(o.log, o.emitter, o.fanoutJobs))
	if signals := o.presence.Signals(); signals != nil {
		o.supervisor.Add(workers.NewPresenceWorker(o.log, o.presence, signals, o.debounce))
	}
	o.supervisor.Add(o.extra...)
	o.mu.Unlock()

	o.log.Info("Starting orchestrator and all supervised workers")
	o.supervisor.Run(ctx)
	return nil
}

// Stop initiates a graceful shutdown of the supervised workers.
func (o *Orchestrator) Stop() {
	o.log.Info("Requesting orchestrator shutdown")
	o.supervisor.Stop()
}
