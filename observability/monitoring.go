package observability

import (
	"math"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MonitoringStats is the JSON view of the real-time layer served to operators.
type MonitoringStats struct {
	Connections        int64   `json:"connections"`
	OnlineUsers        int64   `json:"online_users"`
	Delivered          uint64  `json:"delivered"`
	Dropped            uint64  `json:"dropped"`
	Failed             uint64  `json:"failed"`
	PresenceBroadcasts uint64  `json:"presence_broadcasts"`
	InboundAccepted    uint64  `json:"inbound_accepted"`
	InboundRejected    uint64  `json:"inbound_rejected"`
	RSSBytes           uint64  `json:"rss_bytes"`
	CPUPercent         float64 `json:"cpu_percent"`
}

// MonitoringManager keeps atomic counters for the stats endpoint and mirrors them
// into prometheus collectors. A nil *MonitoringManager is a valid no-op.
type MonitoringManager struct {
	connections        int64
	onlineUsers        int64
	delivered          uint64
	dropped            uint64
	failed             uint64
	presenceBroadcasts uint64
	inboundAccepted    uint64
	inboundRejected    uint64
	rssBytes           uint64
	cpuBits            uint64

	connectionsGauge prometheus.Gauge
	onlineGauge      prometheus.Gauge
	emitted          *prometheus.CounterVec
	inbound          *prometheus.CounterVec
	presence         prometheus.Counter
	rssGauge         prometheus.Gauge
	cpuGauge         prometheus.Gauge
}

func NewMonitoringManager(reg prometheus.Registerer) *MonitoringManager {
	factory := promauto.With(reg)
	return &MonitoringManager{
		connectionsGauge: factory.NewGauge(prometheus.GaugeOpts{
			Name: "pulse_connections",
			Help: "Live real-time connections, identified or not",
		}),
		onlineGauge: factory.NewGauge(prometheus.GaugeOpts{
			Name: "pulse_online_users",
			Help: "Distinct identities holding a registered connection",
		}),
		emitted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pulse_directed_events_total",
			Help: "Directed events by event name and delivery outcome",
		}, []string{"event", "outcome"}),
		inbound: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pulse_inbound_events_total",
			Help: "Client events by event name and routing status",
		}, []string{"event", "status"}),
		presence: factory.NewCounter(prometheus.CounterOpts{
			Name: "pulse_presence_broadcasts_total",
			Help: "Presence list broadcasts",
		}),
		rssGauge: factory.NewGauge(prometheus.GaugeOpts{
			Name: "pulse_process_rss_bytes",
			Help: "Resident memory of the process",
		}),
		cpuGauge: factory.NewGauge(prometheus.GaugeOpts{
			Name: "pulse_process_cpu_percent",
			Help: "CPU usage of the process",
		}),
	}
}

func (mm *MonitoringManager) SetConnections(connections, online int) {
	if mm == nil {
		return
	}
	atomic.StoreInt64(&mm.connections, int64(connections))
	atomic.StoreInt64(&mm.onlineUsers, int64(online))
	mm.connectionsGauge.Set(float64(connections))
	mm.onlineGauge.Set(float64(online))
}

// IncrEmitted records one directed emission; outcome is delivered, offline or failed.
func (mm *MonitoringManager) IncrEmitted(eventName, outcome string) {
	if mm == nil {
		return
	}
	switch outcome {
	case "delivered":
		atomic.AddUint64(&mm.delivered, 1)
	case "failed":
		atomic.AddUint64(&mm.failed, 1)
	default:
		atomic.AddUint64(&mm.dropped, 1)
	}
	mm.emitted.WithLabelValues(eventName, outcome).Inc()
}

func (mm *MonitoringManager) IncrInbound(eventName string, accepted bool) {
	if mm == nil {
		return
	}
	status := "accepted"
	if accepted {
		atomic.AddUint64(&mm.inboundAccepted, 1)
	} else {
		status = "rejected"
		atomic.AddUint64(&mm.inboundRejected, 1)
	}
	mm.inbound.WithLabelValues(eventName, status).Inc()
}

func (mm *MonitoringManager) IncrPresenceBroadcast() {
	if mm == nil {
		return
	}
	atomic.AddUint64(&mm.presenceBroadcasts, 1)
	mm.presence.Inc()
}

func (mm *MonitoringManager) SetProcess(rss uint64, cpu float64) {
	if mm == nil {
		return
	}
	atomic.StoreUint64(&mm.rssBytes, rss)
	atomic.StoreUint64(&mm.cpuBits, math.Float64bits(cpu))
	mm.rssGauge.Set(float64(rss))
	mm.cpuGauge.Set(cpu)
}

func (mm *MonitoringManager) GetLatest() MonitoringStats {
	if mm == nil {
		return MonitoringStats{}
	}
	return MonitoringStats{
		Connections:        atomic.LoadInt64(&mm.connections),
		OnlineUsers:        atomic.LoadInt64(&mm.onlineUsers),
		Delivered:          atomic.LoadUint64(&mm.delivered),
		Dropped:            atomic.LoadUint64(&mm.dropped),
		Failed:             atomic.LoadUint64(&mm.failed),
		PresenceBroadcasts: atomic.LoadUint64(&mm.presenceBroadcasts),
		InboundAccepted:    atomic.LoadUint64(&mm.inboundAccepted),
		InboundRejected:    atomic.LoadUint64(&mm.inboundRejected),
		RSSBytes:           atomic.LoadUint64(&mm.rssBytes),
		CPUPercent:         math.Float64frombits(atomic.LoadUint64(&mm.cpuBits)),
	}
}
