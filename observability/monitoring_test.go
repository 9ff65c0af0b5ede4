package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMonitoringManager_Counters(t *testing.T) {
	req := require.New(t)
	mm := NewMonitoringManager(prometheus.NewRegistry())

	mm.SetConnections(3, 2)
	mm.IncrEmitted("newMessage", "delivered")
	mm.IncrEmitted("newMessage", "offline")
	mm.IncrEmitted("userTyping", "failed")
	mm.IncrInbound("typing", true)
	mm.IncrInbound("poke", false)
	mm.IncrPresenceBroadcast()
	mm.SetProcess(1024, 12.5)

	req.Equal(MonitoringStats{
		Connections:        3,
		OnlineUsers:        2,
		Delivered:          1,
		Dropped:            1,
		Failed:             1,
		PresenceBroadcasts: 1,
		InboundAccepted:    1,
		InboundRejected:    1,
		RSSBytes:           1024,
		CPUPercent:         12.5,
	}, mm.GetLatest())
	req.Equal(float64(1), testutil.ToFloat64(mm.emitted.WithLabelValues("newMessage", "offline")))
	req.Equal(float64(2), testutil.ToFloat64(mm.onlineGauge))
}

func TestMonitoringManager_Nil_Is_Noop(t *testing.T) {
	req := require.New(t)
	var mm *MonitoringManager

	req.NotPanics(func() {
		mm.SetConnections(1, 1)
		mm.IncrEmitted("newMessage", "delivered")
		mm.IncrInbound("typing", true)
		mm.IncrPresenceBroadcast()
		mm.SetProcess(1, 1)
	})
	req.Equal(MonitoringStats{}, mm.GetLatest())
}
