package registry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ActiveConnections = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "registry_active_connections",
			Help: "Number of registered live connections",
		},
		[]string{"role"},
	)

	DroppedConnectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registry_dropped_connections_total",
			Help: "Total number of channels dropped after a failed send or ping",
		},
		[]string{"role", "reason"},
	)
)
