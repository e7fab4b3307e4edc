package order_events

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var JournalPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "order_events_published_total",
		Help: "Total number of order events written to the journal topic",
	},
	[]string{"type", "result"},
)
