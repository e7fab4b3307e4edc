package notification

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	NotificationsDeliveredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_delivered_total",
			Help: "Total number of notification deliveries by outcome",
		},
		[]string{"type", "outcome"},
	)

	JournalPublishFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_journal_failures_total",
			Help: "Total number of events that could not be written to the event journal",
		},
		[]string{"type"},
	)
)
