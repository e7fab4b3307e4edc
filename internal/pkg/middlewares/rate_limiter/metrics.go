package rate_limiter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const anonymousRole = "anonymous"

// HTTPRateLimitedTotal - отказы 429 по маршруту и роли актора.
var HTTPRateLimitedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_rate_limited_requests_total",
		Help: "Requests rejected with 429 by the API rate limiter",
	},
	[]string{"method", "route", "role"},
)
