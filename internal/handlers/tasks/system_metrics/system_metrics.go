package system_metrics

import (
	"context"
	"time"

	"orderflow/internal/pkg/metrics"
)

// SystemMetrics периодически снимает CPU и память процесса в gauge'и Prometheus.
type SystemMetrics struct {
	interval time.Duration
}

func NewSystemMetrics(interval time.Duration) *SystemMetrics {
	return &SystemMetrics{
		interval: interval,
	}
}

func (s *SystemMetrics) TTL() time.Duration {
	return s.interval
}

func (s *SystemMetrics) Do(ctx context.Context) error {
	return metrics.CollectSystemMetrics(ctx)
}

func (s *SystemMetrics) Info() string {
	return "system metrics"
}
