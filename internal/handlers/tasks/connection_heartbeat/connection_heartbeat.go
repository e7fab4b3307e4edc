package connection_heartbeat

import (
	"context"
	"time"

	"orderflow/pkg/logger"
)

// ConnectionHeartbeat пингует все соединения реестра. Не ответившие снимаются,
// так что мёртвые соединения уходят даже при отсутствии событий.
type ConnectionHeartbeat struct {
	log      taskLogger
	registry Registry
	interval time.Duration
}

func NewConnectionHeartbeat(log taskLogger, registry Registry, interval time.Duration) *ConnectionHeartbeat {
	return &ConnectionHeartbeat{
		log:      log,
		registry: registry,
		interval: interval,
	}
}

func (c *ConnectionHeartbeat) TTL() time.Duration {
	return c.interval
}

func (c *ConnectionHeartbeat) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, c.interval)
	defer cancel()

	total := c.registry.Len()
	if total == 0 {
		return nil
	}

	alive := c.registry.Ping(ctxWithTimeout)
	if dropped := total - alive; dropped > 0 {
		c.log.With(
			logger.NewField("alive", alive),
			logger.NewField("dropped", dropped),
		).Info("connection heartbeat")
	}

	return nil
}

func (c *ConnectionHeartbeat) Info() string {
	return "connection heartbeat"
}
