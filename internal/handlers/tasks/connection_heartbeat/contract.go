//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=connection_heartbeat_test
package connection_heartbeat

import (
	"context"

	"orderflow/pkg/logger"
)

type Registry interface {
	Ping(ctx context.Context) int
	Len() int
}

type taskLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
