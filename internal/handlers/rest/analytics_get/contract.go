//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=analytics_get_test
package analytics_get

import (
	"context"

	"orderflow/internal/entities"
	"orderflow/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	Analytics(ctx context.Context, actor entities.Actor) (*entities.OrderStats, error)
}
