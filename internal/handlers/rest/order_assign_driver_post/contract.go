//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_assign_driver_post_test
package order_assign_driver_post

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
	AssignDriver(ctx context.Context, actor entities.Actor, orderID string) (*entities.Order, error)
}
