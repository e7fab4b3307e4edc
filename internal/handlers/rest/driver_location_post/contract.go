//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=driver_location_post_test
package driver_location_post

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
	UpdateLocation(ctx context.Context, actor entities.Actor, location entities.Location) error
}
