//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=driver_test
package driver

import (
	"context"

	"orderflow/internal/entities"
	"orderflow/pkg/logger"
)

type LocationStore interface {
	SaveLocation(ctx context.Context, location entities.DriverLocation) error
}

type OrderFinder interface {
	List(ctx context.Context, filter entities.OrderFilter) ([]entities.Order, error)
}

type Notifier interface {
	DriverLocationChanged(ctx context.Context, order entities.Order, location entities.Location)
}

type serviceLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
