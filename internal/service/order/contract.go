//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_test
package order

import (
	"context"
	"time"

	"orderflow/internal/entities"
	"orderflow/pkg/logger"
)

type Repository interface {
	Create(ctx context.Context, order entities.Order) (*entities.Order, error)
	GetByID(ctx context.Context, id string) (*entities.Order, error)
	List(ctx context.Context, filter entities.OrderFilter) ([]entities.Order, error)
	Stats(ctx context.Context) (*entities.OrderStats, error)

	// CompareAndUpdateStatus применяет change только если статус в хранилище всё ещё change.From.
	// ok == false означает проигранную гонку, а не ошибку.
	CompareAndUpdateStatus(ctx context.Context, change entities.StatusChange) (order *entities.Order, ok bool, err error)
	// CompareAndAssignDriver назначает водителя только если driver_id всё ещё NULL.
	CompareAndAssignDriver(ctx context.Context, orderID string, driverID string, at time.Time) (order *entities.Order, ok bool, err error)

	AppendStatusEvent(ctx context.Context, event entities.StatusEvent) error
}

type RestaurantCatalog interface {
	GetRestaurant(ctx context.Context, id string) (*entities.Restaurant, error)
	GetMenuItems(ctx context.Context, restaurantID string, ids []string) ([]entities.MenuItem, error)
	ListRestaurantIDsByOwner(ctx context.Context, ownerID string) ([]string, error)
	CountRestaurants(ctx context.Context) (int64, error)
}

type PaymentGateway interface {
	Authorize(ctx context.Context, request entities.PaymentRequest) (*entities.PaymentAuthorization, error)
	Cancel(ctx context.Context, reference string) error
}

type PricingCalculator interface {
	Calculate(items []entities.OrderItem, deliveryFee entities.Money) (entities.OrderPricing, error)
}

type DeliveryEstimator interface {
	EstimateDelivery(preparationMinutes int, baseTime time.Time) time.Time
}

// Notifier вызывается после фиксации изменений и не возвращает ошибок.
type Notifier interface {
	OrderCreated(ctx context.Context, order entities.Order)
	OrderStatusChanged(ctx context.Context, order entities.Order)
	DriverAssigned(ctx context.Context, order entities.Order)
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoRepeatableRead(ctx context.Context, fn func(ctx context.Context) error) error
}

type serviceLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
