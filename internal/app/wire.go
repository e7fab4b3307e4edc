//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"orderflow/internal/pkg/config"
	"orderflow/internal/pkg/factory/delivery_estimate"
	driverService "orderflow/internal/service/driver"
	orderService "orderflow/internal/service/order"
	"orderflow/pkg/logger"
)

// InitializeApplication для HTTP сервиса (cmd/service)
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	redisClient *goredis.Client,
	journal Journal,
	cfg *config.Config,
) (*Application, error) {
	wire.Build(
		provideTxManager,
		provideQuerier,

		provideOrderRepository,
		provideRestaurantRepository,
		provideDriverLocationRepository,

		providePaymentGateway,
		providePricingCalculator,
		delivery_estimate.New,

		provideRegistry,
		provideDispatcher,

		provideServiceOrder,
		provideServiceDriver,

		provideConnectionHeartbeatTask,
		provideSystemMetricsTask,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(Application), "*"),

		wire.Bind(new(ServiceOrder), new(*orderService.Service)),
		wire.Bind(new(ServiceDriver), new(*driverService.Service)),
	)
	return &Application{}, nil
}
