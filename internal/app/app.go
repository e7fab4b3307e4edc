package app

import (
	"context"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"orderflow/internal/entities"
	"orderflow/internal/gateway/stripe/payment"
	"orderflow/internal/handlers/rest/analytics_get"
	"orderflow/internal/handlers/rest/driver_location_post"
	"orderflow/internal/handlers/rest/order_assign_driver_post"
	"orderflow/internal/handlers/rest/order_get"
	"orderflow/internal/handlers/rest/order_status_put"
	"orderflow/internal/handlers/rest/orders_available_get"
	"orderflow/internal/handlers/rest/orders_get"
	"orderflow/internal/handlers/rest/orders_post"
	"orderflow/internal/handlers/tasks/connection_heartbeat"
	"orderflow/internal/handlers/tasks/system_metrics"
	"orderflow/internal/pkg/config"
	"orderflow/internal/pkg/factory/delivery_estimate"
	"orderflow/internal/pkg/registry"
	driverLocationRepo "orderflow/internal/repository/driver_location"
	orderRepo "orderflow/internal/repository/order"
	restaurantRepo "orderflow/internal/repository/restaurant"
	driverService "orderflow/internal/service/driver"
	"orderflow/internal/service/notification"
	orderService "orderflow/internal/service/order"
	"orderflow/internal/service/pricing"
	"orderflow/pkg/background"
	"orderflow/pkg/logger"
	"orderflow/pkg/querier"
	"orderflow/pkg/tx"
)

type Application struct {
	ServiceOrder      ServiceOrder
	ServiceDriver     ServiceDriver
	Registry          *registry.Registry
	BackgroundWorkers *background.Worker
}

type ServiceOrder interface {
	orders_post.Service
	orders_get.Service
	orders_available_get.Service
	order_get.Service
	order_status_put.Service
	order_assign_driver_post.Service
	analytics_get.Service
}

type ServiceDriver interface {
	driver_location_post.Service
}

// Journal - журнал событий заказа, которым владеет main: он же его и закрывает.
type Journal interface {
	Publish(ctx context.Context, event entities.OrderEvent) error
	Close() error
}

func provideTxManager(pool *pgxpool.Pool) *tx.Manager {
	return tx.New(pool)
}

func provideQuerier(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *querier.Querier {
	return querier.New(pool, getter)
}

func provideOrderRepository(querier *querier.Querier) *orderRepo.Repository {
	return orderRepo.New(querier)
}

func provideRestaurantRepository(querier *querier.Querier) *restaurantRepo.Repository {
	return restaurantRepo.New(querier)
}

func provideDriverLocationRepository(client *goredis.Client) *driverLocationRepo.Repository {
	return driverLocationRepo.New(client)
}

func providePaymentGateway(cfg *config.Config) *payment.PaymentGateway {
	return payment.New(payment.NewStripeClient(cfg.Stripe.SecretKey))
}

func providePricingCalculator(cfg *config.Config) *pricing.Calculator {
	return pricing.New(pricing.Policy{
		TaxRate:  cfg.Pricing.TaxRate,
		Currency: cfg.Pricing.Currency,
	})
}

func provideRegistry(log logger.Logger, cfg *config.Config) *registry.Registry {
	return registry.New(
		log.With(logger.NewField("component", "registry")),
		cfg.Registry.BroadcastConcurrency,
	)
}

func provideDispatcher(
	log logger.Logger,
	connections *registry.Registry,
	journal Journal,
) *notification.Dispatcher {
	return notification.New(log, connections, journal)
}

func provideServiceOrder(
	log logger.Logger,
	repository *orderRepo.Repository,
	catalog *restaurantRepo.Repository,
	payments *payment.PaymentGateway,
	calculator *pricing.Calculator,
	estimator *delivery_estimate.DeliveryEstimateFactory,
	dispatcher *notification.Dispatcher,
	txManager *tx.Manager,
) *orderService.Service {
	return orderService.New(
		log,
		repository,
		catalog,
		payments,
		calculator,
		estimator,
		dispatcher,
		txManager,
	)
}

func provideServiceDriver(
	log logger.Logger,
	locations *driverLocationRepo.Repository,
	orders *orderRepo.Repository,
	dispatcher *notification.Dispatcher,
) *driverService.Service {
	return driverService.New(log, locations, orders, dispatcher)
}

func provideConnectionHeartbeatTask(
	log logger.Logger,
	connections *registry.Registry,
	cfg *config.Config,
) *connection_heartbeat.ConnectionHeartbeat {
	return connection_heartbeat.NewConnectionHeartbeat(log, connections, cfg.Tasks.HeartbeatInterval)
}

func provideSystemMetricsTask(cfg *config.Config) *system_metrics.SystemMetrics {
	return system_metrics.NewSystemMetrics(cfg.Tasks.SystemMetricsInterval)
}

func provideTaskList(
	heartbeatTask *connection_heartbeat.ConnectionHeartbeat,
	systemMetricsTask *system_metrics.SystemMetrics,
) []background.Task {
	return []background.Task{
		heartbeatTask,
		systemMetricsTask,
	}
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.New(ctx, log, tasks)
}
