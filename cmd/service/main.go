package main

import (
	"context"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // localhost-only ${PPROF_PORT}
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	application "orderflow/internal/app"
	"orderflow/internal/gateway/kafka/order_events"
	"orderflow/internal/handlers/rest/analytics_get"
	"orderflow/internal/handlers/rest/driver_location_post"
	"orderflow/internal/handlers/rest/healthcheck_head"
	"orderflow/internal/handlers/rest/order_assign_driver_post"
	"orderflow/internal/handlers/rest/order_get"
	"orderflow/internal/handlers/rest/order_status_put"
	"orderflow/internal/handlers/rest/orders_available_get"
	"orderflow/internal/handlers/rest/orders_get"
	"orderflow/internal/handlers/rest/orders_post"
	"orderflow/internal/handlers/rest/ping_get"
	"orderflow/internal/handlers/ws/subscribe"
	"orderflow/internal/pkg/config"
	"orderflow/internal/pkg/dotenv"
	"orderflow/internal/pkg/identity"
	"orderflow/internal/pkg/kafka"
	"orderflow/internal/pkg/middlewares/auth"
	"orderflow/internal/pkg/middlewares/graceful_shutdown"
	"orderflow/internal/pkg/middlewares/metrics"
	"orderflow/internal/pkg/middlewares/rate_limiter"
	"orderflow/internal/pkg/middlewares/timeout"
	"orderflow/internal/pkg/postgres"
	"orderflow/internal/pkg/redis"
	"orderflow/pkg/logger"
	"orderflow/pkg/logger/zap_adapter"
	"orderflow/pkg/token_bucket"
)

func main() {
	if err := dotenv.Load(); err != nil {
		stdlog.Fatalf("failed to load .env file: %v", err)
	}

	zapLogger, err := zap_adapter.NewZapAdapter(os.Getenv("LOG_LEVEL"))
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			stdlog.Printf("failed to sync logger: %v", err)
		}
	}()

	var appLogger logger.Logger = zapLogger
	mainLog := appLogger.With()

	mainLog.Info("starting orderflow application")

	cfg, err := config.Load()
	if err != nil {
		mainLog.Error("load config", logger.NewField("error", err))
		return
	}

	err = run(context.Background(), cfg, appLogger)
	if err != nil {
		mainLog.Error("application failed", logger.NewField("error", err))
		return
	}
}

//nolint:contextcheck // наследуемся от context.Background() в местах graceful shutdown
func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	const (
		shutdownPeriod      = 15 * time.Second
		shutdownHardPeriod  = 3 * time.Second
		readinessDrainDelay = 5 * time.Second
	)

	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	var isShuttingDown atomic.Bool

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	runLog := log.With()

	pool, err := postgres.NewConnPool(ctx, log, &cfg.Database)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.Migrate {
		if err := postgres.Migrate(ctx, log, pool); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
	}

	redisClient, err := redis.NewClient(ctx, log, &cfg.Redis)
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			runLog.Error("failed to close redis client", logger.NewField("error", err))
		}
	}()

	journal, err := newJournal(ctx, log, &cfg.Kafka)
	if err != nil {
		return fmt.Errorf("order events journal: %w", err)
	}
	defer func() {
		if err := journal.Close(); err != nil {
			runLog.Error("failed to close order events journal", logger.NewField("error", err))
		}
	}()

	verifier, err := identity.New(cfg.Auth.JWTSecret)
	if err != nil {
		return fmt.Errorf("identity: %w", err)
	}

	// фоновые задачи живут на ctx и останавливаются по сигналу раньше HTTP сервера
	businessApp, err := application.InitializeApplication(ctx, log, pool, pgxv5.DefaultCtxGetter, redisClient, journal, cfg)
	if err != nil {
		return fmt.Errorf("business logic: %w", err)
	}

	// ongoingCtx используется для BaseContext и не должен отменяться при SIGTERM.
	// Он отменяется только после server.Shutdown() для завершения in-flight запросов.
	ongoingCtx, stopOngoingGracefully := context.WithCancel(context.Background())
	defer stopOngoingGracefully()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: initRouter(ongoingCtx, log, &isShuttingDown, businessApp, pool, verifier, cfg),
		BaseContext: func(_ net.Listener) context.Context {
			return ongoingCtx
		},

		ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
		ReadTimeout:       15 * time.Second,
		// WriteTimeout не задаём: он бы рвал долгоживущие websocket соединения,
		// REST ограничен timeout middleware.
		IdleTimeout: 60 * time.Second,
	}
	server.RegisterOnShutdown(businessApp.Registry.CloseAll)

	serverErr := make(chan error, 1)
	go func() {
		defer close(serverErr)
		runLog.Info("server starting",
			logger.NewField("port", cfg.Server.Port),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	var pprofServer *http.Server
	var pprofServerErr chan error
	if cfg.Server.PprofEnabled {
		pprofServer = &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.Server.PprofPort),
			Handler: initPprofRouter(&isShuttingDown),
			BaseContext: func(_ net.Listener) context.Context {
				return ongoingCtx
			},

			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       60 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		pprofServerErr = make(chan error, 1)
		go func() {
			defer close(pprofServerErr)
			runLog.Info("pprof server starting",
				logger.NewField("port", cfg.Server.PprofPort),
			)
			if err := pprofServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				pprofServerErr <- err
			}
		}()
	}

	select {
	case <-ctx.Done():
		runLog.Info("Shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	case err := <-pprofServerErr: // nil канал при выключенном pprof, кейс не срабатывает
		return fmt.Errorf("pprof server: %w", err)
	}

	stop()
	isShuttingDown.Store(true)

	time.Sleep(readinessDrainDelay)
	runLog.Info("draining requests")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)
	defer cancel()

	// Shutdown не ждёт hijacked соединений, их закрывает RegisterOnShutdown -> CloseAll.
	var shutdownErr error
	err = server.Shutdown(shutdownCtx)
	if pprofServer != nil {
		shutdownErr = pprofServer.Shutdown(shutdownCtx)
		if shutdownErr != nil {
			runLog.Error("pprof server shutdown error", logger.NewField("error", shutdownErr))
		} else {
			runLog.Info("pprof server stopped")
		}
	}

	stopOngoingGracefully()
	if err != nil || shutdownErr != nil {
		runLog.Info("Graceful shutdown timeout, forcing close")
		time.Sleep(shutdownHardPeriod)
	}

	businessApp.BackgroundWorkers.Wait()

	runLog.Info("Server stopped")
	return nil
}

// newJournal - без брокеров события не публикуются, push уведомления работают как обычно.
func newJournal(ctx context.Context, log logger.Logger, cfg *config.Kafka) (application.Journal, error) {
	if !cfg.JournalEnabled() {
		log.Warn("KAFKA_BROKERS is empty, order events journal disabled")
		return order_events.NopJournal{}, nil
	}

	producer, err := kafka.NewAsyncProducer(ctx, log, cfg)
	if err != nil {
		return nil, err
	}
	return order_events.New(log.With(logger.NewField("component", "order_events")), producer, cfg.OrderEventsTopic), nil
}

func initRouter(
	ongoingCtx context.Context,
	log logger.Logger,
	isShuttingDown *atomic.Bool,
	app *application.Application,
	database healthcheck_head.Pinger,
	verifier auth.Verifier,
	cfg *config.Config,
) http.Handler {
	router := mux.NewRouter()

	router.Use(graceful_shutdown.Middleware(log, isShuttingDown, ongoingCtx))
	router.Use(metrics.Middleware(log))

	router.Handle("/metrics", promhttp.Handler())
	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown, database)).Methods("HEAD")
	router.Handle("/ping", ping_get.New(log, app.Registry)).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	api.Use(timeout.Middleware(cfg.Server.RequestTimeout))
	api.Use(auth.Middleware(log, verifier))
	api.Use(rate_limiter.Middleware(log, cfg.Server.RateLimiterQPS, token_bucket.NewTokenBucket(cfg.Server.RateLimiterBurst, float64(cfg.Server.RateLimiterQPS))))

	api.Handle("/orders", orders_post.New(log, app.ServiceOrder)).Methods("POST")
	api.Handle("/orders", orders_get.New(log, app.ServiceOrder)).Methods("GET")
	// до /orders/{id}, иначе "available" уйдёт в id
	api.Handle("/orders/available", orders_available_get.New(log, app.ServiceOrder)).Methods("GET")
	api.Handle("/orders/{id}", order_get.New(log, app.ServiceOrder)).Methods("GET")
	api.Handle("/orders/{id}/status", order_status_put.New(log, app.ServiceOrder)).Methods("PUT")
	api.Handle("/orders/{id}/assign-driver", order_assign_driver_post.New(log, app.ServiceOrder)).Methods("POST")
	api.Handle("/drivers/location", driver_location_post.New(log, app.ServiceDriver)).Methods("POST")
	api.Handle("/analytics", analytics_get.New(log, app.ServiceOrder)).Methods("GET")

	// /ws живёт дольше любого запроса, поэтому без timeout middleware
	subscribeHandler := subscribe.New(log, app.Registry, subscribe.Config{
		SendTimeout: cfg.Registry.SendTimeout,
		PongWait:    2 * cfg.Tasks.HeartbeatInterval,
	})
	router.Handle("/ws", auth.Middleware(log, verifier)(subscribeHandler)).Methods("GET")

	return router
}

func initPprofRouter(isShuttingDown *atomic.Bool) http.Handler {
	router := mux.NewRouter()

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown, nopPinger{})).Methods("HEAD")
	router.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)

	return router
}

type nopPinger struct{}

func (nopPinger) Ping(context.Context) error { return nil }
