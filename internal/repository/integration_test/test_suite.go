package integration_test

import (
	"context"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"orderflow/internal/pkg/config"
	"orderflow/internal/pkg/postgres"
	"orderflow/pkg/logger/zap_adapter"
	"orderflow/pkg/querier"
	"orderflow/pkg/tx"
)

const (
	postgresImage = "postgres:16-alpine"
	redisImage    = "redis:7-alpine"

	dbName     = "orderflow_test"
	dbUser     = "orderflow"
	dbPassword = "orderflow"
)

var (
	querierInstance *querier.Querier
	txManager       *tx.Manager
	querierOnce     sync.Once

	redisInstance *goredis.Client
	redisOnce     sync.Once
)

// GetQuerier поднимает контейнер Postgres один раз на пакет и накатывает миграции.
func GetQuerier() *querier.Querier {
	querierOnce.Do(func() {
		ctx := context.Background()

		container, err := tcpostgres.Run(ctx,
			postgresImage,
			tcpostgres.WithDatabase(dbName),
			tcpostgres.WithUsername(dbUser),
			tcpostgres.WithPassword(dbPassword),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(60*time.Second),
			),
		)
		if err != nil {
			log.Fatalf("failed to start postgres container: %v", err)
		}

		host, err := container.Host(ctx)
		if err != nil {
			log.Fatalf("failed to resolve postgres host: %v", err)
		}
		port, err := container.MappedPort(ctx, "5432/tcp")
		if err != nil {
			log.Fatalf("failed to resolve postgres port: %v", err)
		}

		cfg := &config.Database{
			Host:     host,
			Port:     port.Port(),
			User:     dbUser,
			Password: dbPassword,
			DBName:   dbName,
			SSLMode:  "disable",
		}

		zapLogger := zap_adapter.NewNop()

		connPool, err := postgres.NewConnPool(ctx, zapLogger, cfg)
		if err != nil {
			log.Fatalf("failed to connect to postgres: %v", err)
		}

		if err := postgres.Migrate(ctx, zapLogger, connPool); err != nil {
			log.Fatalf("failed to apply migrations: %v", err)
		}

		querierInstance = querier.New(connPool, pgxv5.DefaultCtxGetter)
		txManager = tx.New(connPool)
	})

	return querierInstance
}

func GetTxManager() *tx.Manager {
	GetQuerier()
	return txManager
}

// GetRedis поднимает контейнер Redis один раз на пакет.
func GetRedis() *goredis.Client {
	redisOnce.Do(func() {
		ctx := context.Background()

		container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        redisImage,
				ExposedPorts: []string{"6379/tcp"},
				WaitingFor:   wait.ForLog("Ready to accept connections"),
			},
			Started: true,
		})
		if err != nil {
			log.Fatalf("failed to start redis container: %v", err)
		}

		endpoint, err := container.Endpoint(ctx, "")
		if err != nil {
			log.Fatalf("failed to resolve redis endpoint: %v", err)
		}

		redisInstance = goredis.NewClient(&goredis.Options{Addr: endpoint})
	})

	return redisInstance
}

func SetupDB(t *testing.T, setupSql string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if setupSql == "" {
		GetQuerier()
		return
	}

	_, err := GetQuerier().Exec(ctx, setupSql)

	require.NoError(t, err)
}

func TeardownDB(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := GetQuerier().Exec(ctx, `
		TRUNCATE TABLE order_status_events, orders, menu_items, restaurants RESTART IDENTITY CASCADE;
	`)
	require.NoError(t, err)
}
