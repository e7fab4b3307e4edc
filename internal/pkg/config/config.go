package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultTaxRate               = 0.08
	defaultCurrency              = "usd"
	defaultSendTimeout           = 5 * time.Second
	defaultBroadcastConcurrency  = 16
	defaultHeartbeatInterval     = 30 * time.Second
	defaultSystemMetricsInterval = 5 * time.Second
	defaultOrderEventsTopic      = "order-events"
)

type (
	Tasks struct {
		HeartbeatInterval     time.Duration
		SystemMetricsInterval time.Duration
	}

	HTTPServer struct {
		Port             string
		RequestTimeout   time.Duration // middleware timeout
		RateLimiterQPS   int           // middleware  rate limiter capacity
		RateLimiterBurst int           // middlewarerate limiter burst/refill
		PprofEnabled     bool
		PprofPort        string
		LogLevel         string
	}

	Database struct {
		Host     string
		Port     string
		User     string
		Password string
		DBName   string
		SSLMode  string
		Migrate  bool
		MaxConns int32
	}

	Redis struct {
		Addr     string
		Password string
		DB       int
	}

	Kafka struct {
		Brokers          []string
		OrderEventsTopic string
		Sarama           Sarama
	}

	Sarama struct {
		Version string
	}

	Stripe struct {
		SecretKey string
	}

	Auth struct {
		JWTSecret string
	}

	Pricing struct {
		TaxRate  float64
		Currency string
	}

	Registry struct {
		SendTimeout          time.Duration
		BroadcastConcurrency int
	}

	Config struct {
		Tasks    Tasks
		Server   HTTPServer
		Database Database
		Redis    Redis
		Kafka    Kafka
		Stripe   Stripe
		Auth     Auth
		Pricing  Pricing
		Registry Registry
	}
)

// JournalEnabled - публикация событий в Kafka включается списком брокеров.
func (k Kafka) JournalEnabled() bool {
	return len(k.Brokers) > 0
}

func Load() (*Config, error) {
	cfg, err := loadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("environment loading: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return cfg, nil
}

func loadFromEnv() (*Config, error) {
	heartbeatInterval, err := osGetEnvDuration("BACKGROUND_HEARTBEAT_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	systemMetricsInterval, err := osGetEnvDuration("BACKGROUND_SYSTEM_METRICS_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	requestTimeout, err := osGetEnvDuration("MIDDLEWARE_REQUEST_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterQPS, err := osGetInt("MIDDLEWARE_RATE_LIMIT_QPS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterBurst, err := osGetInt("MIDDLEWARE_RATE_LIMIT_BURST")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	pprofEnabled, err := osGetBool("PPROF_ENABLED")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	migrate, err := osGetBool("POSTGRES_MIGRATE")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	maxConns, err := osGetInt("POSTGRES_MAX_CONNS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	redisDB, err := osGetInt("REDIS_DB")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	taxRate, err := osGetFloat("PRICING_TAX_RATE")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	sendTimeout, err := osGetEnvDuration("REGISTRY_SEND_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	broadcastConcurrency, err := osGetInt("REGISTRY_BROADCAST_CONCURRENCY")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	cfg := &Config{
		Tasks: Tasks{
			HeartbeatInterval:     heartbeatInterval,
			SystemMetricsInterval: systemMetricsInterval,
		},
		Server: HTTPServer{
			Port:             os.Getenv("PORT"),
			RequestTimeout:   requestTimeout,
			RateLimiterQPS:   rateLimiterQPS,
			RateLimiterBurst: rateLimiterBurst,
			PprofEnabled:     pprofEnabled,
			PprofPort:        os.Getenv("PPROF_PORT"),
			LogLevel:         os.Getenv("LOG_LEVEL"),
		},
		Database: Database{
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     os.Getenv("POSTGRES_PORT"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DBName:   os.Getenv("POSTGRES_DB"),
			SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
			Migrate:  migrate,
			MaxConns: int32(maxConns), //nolint:gosec // проверяется в validateConfig
		},
		Redis: Redis{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Kafka: Kafka{
			Brokers:          osGetList("KAFKA_BROKERS"),
			OrderEventsTopic: os.Getenv("KAFKA_ORDER_EVENTS_TOPIC"),
			Sarama: Sarama{
				Version: os.Getenv("KAFKA_SARAMA_VERSION"),
			},
		},
		Stripe: Stripe{
			SecretKey: os.Getenv("STRIPE_SECRET_KEY"),
		},
		Auth: Auth{
			JWTSecret: os.Getenv("JWT_SECRET"),
		},
		Pricing: Pricing{
			TaxRate:  taxRate,
			Currency: strings.ToLower(os.Getenv("PRICING_CURRENCY")),
		},
		Registry: Registry{
			SendTimeout:          sendTimeout,
			BroadcastConcurrency: broadcastConcurrency,
		},
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Tasks.HeartbeatInterval == 0 {
		cfg.Tasks.HeartbeatInterval = defaultHeartbeatInterval
	}
	if cfg.Tasks.SystemMetricsInterval == 0 {
		cfg.Tasks.SystemMetricsInterval = defaultSystemMetricsInterval
	}
	if cfg.Pricing.TaxRate == 0 {
		cfg.Pricing.TaxRate = defaultTaxRate
	}
	if cfg.Pricing.Currency == "" {
		cfg.Pricing.Currency = defaultCurrency
	}
	if cfg.Registry.SendTimeout == 0 {
		cfg.Registry.SendTimeout = defaultSendTimeout
	}
	if cfg.Registry.BroadcastConcurrency == 0 {
		cfg.Registry.BroadcastConcurrency = defaultBroadcastConcurrency
	}
	if cfg.Kafka.OrderEventsTopic == "" {
		cfg.Kafka.OrderEventsTopic = defaultOrderEventsTopic
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server port is required (set via PORT env variable)")
	}
	if cfg.Server.RequestTimeout == time.Duration(0) {
		return errors.New("MIDDLEWARE_REQUEST_TIMEOUT is required")
	}
	if cfg.Server.RateLimiterQPS == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_QPS is required")
	}
	if cfg.Server.RateLimiterBurst == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_BURST is required")
	}
	if cfg.Server.PprofPort == "" && cfg.Server.PprofEnabled {
		return errors.New("PprofPort is required (set via PPROF_PORT env variable)")
	}

	if cfg.Database.Host == "" {
		return errors.New("POSTGRES_HOST is required")
	}
	if cfg.Database.Port == "" {
		return errors.New("POSTGRES_PORT is required")
	}
	if cfg.Database.User == "" {
		return errors.New("POSTGRES_USER is required")
	}
	if cfg.Database.Password == "" {
		return errors.New("POSTGRES_PASSWORD is required")
	}
	if cfg.Database.DBName == "" {
		return errors.New("POSTGRES_DB is required")
	}
	if cfg.Database.SSLMode == "" {
		return errors.New("POSTGRES_SSLMODE is required")
	}

	if cfg.Database.MaxConns < 0 {
		return errors.New("POSTGRES_MAX_CONNS must be positive")
	}

	if cfg.Redis.Addr == "" {
		return errors.New("REDIS_ADDR is required")
	}

	if cfg.Kafka.JournalEnabled() && cfg.Kafka.Sarama.Version == "" {
		return errors.New("KAFKA_SARAMA_VERSION is required when KAFKA_BROKERS is set")
	}

	if cfg.Stripe.SecretKey == "" {
		return errors.New("STRIPE_SECRET_KEY is required")
	}
	if cfg.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}

	if cfg.Pricing.TaxRate < 0 || cfg.Pricing.TaxRate >= 1 {
		return fmt.Errorf("PRICING_TAX_RATE must be in [0, 1), got %v", cfg.Pricing.TaxRate)
	}
	if len(cfg.Pricing.Currency) != 3 {
		return fmt.Errorf("PRICING_CURRENCY must be an ISO 4217 code, got %q", cfg.Pricing.Currency)
	}
	if cfg.Registry.BroadcastConcurrency < 0 {
		return errors.New("REGISTRY_BROADCAST_CONCURRENCY must be positive")
	}

	return nil
}

func osGetInt(s string) (int, error) {
	val := os.Getenv(s)
	if val == "" {
		return 0, nil
	}

	res, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid int format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetFloat(s string) (float64, error) {
	val := os.Getenv(s)
	if val == "" {
		return 0, nil
	}

	res, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetEnvDuration(s string) (time.Duration, error) {
	val := os.Getenv(s)
	if val == "" {
		return time.Duration(0), nil
	}

	res, err := time.ParseDuration(val)
	if err != nil {
		return time.Duration(0), fmt.Errorf("invalid duration format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetBool(s string) (bool, error) {
	val := os.Getenv(s)
	if val == "" {
		return false, nil
	}

	res, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid bool format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

// osGetList разбирает список через запятую, пустые элементы отбрасываются.
func osGetList(s string) []string {
	val := os.Getenv(s)
	if val == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
