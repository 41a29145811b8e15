// Package app wires together all dependencies and runs the service.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/quickeats/quickeats/internal/config"
	"github.com/quickeats/quickeats/internal/event"
	"github.com/quickeats/quickeats/internal/geocode"
	handler "github.com/quickeats/quickeats/internal/handler/http"
	"github.com/quickeats/quickeats/internal/repository/postgres"
	redisrepo "github.com/quickeats/quickeats/internal/repository/redis"
	"github.com/quickeats/quickeats/internal/service"
	"github.com/quickeats/quickeats/migrations"
	"github.com/quickeats/quickeats/pkg/database"
	"github.com/quickeats/quickeats/pkg/health"
	"github.com/quickeats/quickeats/pkg/httpclient"
	pkgkafka "github.com/quickeats/quickeats/pkg/kafka"
)

// App holds the long-lived resources of the service.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	pool       *pgxpool.Pool
	rdb        *redis.Client
	producer   *pkgkafka.Producer
	httpServer *http.Server
}

// NewApp creates the application, connecting to all backing stores and
// building the dependency graph.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pgCfg := cfg.PostgresConfig()
	pool, err := database.NewPostgresPool(ctx, &pgCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	if err := database.RunMigrations(ctx, pool, migrations.FS, logger); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	database.RegisterPoolMetrics(pool, cfg.ServiceName)

	rdb, err := database.NewRedisClient(ctx, cfg.RedisConfig())
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("connected to Redis",
		slog.String("host", cfg.Redis.Host),
		slog.Int("db", cfg.Redis.DB),
	)

	producer := pkgkafka.NewProducer(pkgkafka.ProducerConfig{
		Brokers: cfg.Kafka.Brokers,
	}, logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.Kafka.Brokers))

	// Geocoding goes through a circuit-broken HTTP client so a degraded
	// provider cannot stall address writes.
	geocodeClient := httpclient.NewCircuitBreakerClient(
		httpclient.New(httpclient.Config{
			Timeout:         cfg.Geocode.Timeout,
			MaxRetries:      1,
			RetryWaitMin:    500 * time.Millisecond,
			RetryWaitMax:    2 * time.Second,
			MaxConnsPerHost: 10,
		}),
		httpclient.DefaultCircuitBreakerConfig("geocode"),
		logger,
	)
	resolver := geocode.NewHTTPResolver(geocodeClient, geocode.Config{
		BaseURL:     cfg.Geocode.BaseURL,
		Timeout:     cfg.Geocode.Timeout,
		MinInterval: cfg.Geocode.MinInterval,
		UserAgent:   cfg.Geocode.UserAgent,
	}, logger)

	// Repositories.
	addressRepo := postgres.NewAddressRepository(pool)
	restaurantRepo := postgres.NewRestaurantRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	pointsRepo := postgres.NewPointsRepository(pool)
	reviewRepo := postgres.NewReviewRepository(pool)
	cartRepo := redisrepo.NewCartRepository(rdb, cfg.Cart.TTL)

	// Services.
	eventProducer := event.NewProducer(producer, logger)
	eligibilitySvc := service.NewEligibilityService(logger)
	pointsSvc := service.NewPointsService(pointsRepo, eventProducer, logger)
	addressSvc := service.NewAddressService(addressRepo, resolver, logger)
	cartSvc := service.NewCartService(cartRepo, productRepo, restaurantRepo, logger)
	settlementSvc := service.NewSettlementService(
		orderRepo, addressRepo, restaurantRepo, productRepo, cartRepo,
		eligibilitySvc, pointsSvc, eventProducer, logger,
	)
	reviewSvc := service.NewReviewService(reviewRepo, orderRepo, restaurantRepo, pointsSvc, eventProducer, logger)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	healthHandler.Register("redis", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
	healthHandler.Register("kafka", producer.Ping)

	router := handler.NewRouter(handler.Handlers{
		Addresses:   handler.NewAddressHandler(addressSvc, logger),
		Carts:       handler.NewCartHandler(cartSvc, logger),
		Orders:      handler.NewOrderHandler(settlementSvc, logger),
		Restaurants: handler.NewRestaurantHandler(restaurantRepo, productRepo, addressSvc, eligibilitySvc, reviewSvc, logger),
		Points:      handler.NewPointsHandler(pointsSvc, logger),
		Reviews:     handler.NewReviewHandler(reviewSvc, logger),
	}, healthHandler, logger)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:        cfg,
		logger:     logger,
		pool:       pool,
		rdb:        rdb,
		producer:   producer,
		httpServer: httpServer,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
	}

	if err := a.rdb.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
	}

	a.pool.Close()

	a.logger.Info("application shutdown complete")
	return nil
}
