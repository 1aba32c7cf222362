package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ostapkoval/cinechain/internal/config"
	"github.com/ostapkoval/cinechain/internal/postgres"
	redisx "github.com/ostapkoval/cinechain/internal/redis"
	postgresrepo "github.com/ostapkoval/cinechain/internal/repository/postgres"
	redisrepo "github.com/ostapkoval/cinechain/internal/repository/redis"
	"github.com/ostapkoval/cinechain/internal/service"
	"github.com/ostapkoval/cinechain/internal/service/query"
	"github.com/ostapkoval/cinechain/internal/service/schedule"
	httpgin "github.com/ostapkoval/cinechain/internal/transport/http/gin"
)

type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	httpServer *http.Server
	cache      *redisrepo.Cache
	pubsub     *redisx.SchedulePubSub
}

func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.Postgres.User,
		cfg.Postgres.Password,
		cfg.Postgres.Host,
		cfg.Postgres.Port,
		cfg.Postgres.Name,
		cfg.Postgres.SSLMode,
	)

	pgxPool, err := postgres.New(context.Background(), postgres.Config{DSN: dsn})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	// Schema is idempotent, applied on every start.
	if err := postgresrepo.Migrate(context.Background(), pgxPool); err != nil {
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	rdb, err := redisx.New(context.Background(), redisx.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	store := postgresrepo.NewStore(pgxPool)
	cache := redisrepo.New(rdb)
	pubsub := redisx.NewSchedulePubSub(rdb)
	limiter := redisrepo.NewSlidingWindowLimiter(
		rdb,
		redisx.KeyRateLimit("sell"),
		cfg.Sales.RateLimit,
		cfg.Sales.RateWindow,
	)
	idempotencyStore := redisrepo.NewIdempotencyStore(rdb, cfg.Sales.IdempotencyTTL)

	services := service.NewServices(store, cache, pubsub, limiter, service.Config{
		Schedule: schedule.Config{},
		Query:    query.Config{},
	})

	router := httpgin.NewRouter(services, idempotencyStore, logger)

	return &App{
		cfg:    cfg,
		logger: logger,
		httpServer: &http.Server{
			Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler: router,
		},
		cache:  cache,
		pubsub: pubsub,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("HTTP server listening", "host", a.cfg.Server.Host, "port", a.cfg.Server.Port)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	})

	// Schedule changes published by other instances invalidate the local
	// projections too.
	g.Go(func() error {
		err := a.pubsub.Subscribe(gCtx, func(ctx context.Context, sessionID int64) {
			_ = a.cache.InvalidateSchedule(ctx)
			if sessionID != 0 {
				_ = a.cache.InvalidateSession(ctx, sessionID)
			}
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("schedule subscription failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		a.logger.Info("shutting down HTTP server")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return a.httpServer.Shutdown(ctx)
	})

	return g.Wait()
}
