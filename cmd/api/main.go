package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/hotel-maintenance/internal/api/http"
	"github.com/spec-kit/hotel-maintenance/internal/api/http/handlers"
	"github.com/spec-kit/hotel-maintenance/internal/config"
	"github.com/spec-kit/hotel-maintenance/internal/events"
	"github.com/spec-kit/hotel-maintenance/internal/observability"
	"github.com/spec-kit/hotel-maintenance/internal/persistence"
	"github.com/spec-kit/hotel-maintenance/internal/repository"
	"github.com/spec-kit/hotel-maintenance/internal/service"
	"github.com/spec-kit/hotel-maintenance/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	snapshots, pingers, cleanup, err := buildSnapshotStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to init snapshot store", zap.Error(err))
	}
	defer cleanup()

	dispatcher := events.NewInMemoryDispatcher()

	publisher, err := worker.StartBrokerPublisher(cfg.Broker, dispatcher, logger)
	if err != nil {
		logger.Warn("broker publisher unavailable", zap.Error(err))
	}
	defer publisher.Close()

	ticketService := service.NewTicketService(service.TicketDependencies{
		Snapshots:  snapshots,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	restored, err := ticketService.Load(ctx)
	if err != nil {
		logger.Fatal("failed to load ticket collection", zap.Error(err))
	}
	if restored {
		logger.Info("no usable snapshot found, restored seed dataset")
	}

	analyticsService := service.NewAnalyticsService(ticketService, cfg.Analytics, nil)
	scenarioService := service.NewScenarioService(ticketService, logger)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pingers),
		Tickets:   handlers.NewTicketsHandler(ticketService),
		Analytics: handlers.NewAnalyticsHandler(analyticsService),
		Scenarios: handlers.NewScenariosHandler(scenarioService),
		Export:    handlers.NewExportHandler(ticketService),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

// buildSnapshotStore selects the persistence backend for the ticket
// snapshot per configuration, returning the health pingers for the
// backends actually in use.
func buildSnapshotStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.SnapshotStore, map[string]handlers.Pinger, func(), error) {
	pingers := map[string]handlers.Pinger{}
	cleanup := func() {}

	switch cfg.Snapshot.Backend {
	case "redis":
		redis := persistence.NewRedis(cfg.Redis, logger)
		pingers["redis"] = redis
		return repository.NewRedisSnapshotStore(redis.Client, cfg.Snapshot.RedisKey), pingers, redis.Close, nil

	case "postgres":
		if cfg.Postgres.DSN == "" {
			return nil, nil, cleanup, fmt.Errorf("POSTGRES_DSN required for postgres snapshot backend")
		}
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, nil, cleanup, err
		}
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.Pool, logger); err != nil {
				pg.Close()
				return nil, nil, cleanup, err
			}
		}
		pingers["postgres"] = pg
		return repository.NewPostgresSnapshotStore(pg.Pool), pingers, pg.Close, nil

	default:
		logger.Info("using file snapshot backend", zap.String("path", cfg.Snapshot.FilePath))
		return repository.NewFileSnapshotStore(cfg.Snapshot.FilePath), pingers, cleanup, nil
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
