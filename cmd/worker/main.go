package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"go.temporal.io/sdk/worker"

	"github.com/ghuser/simplemarket/pkg/app"
	"github.com/ghuser/simplemarket/pkg/cache"
	"github.com/ghuser/simplemarket/pkg/config"
	"github.com/ghuser/simplemarket/pkg/database"
	"github.com/ghuser/simplemarket/pkg/events"
	"github.com/ghuser/simplemarket/pkg/logger"
	"github.com/ghuser/simplemarket/pkg/telemetry"
	"github.com/ghuser/simplemarket/pkg/workflows"
	itemSvcs "github.com/ghuser/simplemarket/services/item/application/services"
	itemWorkflows "github.com/ghuser/simplemarket/services/item/application/workflows"
	itemEvents "github.com/ghuser/simplemarket/services/item/domain/events"
	"github.com/ghuser/simplemarket/services/item/infrastructure/persistence/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg).With("process", "worker")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	otelProvider, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelProvider.Shutdown(context.Background()) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(pool.DB(), events.OptionsFromConfig(cfg, false, itemEvents.Topics()...), log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	appConfig := &app.Application{
		Config:   cfg,
		Db:       pool,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
		Metrics:  otelProvider.Metrics,
	}

	subs := &subscribers{
		items:     itemSvcs.New(appConfig).Item,
		taskQueue: cfg.TemporalTaskQueue,
		log:       log,
	}

	if cfg.TemporalEnabled {
		temporalClient, err := workflows.NewTemporalClient(ctx, cfg.TemporalHostPort, cfg.TemporalNamespace, cfg.TemporalTaskQueue, log)
		if err != nil {
			log.Error("failed to initialize temporal client", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		defer temporalClient.Close()
		appConfig.TemporalClient = temporalClient
		subs.starter = temporalClient.Client

		w := worker.New(temporalClient.Client, cfg.TemporalTaskQueue, worker.Options{})
		itemWorkflows.Register(w, &itemWorkflows.Activities{
			Interests: postgres.NewInterestRepository(pool),
			Notifier:  itemWorkflows.LogNotifier{Log: log},
		})
		if err := w.Start(); err != nil {
			log.Error("failed to start temporal worker", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		defer w.Stop()
		log.Info("temporal worker started", "task_queue", cfg.TemporalTaskQueue)
	}

	if err := registerSubscribers(ctx, appConfig, subs); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	cancel()

	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// registerSubscribers subscribes every item topic and drains subscriber errors
// in the background so the channels never block.
func registerSubscribers(ctx context.Context, a *app.Application, subs *subscribers) error {
	topics := subs.topics()
	names := make([]string, 0, len(topics))
	for topic, handler := range topics {
		errCh, err := a.EventBus.Subscribe(ctx, topic, handler)
		if err != nil {
			return err
		}
		go func() {
			for err := range errCh {
				a.Logger.ErrorContext(ctx, "subscriber error", "topic", topic, "error", err)
			}
		}()
		names = append(names, topic)
	}

	a.Logger.Info("event subscribers registered", "topics", names)
	return nil
}
