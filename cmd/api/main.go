package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	_ "github.com/ghuser/simplemarket/docs/swagger"
	"github.com/ghuser/simplemarket/pkg/app"
	"github.com/ghuser/simplemarket/pkg/auth"
	"github.com/ghuser/simplemarket/pkg/cache"
	"github.com/ghuser/simplemarket/pkg/config"
	"github.com/ghuser/simplemarket/pkg/database"
	"github.com/ghuser/simplemarket/pkg/errhttp"
	"github.com/ghuser/simplemarket/pkg/events"
	"github.com/ghuser/simplemarket/pkg/httpx"
	"github.com/ghuser/simplemarket/pkg/logger"
	"github.com/ghuser/simplemarket/pkg/telemetry"
	"github.com/ghuser/simplemarket/pkg/workflows"
	accountApi "github.com/ghuser/simplemarket/services/account/application/api"
	categoryApi "github.com/ghuser/simplemarket/services/category/application/api"
	categorySvcs "github.com/ghuser/simplemarket/services/category/application/services"
	itemApi "github.com/ghuser/simplemarket/services/item/application/api"
	itemEvents "github.com/ghuser/simplemarket/services/item/domain/events"
)

// @title					SimpleMarket API
// @version				1.0
// @description			Marketplace API: listings, purchase interest, categories and accounts.
// @contact.name			API Support
// @license.name			MIT
// @license.url			https://opensource.org/licenses/MIT
// @host					localhost:8080
// @BasePath				/api
// @schemes				http https
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

	log := logger.New(cfg)
	errhttp.SetProduction(cfg.IsProduction())

	ctx := context.Background()
	otelProvider, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelProvider.Shutdown(ctx) //nolint:errcheck

	// Crash reporting is optional: log and continue on failure.
	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic // intentional: startup failure, deferred flushes are best-effort
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(pool.DB(), events.OptionsFromConfig(cfg, true, itemEvents.Topics()...), log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	if err := eventBus.StartForwarder(ctx); err != nil {
		log.Error("failed to start event forwarder", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic // intentional: startup failure
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	checks := httpx.HealthChecks{
		"database": pool,
		"redis":    redisClient,
	}

	var temporalClient *workflows.TemporalClient
	if cfg.TemporalEnabled {
		temporalClient, err = workflows.NewTemporalClient(ctx, cfg.TemporalHostPort, cfg.TemporalNamespace, cfg.TemporalTaskQueue, log)
		if err != nil {
			log.Error("failed to initialize temporal client", "error", err)
			os.Exit(1) //nolint:gocritic // intentional: startup failure
		}
		defer temporalClient.Close()
		checks["temporal"] = temporalClient
	}

	sessionStore := auth.NewSessionStore(
		redisClient.Client(),
		[]byte(cfg.SessionAuthKey),
		[]byte(cfg.SessionEncryptionKey),
		cfg.IsProduction(),
	)
	log.Info("session store initialized", "backend", "redis")

	appConfig := &app.Application{
		Config:         cfg,
		Db:             pool,
		Logger:         log,
		EventBus:       eventBus,
		Redis:          redisClient,
		TemporalClient: temporalClient,
		SessionStore:   sessionStore,
		Metrics:        otelProvider.Metrics,
	}

	categories := categorySvcs.New(appConfig)
	if cfg.SeedCategories {
		n, err := categories.Category.SeedDefaults(ctx)
		if err != nil {
			log.Error("failed to seed categories", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		if n > 0 {
			log.Info("default categories seeded", "count", n)
		}
	}

	r := httpx.NewRouter(
		httpx.ServerConfig{
			ServiceName:        cfg.ServiceName,
			IsDevelopment:      cfg.Environment == config.EnvDevelopment,
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		},
		logger.Middleware(log),
		logger.Recovery(log),
		telemetry.SentryMiddleware(),
		otelhttp.NewMiddleware(cfg.ServiceName),
	)

	r.Get("/health", httpx.HealthHandler(checks))
	r.Get("/metrics", otelProvider.MetricsHandler.ServeHTTP)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var routeErr error
	r.Route("/api", func(r chi.Router) {
		routeErr = registerRoutes(r, appConfig, categories)
	})
	if routeErr != nil {
		log.Error("failed to register routes", "error", routeErr)
		os.Exit(1) //nolint:gocritic
	}

	srv := httpx.NewServer(cfg.HTTPAddr, r)

	go func() {
		log.Info("server listening", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// registerRoutes mounts all service routes under /api.
func registerRoutes(r chi.Router, a *app.Application, categories *categorySvcs.Services) error {
	itemApi.ItemRoutes(r, a)
	categoryApi.CategoryRoutes(r, a, categories)
	return accountApi.AccountRoutes(r, a)
}
