package app

import (
	"github.com/gorilla/sessions"

	"github.com/ghuser/simplemarket/pkg/cache"
	"github.com/ghuser/simplemarket/pkg/config"
	"github.com/ghuser/simplemarket/pkg/database"
	"github.com/ghuser/simplemarket/pkg/events"
	"github.com/ghuser/simplemarket/pkg/logger"
	"github.com/ghuser/simplemarket/pkg/telemetry"
	"github.com/ghuser/simplemarket/pkg/workflows"
)

// Application holds shared infrastructure dependencies for all bounded contexts.
// Pass it to each context's Routes call during server initialization.
//
// Logging: app.Logger is backed by a trace-aware handler. Use the context methods
// and trace_id, span_id and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "item listed", "item_id", id)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Config         *config.Config
	Db             *database.Database
	Logger         logger.Logger
	EventBus       *events.EventBus
	Redis          *cache.RedisClient
	TemporalClient *workflows.TemporalClient // nil unless TEMPORAL_ENABLED
	SessionStore   sessions.Store           // nil in the worker process
	Metrics        *telemetry.MarketMetrics // nil records nothing
}
