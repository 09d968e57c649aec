package services

import (
	"github.com/ghuser/simplemarket/pkg/app"
	"github.com/ghuser/simplemarket/pkg/cache"
	"github.com/ghuser/simplemarket/pkg/logger"
	"github.com/ghuser/simplemarket/pkg/telemetry"
	"github.com/ghuser/simplemarket/services/item/domain/repositories"
	"github.com/ghuser/simplemarket/services/item/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Item     *ItemService
	Interest *InterestService
}

// New wires all item application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	var itemCache *cache.ItemCache
	if a.Redis != nil {
		itemCache = cache.NewItemCache(a.Redis)
	}
	return NewWithRepositories(
		postgres.NewItemRepository(a.Db, a.EventBus),
		postgres.NewInterestRepository(a.Db),
		itemCache, a.Metrics, a.Logger,
	)
}

// NewWithRepositories wires the services over explicit repositories.
// Tests pass the in-memory store here.
func NewWithRepositories(items repositories.ItemRepository, interests repositories.InterestRepository, itemCache *cache.ItemCache, metrics *telemetry.MarketMetrics, log logger.Logger) *Services {
	return &Services{
		Item:     NewItemService(items, itemCache, metrics, log),
		Interest: NewInterestService(interests, items, metrics, log),
	}
}
