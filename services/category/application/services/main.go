package services

import (
	"time"

	"github.com/ghuser/simplemarket/pkg/app"
	"github.com/ghuser/simplemarket/services/category/infrastructure/persistence/postgres"
)

const defaultListTTL = 5 * time.Minute

// Services is the application-layer service container for the category context.
type Services struct {
	Category *CategoryService
}

// New wires the category services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	ttl := defaultListTTL
	if a.Config != nil && a.Config.CategoryCacheTTL > 0 {
		ttl = a.Config.CategoryCacheTTL
	}
	return &Services{
		Category: NewCategoryService(postgres.NewCategoryRepository(a.Db), ttl, a.Logger),
	}
}
