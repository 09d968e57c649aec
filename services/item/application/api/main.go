package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/ghuser/simplemarket/pkg/app"
	"github.com/ghuser/simplemarket/pkg/auth"
	"github.com/ghuser/simplemarket/pkg/logger"
	"github.com/ghuser/simplemarket/services/item/application/handlers"
	appsvcs "github.com/ghuser/simplemarket/services/item/application/services"
)

// ItemRoutes registers item and interest endpoints on the provided chi router.
func ItemRoutes(r chi.Router, a *app.Application) {
	Routes(r, appsvcs.New(a), a.SessionStore, a.Logger)
}

// Routes mounts the endpoints over an explicit service container.
func Routes(r chi.Router, svcs *appsvcs.Services, store sessions.Store, log logger.Logger) {
	requireAuth := auth.RequireAuth(store, log)
	optionalAuth := auth.OptionalAuth(store)
	interest := handlers.NewInterestHandler(svcs)

	r.Route("/items", func(r chi.Router) {
		r.Get("/", handlers.NewListItemsHandler(svcs).Execute)
		r.With(requireAuth).Post("/", handlers.NewPostItemHandler(svcs).Execute)
		r.With(requireAuth).Get("/mine", handlers.NewListMyItemsHandler(svcs).Execute)

		r.Route("/{id}", func(r chi.Router) {
			r.With(optionalAuth).Get("/", handlers.NewGetItemHandler(svcs).Execute)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Put("/", handlers.NewPutItemHandler(svcs).Execute)
				r.Delete("/", handlers.NewDeleteItemHandler(svcs).Execute)
				r.Post("/sold", handlers.NewPostItemSoldHandler(svcs).Execute)
				r.Post("/interest", interest.Mark)
				r.Delete("/interest", interest.Remove)
				r.Get("/interest", interest.Status)
				r.Get("/interests", handlers.NewListItemInterestsHandler(svcs).Execute)
			})
		})
	})

	r.Get("/sellers/{id}/items", handlers.NewListSellerItemsHandler(svcs).Execute)
	r.With(requireAuth).Get("/interests/mine", handlers.NewListMyInterestsHandler(svcs).Execute)
}
