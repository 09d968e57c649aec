package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/ghuser/simplemarket/pkg/app"
	"github.com/ghuser/simplemarket/pkg/auth"
	"github.com/ghuser/simplemarket/pkg/logger"
	"github.com/ghuser/simplemarket/services/category/application/handlers"
	appsvcs "github.com/ghuser/simplemarket/services/category/application/services"
)

// CategoryRoutes registers category endpoints on the provided chi router.
func CategoryRoutes(r chi.Router, a *app.Application, svcs *appsvcs.Services) {
	Routes(r, svcs, a.SessionStore, a.Logger)
}

// Routes mounts the endpoints over an explicit service container.
func Routes(r chi.Router, svcs *appsvcs.Services, store sessions.Store, log logger.Logger) {
	h := handlers.NewCategoryHandler(svcs)
	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.With(auth.RequireAuth(store, log)).Post("/", h.Create)
	})
}
