package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/ghuser/simplemarket/pkg/app"
	"github.com/ghuser/simplemarket/pkg/auth"
	"github.com/ghuser/simplemarket/pkg/logger"
	"github.com/ghuser/simplemarket/services/account/application/handlers"
	appsvcs "github.com/ghuser/simplemarket/services/account/application/services"
)

// AccountRoutes registers account endpoints on the provided chi router.
func AccountRoutes(r chi.Router, a *app.Application) error {
	svcs, err := appsvcs.New(a)
	if err != nil {
		return err
	}
	Routes(r, svcs, a.SessionStore, a.Logger)
	return nil
}

// Routes mounts the endpoints over an explicit service container.
func Routes(r chi.Router, svcs *appsvcs.Services, store sessions.Store, log logger.Logger) {
	h := handlers.NewAccountHandler(svcs, store, log)
	r.Route("/account", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Post("/password/validate", h.ValidatePassword)
		r.With(auth.RequireAuth(store, log)).Get("/me", h.Me)
	})
}
