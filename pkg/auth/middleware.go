package auth

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/ghuser/simplemarket/pkg/httpx"
	"github.com/ghuser/simplemarket/pkg/logger"
)

// RequireAuth rejects requests without a valid session with 401 and injects the
// session's user ID into the context otherwise.
func RequireAuth(store sessions.Store, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := SessionUserID(store, r)
			if err != nil {
				log.WarnContext(r.Context(), "unauthenticated request", "path", r.URL.Path, "error", err)
				httpx.JSONError(w, http.StatusUnauthorized, ErrUnauthenticated.Error())
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// OptionalAuth injects the user ID when a valid session is present and lets
// anonymous requests through untouched. Browse endpoints use it to add
// caller-specific fields such as has_marked.
func OptionalAuth(store sessions.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID, err := SessionUserID(store, r); err == nil {
				r = r.WithContext(WithUserID(r.Context(), userID))
			}
			next.ServeHTTP(w, r)
		})
	}
}
