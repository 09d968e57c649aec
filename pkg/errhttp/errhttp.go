// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"
	"sync/atomic"

	"github.com/ghuser/simplemarket/pkg/auth"
	"github.com/ghuser/simplemarket/pkg/httpx"
	"github.com/ghuser/simplemarket/pkg/telemetry"
	accountdomain "github.com/ghuser/simplemarket/services/account/domain"
	categorydomain "github.com/ghuser/simplemarket/services/category/domain"
	itemdomain "github.com/ghuser/simplemarket/services/item/domain"
)

var production atomic.Bool

// SetProduction hides 5xx error details from clients when enabled.
func SetProduction(enabled bool) {
	production.Store(enabled)
}

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Unrecognized errors become 500 and are reported to Sentry.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := mapErrorToStatus(err)
	if status >= http.StatusInternalServerError {
		telemetry.CaptureError(r.Context(), err)
	}
	httpx.JSONError(w, status, httpx.SafeError(err, status, production.Load()))
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, itemdomain.ErrItemNotFound),
		errors.Is(err, categorydomain.ErrCategoryNotFound),
		errors.Is(err, accountdomain.ErrUserNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, itemdomain.ErrForbidden):
		return http.StatusForbidden // 403
	case errors.Is(err, accountdomain.ErrEmailTaken):
		return http.StatusConflict // 409
	case errors.Is(err, itemdomain.ErrInvalidItem),
		errors.Is(err, itemdomain.ErrSelfInterest),
		errors.Is(err, categorydomain.ErrInvalidCategory),
		errors.Is(err, accountdomain.ErrWeakPassword),
		errors.Is(err, accountdomain.ErrInvalidAccount):
		return http.StatusUnprocessableEntity // 422
	case errors.Is(err, accountdomain.ErrInvalidCredentials),
		errors.Is(err, auth.ErrUnauthenticated):
		return http.StatusUnauthorized // 401
	default:
		return http.StatusInternalServerError // 500
	}
}
