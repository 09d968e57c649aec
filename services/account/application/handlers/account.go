package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/ghuser/simplemarket/pkg/auth"
	"github.com/ghuser/simplemarket/pkg/errhttp"
	"github.com/ghuser/simplemarket/pkg/httpx"
	"github.com/ghuser/simplemarket/pkg/logger"
	pkgvalidator "github.com/ghuser/simplemarket/pkg/validator"
	appsvcs "github.com/ghuser/simplemarket/services/account/application/services"
	"github.com/ghuser/simplemarket/services/account/domain/models"
	domainsvcs "github.com/ghuser/simplemarket/services/account/domain/services"
)

// RegisterRequest is the request body for POST /account/register.
// Password strength is judged by the password policy, not by tags.
type RegisterRequest struct {
	Email       string `json:"email"        validate:"required,email,max=254" example:"ana@example.com"`
	DisplayName string `json:"display_name" validate:"required,notblank,max=100" example:"Ana"`
	Password    string `json:"password"     validate:"max=256" example:"ABc123!@#"`
} // @name RegisterRequest

// LoginRequest is the request body for POST /account/login.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,max=254" example:"ana@example.com"`
	Password string `json:"password" validate:"required,max=256" example:"ABc123!@#"`
} // @name LoginRequest

// PasswordCheckRequest is the request body for POST /account/password/validate.
type PasswordCheckRequest struct {
	Password string `json:"password" validate:"max=256" example:"abc"`
} // @name PasswordCheckRequest

// UserResponse is the public view of a user.
type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"        example:"ana@example.com"`
	DisplayName string    `json:"display_name" example:"Ana"`
	CreatedAt   time.Time `json:"created_at"`
} // @name UserResponse

// PasswordCheckResponse lists the violated password rules.
type PasswordCheckResponse struct {
	Valid      bool                   `json:"valid"`
	Violations []domainsvcs.Violation `json:"violations"`
} // @name PasswordCheckResponse

// WeakPasswordResponse is returned when registration fails the password policy.
type WeakPasswordResponse struct {
	Error      string                 `json:"error"`
	Violations []domainsvcs.Violation `json:"violations"`
} // @name WeakPasswordResponse

func toUserResponse(u *models.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, DisplayName: u.DisplayName, CreatedAt: u.CreatedAt}
}

// AccountHandler serves /account.
type AccountHandler struct {
	svc   *appsvcs.Services
	store sessions.Store
	log   logger.Logger
}

func NewAccountHandler(svc *appsvcs.Services, store sessions.Store, log logger.Logger) *AccountHandler {
	return &AccountHandler{svc: svc, store: store, log: log}
}

// Register creates an account and signs it in.
//
//	@Summary		Register
//	@Tags			account
//	@Accept			json
//	@Produce		json
//	@Param			request	body		RegisterRequest	true	"Account"
//	@Success		201		{object}	UserResponse
//	@Failure		409		{object}	map[string]string
//	@Failure		422		{object}	WeakPasswordResponse
//	@Router			/account/register [post]
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[RegisterRequest](w, r)
	if !ok {
		return
	}

	u, err := h.svc.Account.Register(r.Context(), req.Email, req.DisplayName, req.Password)
	if err != nil {
		var weak *domainsvcs.WeakPasswordError
		if errors.As(err, &weak) {
			httpx.JSON(w, http.StatusUnprocessableEntity, WeakPasswordResponse{
				Error:      "Password does not meet the policy",
				Violations: weak.Violations,
			})
			return
		}
		errhttp.WriteError(w, r, err)
		return
	}

	if err := auth.SignIn(h.store, w, r, u.ID); err != nil {
		errhttp.WriteError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toUserResponse(u))
}

// Login checks credentials and sets the session cookie.
//
//	@Summary		Log in
//	@Tags			account
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequest	true	"Credentials"
//	@Success		200		{object}	UserResponse
//	@Failure		401		{object}	map[string]string
//	@Router			/account/login [post]
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[LoginRequest](w, r)
	if !ok {
		return
	}

	u, err := h.svc.Account.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}
	if err := auth.SignIn(h.store, w, r, u.ID); err != nil {
		errhttp.WriteError(w, r, err)
		return
	}
	h.log.InfoContext(r.Context(), "user signed in", "user_id", u.ID)
	httpx.JSON(w, http.StatusOK, toUserResponse(u))
}

// Logout clears the session.
//
//	@Summary	Log out
//	@Tags		account
//	@Success	204
//	@Router		/account/logout [post]
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := auth.SignOut(h.store, w, r); err != nil {
		h.log.WarnContext(r.Context(), "sign out failed", "error", err)
	}
	httpx.NoContent(w)
}

// Me returns the signed-in user.
//
//	@Summary		Current user
//	@Tags			account
//	@Produce		json
//	@Success		200	{object}	UserResponse
//	@Failure		401	{object}	map[string]string
//	@Router			/account/me [get]
func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}
	u, err := h.svc.Account.GetByID(r.Context(), userID)
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toUserResponse(u))
}

// ValidatePassword reports every password rule the candidate violates.
//
//	@Summary		Check a password against the policy
//	@Tags			account
//	@Accept			json
//	@Produce		json
//	@Param			request	body		PasswordCheckRequest	true	"Candidate"
//	@Success		200		{object}	PasswordCheckResponse
//	@Router			/account/password/validate [post]
func (h *AccountHandler) ValidatePassword(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[PasswordCheckRequest](w, r)
	if !ok {
		return
	}
	violations := h.svc.Account.ValidatePassword(req.Password)
	httpx.JSON(w, http.StatusOK, PasswordCheckResponse{Valid: len(violations) == 0, Violations: violations})
}
