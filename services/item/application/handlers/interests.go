package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ghuser/simplemarket/pkg/auth"
	"github.com/ghuser/simplemarket/pkg/errhttp"
	"github.com/ghuser/simplemarket/pkg/httpx"
	appsvcs "github.com/ghuser/simplemarket/services/item/application/services"
)

// InterestHandler serves the caller's own interest in one item:
// POST, DELETE and GET on /items/{id}/interest.
type InterestHandler struct {
	svc *appsvcs.Services
}

func NewInterestHandler(svc *appsvcs.Services) *InterestHandler {
	return &InterestHandler{svc: svc}
}

// Mark records interest. A repeated mark answers 200 with changed=false.
//
//	@Summary		Mark interest
//	@Tags			interests
//	@Produce		json
//	@Param			id	path		string	true	"Item ID"
//	@Success		201	{object}	InterestStatusResponse
//	@Success		200	{object}	InterestStatusResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		422	{object}	ErrorResponse
//	@Router			/items/{id}/interest [post]
func (h *InterestHandler) Mark(w http.ResponseWriter, r *http.Request) {
	userID, itemID, ok := userAndItem(w, r)
	if !ok {
		return
	}

	marked, err := h.svc.Interest.Mark(r.Context(), userID, itemID)
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}

	status := http.StatusOK
	if marked {
		status = http.StatusCreated
	}
	httpx.JSON(w, status, InterestStatusResponse{ItemID: itemID, HasMarked: true, Changed: marked})
}

// Remove withdraws interest. Removing an absent interest is not an error.
//
//	@Summary		Remove interest
//	@Tags			interests
//	@Produce		json
//	@Param			id	path		string	true	"Item ID"
//	@Success		200	{object}	InterestStatusResponse
//	@Failure		401	{object}	ErrorResponse
//	@Router			/items/{id}/interest [delete]
func (h *InterestHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, itemID, ok := userAndItem(w, r)
	if !ok {
		return
	}

	removed, err := h.svc.Interest.Remove(r.Context(), userID, itemID)
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, InterestStatusResponse{ItemID: itemID, HasMarked: false, Changed: removed})
}

// Status reports whether the caller marked interest.
//
//	@Summary		Interest status
//	@Tags			interests
//	@Produce		json
//	@Param			id	path		string	true	"Item ID"
//	@Success		200	{object}	InterestStatusResponse
//	@Failure		401	{object}	ErrorResponse
//	@Router			/items/{id}/interest [get]
func (h *InterestHandler) Status(w http.ResponseWriter, r *http.Request) {
	userID, itemID, ok := userAndItem(w, r)
	if !ok {
		return
	}

	marked, err := h.svc.Interest.HasMarked(r.Context(), userID, itemID)
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, InterestStatusResponse{ItemID: itemID, HasMarked: marked})
}

// ListItemInterestsHandler handles GET /items/{id}/interests.
type ListItemInterestsHandler struct {
	svc *appsvcs.Services
}

func NewListItemInterestsHandler(svc *appsvcs.Services) *ListItemInterestsHandler {
	return &ListItemInterestsHandler{svc: svc}
}

// Execute lists interested buyers. Only the seller may see them.
//
//	@Summary		List interests in an item
//	@Tags			interests
//	@Produce		json
//	@Param			id	path		string	true	"Item ID"
//	@Success		200	{object}	ItemInterestListResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		403	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/items/{id}/interests [get]
func (h *ListItemInterestsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, itemID, ok := userAndItem(w, r)
	if !ok {
		return
	}

	list, err := h.svc.Interest.ListForItem(r.Context(), userID, itemID)
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, ItemInterestListResponse{Interests: toItemInterests(list)})
}

// ListMyInterestsHandler handles GET /interests/mine.
type ListMyInterestsHandler struct {
	svc *appsvcs.Services
}

func NewListMyInterestsHandler(svc *appsvcs.Services) *ListMyInterestsHandler {
	return &ListMyInterestsHandler{svc: svc}
}

// Execute lists the caller's interests with their items, newest first.
//
//	@Summary		List my interests
//	@Tags			interests
//	@Produce		json
//	@Success		200	{object}	BuyerInterestListResponse
//	@Failure		401	{object}	ErrorResponse
//	@Router			/interests/mine [get]
func (h *ListMyInterestsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}

	list, err := h.svc.Interest.ListForBuyer(r.Context(), userID)
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toBuyerInterests(list))
}

func userAndItem(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	userID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, r, err)
		return uuid.Nil, uuid.Nil, false
	}
	itemID, err := httpx.URLParamUUID(r, "id")
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, err.Error())
		return uuid.Nil, uuid.Nil, false
	}
	return userID, itemID, true
}
