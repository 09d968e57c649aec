package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ghuser/simplemarket/pkg/auth"
	"github.com/ghuser/simplemarket/pkg/errhttp"
	"github.com/ghuser/simplemarket/pkg/httpx"
	appsvcs "github.com/ghuser/simplemarket/services/item/application/services"
	"github.com/ghuser/simplemarket/services/item/domain/repositories"
)

// ListItemsHandler handles GET /items.
type ListItemsHandler struct {
	svc *appsvcs.Services
}

func NewListItemsHandler(svc *appsvcs.Services) *ListItemsHandler {
	return &ListItemsHandler{svc: svc}
}

// Execute lists available items, optionally filtered.
//
//	@Summary		List available items
//	@Description	Unsold items, newest first. q matches title or description case-insensitively; category_id filters by category.
//	@Tags			items
//	@Produce		json
//	@Param			q			query		string	false	"Search term"
//	@Param			category_id	query		int		false	"Category ID"
//	@Success		200			{object}	ItemListResponse
//	@Failure		400			{object}	ErrorResponse
//	@Router			/items [get]
func (h *ListItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	categoryID, err := httpx.QueryInt32(r, "category_id")
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, err := h.svc.Item.List(r.Context(), repositories.SearchQuery{
		Term:       r.URL.Query().Get("q"),
		CategoryID: categoryID,
	})
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toItemList(items))
}

// GetItemHandler handles GET /items/{id}.
type GetItemHandler struct {
	svc *appsvcs.Services
}

func NewGetItemHandler(svc *appsvcs.Services) *GetItemHandler {
	return &GetItemHandler{svc: svc}
}

// Execute returns one item. Signed-in buyers also learn whether they marked
// interest; the seller also receives the list of interested buyers.
//
//	@Summary		Get item
//	@Tags			items
//	@Produce		json
//	@Param			id	path		string	true	"Item ID"
//	@Success		200	{object}	ItemDetailResponse
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/items/{id} [get]
func (h *GetItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLParamUUID(r, "id")
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.svc.Item.GetByID(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}

	viewerID, _ := auth.UserIDFromCtx(r.Context())
	state, err := h.svc.Interest.Viewer(r.Context(), viewerID, item)
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}

	resp := ItemDetailResponse{ItemResponse: toItemResponse(item), HasMarked: state.HasMarked}
	if state.Interests != nil {
		resp.Interests = toItemInterests(state.Interests)
	}
	httpx.JSON(w, http.StatusOK, resp)
}

// ListMyItemsHandler handles GET /items/mine.
type ListMyItemsHandler struct {
	svc *appsvcs.Services
}

func NewListMyItemsHandler(svc *appsvcs.Services) *ListMyItemsHandler {
	return &ListMyItemsHandler{svc: svc}
}

// Execute lists the caller's own items, sold ones included.
//
//	@Summary		List my items
//	@Tags			items
//	@Produce		json
//	@Success		200	{object}	ItemListResponse
//	@Failure		401	{object}	ErrorResponse
//	@Router			/items/mine [get]
func (h *ListMyItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}
	writeSellerItems(w, r, h.svc, userID)
}

// ListSellerItemsHandler handles GET /sellers/{id}/items.
type ListSellerItemsHandler struct {
	svc *appsvcs.Services
}

func NewListSellerItemsHandler(svc *appsvcs.Services) *ListSellerItemsHandler {
	return &ListSellerItemsHandler{svc: svc}
}

// Execute lists every item of one seller.
//
//	@Summary		List a seller's items
//	@Tags			items
//	@Produce		json
//	@Param			id	path		string	true	"Seller ID"
//	@Success		200	{object}	ItemListResponse
//	@Failure		400	{object}	ErrorResponse
//	@Router			/sellers/{id}/items [get]
func (h *ListSellerItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	sellerID, err := httpx.URLParamUUID(r, "id")
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeSellerItems(w, r, h.svc, sellerID)
}

func writeSellerItems(w http.ResponseWriter, r *http.Request, svc *appsvcs.Services, sellerID uuid.UUID) {
	items, err := svc.Item.ListBySeller(r.Context(), sellerID)
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toItemList(items))
}
