package handlers

import (
	"net/http"

	"github.com/ghuser/simplemarket/pkg/auth"
	"github.com/ghuser/simplemarket/pkg/errhttp"
	"github.com/ghuser/simplemarket/pkg/httpx"
	appsvcs "github.com/ghuser/simplemarket/services/item/application/services"
)

// DeleteItemHandler handles DELETE /items/{id}.
type DeleteItemHandler struct {
	svc *appsvcs.Services
}

func NewDeleteItemHandler(svc *appsvcs.Services) *DeleteItemHandler {
	return &DeleteItemHandler{svc: svc}
}

// Execute deletes an item together with every interest in it.
//
//	@Summary		Delete item
//	@Tags			items
//	@Param			id	path	string	true	"Item ID"
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		403	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/items/{id} [delete]
func (h *DeleteItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}
	id, err := httpx.URLParamUUID(r, "id")
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.Item.Delete(r.Context(), userID, id); err != nil {
		errhttp.WriteError(w, r, err)
		return
	}
	httpx.NoContent(w)
}

// PostItemSoldHandler handles POST /items/{id}/sold.
type PostItemSoldHandler struct {
	svc *appsvcs.Services
}

func NewPostItemSoldHandler(svc *appsvcs.Services) *PostItemSoldHandler {
	return &PostItemSoldHandler{svc: svc}
}

// Execute marks an item as sold. Marking a sold item again succeeds.
//
//	@Summary		Mark item sold
//	@Tags			items
//	@Produce		json
//	@Param			id	path		string	true	"Item ID"
//	@Success		200	{object}	ItemResponse
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		403	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/items/{id}/sold [post]
func (h *PostItemSoldHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}
	id, err := httpx.URLParamUUID(r, "id")
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.svc.Item.MarkSold(r.Context(), userID, id)
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toItemResponse(item))
}
