package handlers

import (
	"net/http"

	"github.com/ghuser/simplemarket/pkg/auth"
	"github.com/ghuser/simplemarket/pkg/errhttp"
	"github.com/ghuser/simplemarket/pkg/httpx"
	pkgvalidator "github.com/ghuser/simplemarket/pkg/validator"
	appsvcs "github.com/ghuser/simplemarket/services/item/application/services"
)

// PutItemHandler handles PUT /items/{id}.
type PutItemHandler struct {
	svc *appsvcs.Services
}

func NewPutItemHandler(svc *appsvcs.Services) *PutItemHandler {
	return &PutItemHandler{svc: svc}
}

// Execute replaces an item's details. Sold state is not editable here.
//
//	@Summary		Update item
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string		true	"Item ID"
//	@Param			request	body		ItemRequest	true	"Item details"
//	@Success		200		{object}	ItemResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		403		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/items/{id} [put]
func (h *PutItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
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

	req, ok := pkgvalidator.ValidateRequest[ItemRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.Item.Update(r.Context(), userID, id, req.input())
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toItemResponse(item))
}
