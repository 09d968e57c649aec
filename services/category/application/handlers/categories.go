package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/simplemarket/pkg/errhttp"
	"github.com/ghuser/simplemarket/pkg/httpx"
	pkgvalidator "github.com/ghuser/simplemarket/pkg/validator"
	appsvcs "github.com/ghuser/simplemarket/services/category/application/services"
	"github.com/ghuser/simplemarket/services/category/domain/models"
)

// CategoryRequest is the request body for POST /categories.
type CategoryRequest struct {
	Name        string `json:"name"        validate:"required,notblank,max=50" example:"Garden"`
	Description string `json:"description" validate:"max=200"                  example:"Plants and tools"`
} // @name CategoryRequest

// CategoryResponse is a single category.
type CategoryResponse struct {
	ID          int32  `json:"id"          example:"1"`
	Name        string `json:"name"        example:"Electronics"`
	Description string `json:"description" example:"Phones, laptops, gadgets"`
} // @name CategoryResponse

// CategoryListResponse wraps every category.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
} // @name CategoryListResponse

// CategoryItemResponse summarises one listing in a category.
type CategoryItemResponse struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"  example:"Phone"`
	Price      string    `json:"price"  example:"199.00"`
	IsSold     bool      `json:"is_sold"`
	DatePosted time.Time `json:"date_posted"`
} // @name CategoryItemResponse

// CategoryDetailResponse is a category with its listings.
type CategoryDetailResponse struct {
	CategoryResponse
	Items []CategoryItemResponse `json:"items"`
} // @name CategoryDetailResponse

func toCategoryResponse(c models.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description}
}

// CategoryHandler serves /categories.
type CategoryHandler struct {
	svc *appsvcs.Services
}

func NewCategoryHandler(svc *appsvcs.Services) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

// List returns every category ordered by name.
//
//	@Summary		List categories
//	@Tags			categories
//	@Produce		json
//	@Success		200	{object}	CategoryListResponse
//	@Router			/categories [get]
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.Category.ListAll(r.Context())
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}
	resp := CategoryListResponse{Categories: make([]CategoryResponse, 0, len(list))}
	for _, c := range list {
		resp.Categories = append(resp.Categories, toCategoryResponse(c))
	}
	httpx.JSON(w, http.StatusOK, resp)
}

// Get returns one category and the listings that reference it.
//
//	@Summary		Get category
//	@Tags			categories
//	@Produce		json
//	@Param			id	path		int	true	"Category ID"
//	@Success		200	{object}	CategoryDetailResponse
//	@Failure		400	{object}	map[string]string
//	@Failure		404	{object}	map[string]string
//	@Router			/categories/{id} [get]
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLParamInt32(r, "id")
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	detail, err := h.svc.Category.GetByID(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}

	resp := CategoryDetailResponse{
		CategoryResponse: toCategoryResponse(detail.Category),
		Items:            make([]CategoryItemResponse, 0, len(detail.Items)),
	}
	for _, it := range detail.Items {
		resp.Items = append(resp.Items, CategoryItemResponse{
			ID:         it.ID,
			Title:      it.Title,
			Price:      formatCents(it.PriceCents),
			IsSold:     it.IsSold,
			DatePosted: it.DatePosted,
		})
	}
	httpx.JSON(w, http.StatusOK, resp)
}

// Create adds a category. Duplicate names are allowed.
//
//	@Summary		Create category
//	@Tags			categories
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CategoryRequest	true	"Category"
//	@Success		201		{object}	CategoryResponse
//	@Failure		401		{object}	map[string]string
//	@Failure		422		{object}	map[string]string
//	@Router			/categories [post]
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CategoryRequest](w, r)
	if !ok {
		return
	}

	c, err := h.svc.Category.Create(r.Context(), req.Name, req.Description)
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toCategoryResponse(*c))
}

func formatCents(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
