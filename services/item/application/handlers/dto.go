package handlers

import (
	"time"

	"github.com/google/uuid"

	appsvcs "github.com/ghuser/simplemarket/services/item/application/services"
	"github.com/ghuser/simplemarket/services/item/domain/models"
)

// ItemRequest is the request body for creating or updating a listing.
type ItemRequest struct {
	Title       string `json:"title"       validate:"required,notblank,max=200"  example:"Oak desk"`
	Description string `json:"description" validate:"required,notblank,max=2000" example:"Solid oak, lightly used"`
	Price       string `json:"price"       validate:"required,notblank,max=20"   example:"120.50"`
	CategoryID  *int32 `json:"category_id" validate:"omitempty,gt=0"              example:"2"`
	ImageRef    string `json:"image_ref"   validate:"max=500"                     example:"items/3f2c.jpg"`
} // @name ItemRequest

func (r *ItemRequest) input() appsvcs.ItemInput {
	return appsvcs.ItemInput{
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		CategoryID:  r.CategoryID,
		ImageRef:    r.ImageRef,
	}
}

// ItemResponse is a single listing.
type ItemResponse struct {
	ID          uuid.UUID `json:"id"                    example:"123e4567-e89b-12d3-a456-426614174000"`
	SellerID    uuid.UUID `json:"seller_id"             example:"550e8400-e29b-41d4-a716-446655440000"`
	CategoryID  *int32    `json:"category_id,omitempty" example:"2"`
	Title       string    `json:"title"                 example:"Oak desk"`
	Description string    `json:"description"           example:"Solid oak, lightly used"`
	Price       string    `json:"price"                 example:"120.50"`
	ImageRef    string    `json:"image_ref,omitempty"   example:"items/3f2c.jpg"`
	IsSold      bool      `json:"is_sold"               example:"false"`
	DatePosted  time.Time `json:"date_posted"           example:"2024-01-15T10:30:00Z"`
} // @name ItemResponse

// ItemListResponse wraps a list of listings.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
} // @name ItemListResponse

// ItemDetailResponse is a listing plus what the caller may additionally see.
type ItemDetailResponse struct {
	ItemResponse
	HasMarked bool                   `json:"has_marked"`
	Interests []ItemInterestResponse `json:"interests,omitempty"`
} // @name ItemDetailResponse

// ItemInterestResponse is one interested buyer, as seen by the seller.
type ItemInterestResponse struct {
	ID         uuid.UUID `json:"id"`
	BuyerID    uuid.UUID `json:"buyer_id"`
	BuyerName  string    `json:"buyer_name" example:"Bea"`
	DateMarked time.Time `json:"date_marked"`
} // @name ItemInterestResponse

// ItemInterestListResponse wraps the interests in one listing.
type ItemInterestListResponse struct {
	Interests []ItemInterestResponse `json:"interests"`
} // @name ItemInterestListResponse

// BuyerInterestResponse is one interest, as seen by the buyer.
type BuyerInterestResponse struct {
	ID         uuid.UUID    `json:"id"`
	DateMarked time.Time    `json:"date_marked"`
	SellerName string       `json:"seller_name" example:"Sam"`
	Item       ItemResponse `json:"item"`
} // @name BuyerInterestResponse

// BuyerInterestListResponse wraps the caller's interests.
type BuyerInterestListResponse struct {
	Interests []BuyerInterestResponse `json:"interests"`
} // @name BuyerInterestListResponse

// InterestStatusResponse reports the caller's interest in one listing.
// Changed is false when mark or remove found nothing to do.
type InterestStatusResponse struct {
	ItemID    uuid.UUID `json:"item_id"`
	HasMarked bool      `json:"has_marked"`
	Changed   bool      `json:"changed"`
} // @name InterestStatusResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"item not found"`
} // @name ErrorResponse

func toItemResponse(it *models.Item) ItemResponse {
	return ItemResponse{
		ID:          it.ID,
		SellerID:    it.SellerID,
		CategoryID:  it.CategoryID,
		Title:       it.Title.String(),
		Description: it.Description.String(),
		Price:       it.Price.String(),
		ImageRef:    it.ImageRef,
		IsSold:      it.IsSold,
		DatePosted:  it.DatePosted,
	}
}

func toItemList(items []*models.Item) ItemListResponse {
	out := ItemListResponse{Items: make([]ItemResponse, 0, len(items))}
	for _, it := range items {
		out.Items = append(out.Items, toItemResponse(it))
	}
	return out
}

func toItemInterests(list []*models.ItemInterest) []ItemInterestResponse {
	out := make([]ItemInterestResponse, 0, len(list))
	for _, in := range list {
		out = append(out, ItemInterestResponse{
			ID:         in.Interest.ID,
			BuyerID:    in.Interest.BuyerID,
			BuyerName:  in.BuyerName,
			DateMarked: in.Interest.DateMarked,
		})
	}
	return out
}

func toBuyerInterests(list []*models.BuyerInterest) BuyerInterestListResponse {
	out := BuyerInterestListResponse{Interests: make([]BuyerInterestResponse, 0, len(list))}
	for _, in := range list {
		out.Interests = append(out.Interests, BuyerInterestResponse{
			ID:         in.Interest.ID,
			DateMarked: in.Interest.DateMarked,
			SellerName: in.SellerName,
			Item:       toItemResponse(&in.Item),
		})
	}
	return out
}
