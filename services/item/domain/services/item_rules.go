// Package services contains stateless domain services for the item bounded context.
// They enforce rules over domain types only and have no infrastructure dependencies.
package services

import (
	"fmt"
	"unicode"

	"github.com/google/uuid"

	itemdomain "github.com/ghuser/simplemarket/services/item/domain"
	"github.com/ghuser/simplemarket/services/item/domain/models"
)

// ValidateTitle rejects control characters anywhere in a title.
func ValidateTitle(title models.Title) error {
	for _, r := range title.String() {
		if unicode.IsControl(r) {
			return fmt.Errorf("title must not contain control characters")
		}
	}
	return nil
}

// ValidateDescription allows line breaks and tabs but no other control characters.
func ValidateDescription(desc models.Description) error {
	for _, r := range desc.String() {
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			return fmt.Errorf("description must not contain control characters")
		}
	}
	return nil
}

// ValidateDetails checks the mutable listing fields shared by create and update.
func ValidateDetails(d models.ItemDetails) error {
	if err := ValidateTitle(d.Title); err != nil {
		return err
	}
	if err := ValidateDescription(d.Description); err != nil {
		return err
	}
	if d.Price <= 0 {
		return fmt.Errorf("price must be greater than zero")
	}
	if d.CategoryID != nil && *d.CategoryID <= 0 {
		return fmt.Errorf("category_id must be positive")
	}
	return nil
}

// ValidateItemForCreation checks a fully built listing before it is persisted.
func ValidateItemForCreation(item *models.Item) error {
	if item == nil {
		return fmt.Errorf("item cannot be nil")
	}
	if item.ID == uuid.Nil {
		return fmt.Errorf("id must be set")
	}
	if item.SellerID == uuid.Nil {
		return fmt.Errorf("seller_id must be set")
	}
	if item.IsSold {
		return fmt.Errorf("a new item cannot be sold")
	}
	return ValidateDetails(models.ItemDetails{
		Title:       item.Title,
		Description: item.Description,
		Price:       item.Price,
		CategoryID:  item.CategoryID,
		ImageRef:    item.ImageRef,
	})
}

// EnsureOwner returns ErrForbidden unless actorID is the listing's seller.
func EnsureOwner(item *models.Item, actorID uuid.UUID) error {
	if !item.IsOwnedBy(actorID) {
		return itemdomain.ErrForbidden
	}
	return nil
}

// EnsureNotSeller returns ErrSelfInterest when buyerID is the listing's seller.
func EnsureNotSeller(item *models.Item, buyerID uuid.UUID) error {
	if item.IsOwnedBy(buyerID) {
		return itemdomain.ErrSelfInterest
	}
	return nil
}
