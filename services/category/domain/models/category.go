package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	MaxNameLength        = 50
	MaxDescriptionLength = 200
)

// Category groups listings. Names are not unique.
type Category struct {
	ID          int32
	Name        string
	Description string
}

// NewCategory trims and checks the fields. Description may be empty.
func NewCategory(name, description string) (*Category, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if n := utf8.RuneCountInString(name); n > MaxNameLength {
		return nil, fmt.Errorf("name must be at most %d characters, got %d", MaxNameLength, n)
	}
	if n := utf8.RuneCountInString(description); n > MaxDescriptionLength {
		return nil, fmt.Errorf("description must be at most %d characters, got %d", MaxDescriptionLength, n)
	}
	return &Category{Name: name, Description: description}, nil
}

// ItemSummary is a listing that references a category, sold or not.
type ItemSummary struct {
	ID         uuid.UUID
	Title      string
	PriceCents int64
	IsSold     bool
	DatePosted time.Time
}

// CategoryDetail is a category with the listings that reference it.
type CategoryDetail struct {
	Category Category
	Items    []ItemSummary
}

// Defaults is the category list inserted into an empty store.
func Defaults() []Category {
	return []Category{
		{Name: "Electronics", Description: "Phones, laptops, gadgets"},
		{Name: "Furniture", Description: "Home and office furniture"},
		{Name: "Clothing", Description: "Clothes and accessories"},
		{Name: "Books", Description: "Books and magazines"},
		{Name: "Sports", Description: "Sports equipment"},
		{Name: "Other", Description: "Miscellaneous items"},
	}
}
