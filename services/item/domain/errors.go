package domain

import "errors"

// Sentinel errors for the item domain. Use errors.Is() to check these.
var (
	// ErrItemNotFound indicates the requested listing does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrInvalidItem indicates a listing field violates domain constraints.
	ErrInvalidItem = errors.New("invalid item")

	// ErrForbidden indicates the caller does not own the listing it tries to change.
	ErrForbidden = errors.New("only the seller may change this item")

	// ErrSelfInterest indicates a seller tried to mark interest in their own listing.
	ErrSelfInterest = errors.New("sellers cannot mark interest in their own item")
)
