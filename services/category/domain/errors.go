// Package domain holds the category bounded context's sentinel errors.
// pkg/errhttp maps them to HTTP status codes.
package domain

import "errors"

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrInvalidCategory  = errors.New("invalid category")
)
