package models

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	maxTitleLength       = 200
	maxDescriptionLength = 2000
)

// Title is a listing headline: 1 to 200 characters after trimming.
type Title string

// NewTitle trims s and enforces the length bounds.
func NewTitle(s string) (Title, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("title is required")
	}
	if n := utf8.RuneCountInString(s); n > maxTitleLength {
		return "", fmt.Errorf("title must not exceed %d characters (got %d)", maxTitleLength, n)
	}
	return Title(s), nil
}

func (t Title) String() string { return string(t) }

// Description is the listing body: 1 to 2000 characters after trimming.
type Description string

// NewDescription trims s and enforces the length bounds.
func NewDescription(s string) (Description, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("description is required")
	}
	if n := utf8.RuneCountInString(s); n > maxDescriptionLength {
		return "", fmt.Errorf("description must not exceed %d characters (got %d)", maxDescriptionLength, n)
	}
	return Description(s), nil
}

func (d Description) String() string { return string(d) }
