package models

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const MaxDisplayNameLength = 100

// User is a registered identity. Sellers and buyers are both users.
type User struct {
	ID           uuid.UUID
	Email        string
	DisplayName  string
	PasswordHash string
	CreatedAt    time.Time
}

// NormalizeEmail trims and lower-cases an address so lookups are case-insensitive.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", fmt.Errorf("email %q is not a valid address", email)
	}
	return email, nil
}

// NewUser builds a user without a password hash.
func NewUser(email, displayName string) (*User, error) {
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil, fmt.Errorf("display name is required")
	}
	if n := utf8.RuneCountInString(displayName); n > MaxDisplayNameLength {
		return nil, fmt.Errorf("display name must be at most %d characters, got %d", MaxDisplayNameLength, n)
	}
	return &User{
		ID:          uuid.New(),
		Email:       normalized,
		DisplayName: displayName,
		CreatedAt:   time.Now().UTC(),
	}, nil
}
