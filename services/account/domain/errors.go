// Package domain holds the account bounded context's sentinel errors.
// pkg/errhttp maps them to HTTP status codes.
package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrWeakPassword       = errors.New("password does not meet the policy")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidAccount     = errors.New("invalid account")
)
