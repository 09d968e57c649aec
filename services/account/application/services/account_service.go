package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ghuser/simplemarket/pkg/logger"
	accountdomain "github.com/ghuser/simplemarket/services/account/domain"
	"github.com/ghuser/simplemarket/services/account/domain/models"
	"github.com/ghuser/simplemarket/services/account/domain/repositories"
	domainsvcs "github.com/ghuser/simplemarket/services/account/domain/services"
)

// PasswordHasher derives and checks stored password hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) (bool, error)
}

// AccountService registers and authenticates users.
type AccountService struct {
	repo   repositories.UserRepository
	hasher PasswordHasher
	log    logger.Logger

	// decoy is verified against when the email is unknown so both failure
	// paths cost one hash.
	decoy string
}

func NewAccountService(repo repositories.UserRepository, hasher PasswordHasher, log logger.Logger) (*AccountService, error) {
	decoy, err := hasher.Hash(uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("hash decoy password: %w", err)
	}
	return &AccountService{repo: repo, hasher: hasher, log: log, decoy: decoy}, nil
}

// Register creates a user after the password passes the registration policy.
// Returns a *domainsvcs.WeakPasswordError, ErrInvalidAccount or ErrEmailTaken.
func (s *AccountService) Register(ctx context.Context, email, displayName, password string) (*models.User, error) {
	u, err := models.NewUser(email, displayName)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", accountdomain.ErrInvalidAccount, err)
	}
	if err := domainsvcs.CheckRegistrationPassword(password); err != nil {
		return nil, err
	}

	u.PasswordHash, err = s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.InfoContext(ctx, "user registered", "user_id", u.ID)
	return u, nil
}

// Authenticate returns the user owning email when password matches.
// Every mismatch, unknown email included, is ErrInvalidCredentials.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	normalized, err := models.NormalizeEmail(email)
	if err != nil {
		return nil, accountdomain.ErrInvalidCredentials
	}

	u, err := s.repo.GetByEmail(ctx, normalized)
	if err != nil {
		if !errors.Is(err, accountdomain.ErrUserNotFound) {
			return nil, fmt.Errorf("load user: %w", err)
		}
		_, _ = s.hasher.Verify(password, s.decoy)
		return nil, accountdomain.ErrInvalidCredentials
	}

	ok, err := s.hasher.Verify(password, u.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		s.log.WarnContext(ctx, "failed login", "user_id", u.ID)
		return nil, accountdomain.ErrInvalidCredentials
	}
	return u, nil
}

func (s *AccountService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// ValidatePassword exposes the password policy without registering anyone.
func (s *AccountService) ValidatePassword(candidate string) []domainsvcs.Violation {
	return domainsvcs.ValidatePassword(candidate)
}
