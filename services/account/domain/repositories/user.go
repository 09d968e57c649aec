package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/simplemarket/services/account/domain/models"
)

// UserRepository is the persistence port for users. Emails are stored
// normalized and are unique.
type UserRepository interface {
	// Create returns domain.ErrEmailTaken when the email is registered.
	Create(ctx context.Context, u *models.User) error
	// GetByID and GetByEmail return domain.ErrUserNotFound when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
