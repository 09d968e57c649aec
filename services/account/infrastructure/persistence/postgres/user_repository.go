package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ghuser/simplemarket/pkg/database"
	accountdomain "github.com/ghuser/simplemarket/services/account/domain"
	"github.com/ghuser/simplemarket/services/account/domain/models"
	"github.com/ghuser/simplemarket/services/account/domain/repositories"
	"github.com/ghuser/simplemarket/services/account/infrastructure/persistence/postgres/db"
)

const emailUniqueKey = "users_email_key"

// UserRepository implements repositories.UserRepository against PostgreSQL.
type UserRepository struct {
	db *database.Database
}

var _ repositories.UserRepository = (*UserRepository)(nil)

func NewUserRepository(database *database.Database) *UserRepository {
	return &UserRepository{db: database}
}

// Create inserts the user. The unique email constraint, not a prior lookup,
// decides ErrEmailTaken.
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	err := db.New(r.db.DB()).InsertUser(ctx, db.InsertUserParams{
		ID:           u.ID,
		Email:        u.Email,
		DisplayName:  u.DisplayName,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	})
	if err != nil {
		if database.HasCode(err, database.CodeUniqueViolation) && database.ConstraintName(err) == emailUniqueKey {
			return accountdomain.ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	row, err := db.New(r.db.DB()).GetUserByID(ctx, id)
	return toUser(row, err)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row, err := db.New(r.db.DB()).GetUserByEmail(ctx, email)
	return toUser(row, err)
}

func toUser(row db.User, err error) (*models.User, error) {
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, accountdomain.ErrUserNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &models.User{
		ID:           row.ID,
		Email:        row.Email,
		DisplayName:  row.DisplayName,
		PasswordHash: row.PasswordHash,
		CreatedAt:    row.CreatedAt.UTC(),
	}, nil
}
