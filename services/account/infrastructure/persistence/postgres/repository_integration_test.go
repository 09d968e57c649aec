//go:build integration

package postgres

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/ghuser/simplemarket/pkg/database/dbtest"
	accountdomain "github.com/ghuser/simplemarket/services/account/domain"
	"github.com/ghuser/simplemarket/services/account/domain/models"
)

func TestUserRepository_Postgres(t *testing.T) {
	db, _ := dbtest.Start(t)
	repo := NewUserRepository(db)
	ctx := t.Context()

	u, err := models.NewUser("Ana@Example.com", "Ana")
	if err != nil {
		t.Fatal(err)
	}
	u.PasswordHash = "$argon2id$v=19$m=65536,t=3,p=4$c2FsdA$aGFzaA"
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("Create: %v", err)
	}

	t.Run("lookups", func(t *testing.T) {
		byEmail, err := repo.GetByEmail(ctx, "ana@example.com")
		if err != nil || byEmail.ID != u.ID || byEmail.PasswordHash != u.PasswordHash {
			t.Fatalf("GetByEmail = %+v, %v", byEmail, err)
		}
		byID, err := repo.GetByID(ctx, u.ID)
		if err != nil || byID.DisplayName != "Ana" {
			t.Fatalf("GetByID = %+v, %v", byID, err)
		}
	})

	t.Run("missing", func(t *testing.T) {
		if _, err := repo.GetByID(ctx, uuid.New()); !errors.Is(err, accountdomain.ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
		if _, err := repo.GetByEmail(ctx, "nobody@example.com"); !errors.Is(err, accountdomain.ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		dup, err := models.NewUser("ana@example.com", "Other Ana")
		if err != nil {
			t.Fatal(err)
		}
		dup.PasswordHash = "x"
		if err := repo.Create(ctx, dup); !errors.Is(err, accountdomain.ErrEmailTaken) {
			t.Fatalf("expected ErrEmailTaken, got %v", err)
		}
	})
}
