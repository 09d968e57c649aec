//go:build integration

// Package dbtest starts a throwaway PostgreSQL container with the marketplace
// schema applied. Run with: go test -tags=integration ./...
package dbtest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/ghuser/simplemarket/migrations"
	"github.com/ghuser/simplemarket/pkg/database"
	"github.com/ghuser/simplemarket/pkg/logger"
	"github.com/ghuser/simplemarket/pkg/migrator"
)

// Start runs a postgres:16-alpine container, applies migrations and returns
// the pool with its connection string. The container is removed on cleanup.
func Start(t *testing.T) (*database.Database, string) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("simplemarket"),
		postgres.WithUsername("market"),
		postgres.WithPassword("market"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminate postgres container: %v", err)
		}
	})

	url, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("connection string: %v", err)
	}

	db, err := database.NewPool(ctx, url, logger.Discard())
	if err != nil {
		t.Fatalf("open pool: %v", err)
	}
	t.Cleanup(db.Close)

	if err := migrator.Up(ctx, db.DB(), migrations.FS); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db, url
}

// CreateUser inserts a bare user row so listings and interests can reference it.
func CreateUser(t *testing.T, db *database.Database, displayName string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := db.DB().ExecContext(context.Background(),
		`INSERT INTO users (id, email, display_name, password_hash) VALUES ($1, $2, $3, 'x')`,
		id, id.String()+"@example.com", displayName)
	if err != nil {
		t.Fatalf("insert user: %v", err)
	}
	return id
}
