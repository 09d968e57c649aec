package migrator

import (
	"context"
	"database/sql"
	"testing"
	"testing/fstest"

	"github.com/ghuser/simplemarket/migrations"
)

func TestEmbeddedMigrationsPresent(t *testing.T) {
	data, err := migrations.FS.ReadFile("00001_marketplace.sql")
	if err != nil {
		t.Fatalf("read embedded migration: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("embedded migration is empty")
	}
}

func TestUp_RejectsEmptyFS(t *testing.T) {
	db, err := sql.Open("pgx", "postgres://nobody@127.0.0.1:1/none?sslmode=disable")
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	defer db.Close() //nolint:errcheck

	if err := Up(context.Background(), db, fstest.MapFS{}); err == nil {
		t.Fatal("expected error for a filesystem without migrations")
	}
}
