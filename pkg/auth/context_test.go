package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestWithUserID_UserIDFromCtx(t *testing.T) {
	userID := uuid.New()
	ctx := WithUserID(context.Background(), userID)

	got, err := UserIDFromCtx(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != userID {
		t.Fatalf("expected %v, got %v", userID, got)
	}
}

func TestUserIDFromCtx_EmptyContext(t *testing.T) {
	_, err := UserIDFromCtx(context.Background())
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestUserIDFromCtx_NilUUID(t *testing.T) {
	ctx := WithUserID(context.Background(), uuid.Nil)
	if _, err := UserIDFromCtx(ctx); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for uuid.Nil, got %v", err)
	}
}
