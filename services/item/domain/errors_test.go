package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrors_Messages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrItemNotFound, "item not found"},
		{ErrInvalidItem, "invalid item"},
		{ErrForbidden, "only the seller may change this item"},
		{ErrSelfInterest, "sellers cannot mark interest in their own item"},
	}
	for _, tt := range tests {
		if tt.err.Error() != tt.want {
			t.Errorf("got %q, want %q", tt.err.Error(), tt.want)
		}
	}
}

func TestSentinelErrors_WrappedIdentity(t *testing.T) {
	wrapped := fmt.Errorf("get item: %w", ErrItemNotFound)
	if !errors.Is(wrapped, ErrItemNotFound) {
		t.Fatal("errors.Is must match wrapped ErrItemNotFound")
	}

	wrapped2 := fmt.Errorf("%w: %w", ErrInvalidItem, errors.New("title too long"))
	if !errors.Is(wrapped2, ErrInvalidItem) {
		t.Fatal("errors.Is must match double-wrapped ErrInvalidItem")
	}
	if errors.Is(wrapped2, ErrForbidden) {
		t.Fatal("unrelated sentinel must not match")
	}
}
