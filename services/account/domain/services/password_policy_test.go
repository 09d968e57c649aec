package services

import (
	"errors"
	"slices"
	"testing"

	accountdomain "github.com/ghuser/simplemarket/services/account/domain"
)

func codes(vs []Violation) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.Code)
	}
	return out
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		want      []string
	}{
		{"empty", "", []string{CodeRequired}},
		{"whitespace only", "   \t", []string{CodeRequired}},
		{"abc fails every rule", "abc", []string{CodeInsufficientUppercase, CodeInsufficientDigits, CodeInsufficientSymbols}},
		{"valid", "ABc123!@#", []string{}},
		{"one uppercase", "Abc123!@#", []string{CodeInsufficientUppercase}},
		{"two digits", "ABc12!@#", []string{CodeInsufficientDigits}},
		{"two symbols", "ABc123!@", []string{CodeInsufficientSymbols}},
		{"spaces count as symbols", "AB 1 2 3", []string{}},
		{"non-ascii uppercase and digits", "ÄÖ١٢٣!!!", []string{}},
		{"digits and symbols only", "123!@#", []string{CodeInsufficientUppercase}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := codes(ValidatePassword(tt.candidate))
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestValidatePassword_MessagesAreSet(t *testing.T) {
	for _, v := range ValidatePassword("abc") {
		if v.Message == "" {
			t.Fatalf("violation %q has no message", v.Code)
		}
	}
}

func TestCheckPassword(t *testing.T) {
	if err := CheckPassword("ABc123!@#"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := CheckPassword("abc")
	if !errors.Is(err, accountdomain.ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
	var weak *WeakPasswordError
	if !errors.As(err, &weak) || len(weak.Violations) != 3 {
		t.Fatalf("expected three violations, got %v", err)
	}
}

func TestValidateRegistrationPassword(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		want      []string
	}{
		{"blank stays required only", " ", []string{CodeRequired}},
		{"valid", "ABc123!@#", []string{}},
		{"abc adds length", "abc", []string{CodeInsufficientUppercase, CodeInsufficientDigits, CodeInsufficientSymbols, CodeTooShort}},
		{"no lowercase", "AB123!@#", []string{CodeMissingLowercase}},
		{"length counts runes", "ÄÖ١٢٣!!ä", []string{CodeInsufficientSymbols}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := codes(ValidateRegistrationPassword(tt.candidate))
			if !slices.Equal(got, tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCheckRegistrationPassword(t *testing.T) {
	if err := CheckRegistrationPassword("ABc123!@#"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := CheckRegistrationPassword("AB123!@#"); !errors.Is(err, accountdomain.ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
}
