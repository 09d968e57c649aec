// Package services contains the account context's stateless domain rules.
package services

import (
	"strings"
	"unicode"
	"unicode/utf8"

	accountdomain "github.com/ghuser/simplemarket/services/account/domain"
)

// Violation codes reported by ValidatePassword.
const (
	CodeRequired              = "required"
	CodeInsufficientUppercase = "insufficient_uppercase"
	CodeInsufficientDigits    = "insufficient_digits"
	CodeInsufficientSymbols   = "insufficient_symbols"

	// Reported only by ValidateRegistrationPassword.
	CodeTooShort         = "too_short"
	CodeMissingLowercase = "missing_lowercase"
)

const (
	minUppercase = 2
	minDigits    = 3
	minSymbols   = 3

	minRegistrationLength = 8
)

// Violation is one failed password rule.
type Violation struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidatePassword checks candidate against the password policy. A blank
// candidate yields only the required violation; otherwise every failed rule
// is reported. An empty result means the candidate is acceptable.
func ValidatePassword(candidate string) []Violation {
	if strings.TrimSpace(candidate) == "" {
		return []Violation{{Code: CodeRequired, Message: "Password is required."}}
	}

	var upper, digits, symbols int
	for _, r := range candidate {
		switch {
		case unicode.IsUpper(r):
			upper++
		case unicode.IsDigit(r):
			digits++
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			symbols++
		}
	}

	violations := []Violation{}
	if upper < minUppercase {
		violations = append(violations, Violation{Code: CodeInsufficientUppercase, Message: "Password must contain at least 2 uppercase letters."})
	}
	if digits < minDigits {
		violations = append(violations, Violation{Code: CodeInsufficientDigits, Message: "Password must contain at least 3 numbers."})
	}
	if symbols < minSymbols {
		violations = append(violations, Violation{Code: CodeInsufficientSymbols, Message: "Password must contain at least 3 symbols."})
	}
	return violations
}

// ValidateRegistrationPassword applies ValidatePassword plus the account
// store's own requirements: at least 8 characters and one lowercase letter.
func ValidateRegistrationPassword(candidate string) []Violation {
	violations := ValidatePassword(candidate)
	if len(violations) == 1 && violations[0].Code == CodeRequired {
		return violations
	}
	if utf8.RuneCountInString(candidate) < minRegistrationLength {
		violations = append(violations, Violation{Code: CodeTooShort, Message: "Password must be at least 8 characters long."})
	}
	if !strings.ContainsFunc(candidate, unicode.IsLower) {
		violations = append(violations, Violation{Code: CodeMissingLowercase, Message: "Password must contain a lowercase letter."})
	}
	return violations
}

// WeakPasswordError carries the violations of a rejected password. It
// matches domain.ErrWeakPassword under errors.Is.
type WeakPasswordError struct {
	Violations []Violation
}

func (e *WeakPasswordError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Message)
	}
	return accountdomain.ErrWeakPassword.Error() + ": " + strings.Join(msgs, " ")
}

func (e *WeakPasswordError) Unwrap() error {
	return accountdomain.ErrWeakPassword
}

// CheckPassword returns a *WeakPasswordError when candidate violates the policy.
func CheckPassword(candidate string) error {
	return weak(ValidatePassword(candidate))
}

// CheckRegistrationPassword is CheckPassword with the registration rules.
func CheckRegistrationPassword(candidate string) error {
	return weak(ValidateRegistrationPassword(candidate))
}

func weak(v []Violation) error {
	if len(v) > 0 {
		return &WeakPasswordError{Violations: v}
	}
	return nil
}
