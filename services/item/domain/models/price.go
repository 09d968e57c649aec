package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Price is a positive amount in cents. It renders as a two-decimal string.
type Price int64

// NewPrice accepts a positive number of cents.
func NewPrice(cents int64) (Price, error) {
	if cents <= 0 {
		return 0, fmt.Errorf("price must be greater than zero")
	}
	return Price(cents), nil
}

// ParsePrice reads a decimal amount such as "10", "10.5" or "10.50".
// More than two fractional digits, signs and exponents are rejected.
func ParsePrice(s string) (Price, error) {
	s = strings.TrimSpace(s)
	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" || !isDigits(whole) || (hasFrac && (frac == "" || len(frac) > 2 || !isDigits(frac))) {
		return 0, fmt.Errorf("price %q is not a decimal amount with at most two decimals", s)
	}
	for len(frac) < 2 {
		frac += "0"
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || units > math.MaxInt64/100-1 {
		return 0, fmt.Errorf("price %q is out of range", s)
	}
	cents, _ := strconv.ParseInt(frac, 10, 64)
	return NewPrice(units*100 + cents)
}

// Cents returns the amount in cents.
func (p Price) Cents() int64 { return int64(p) }

// String renders the amount as "10.00".
func (p Price) String() string {
	return fmt.Sprintf("%d.%02d", int64(p)/100, int64(p)%100)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
