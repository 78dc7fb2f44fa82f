package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ValidateName trims the name and checks it against MaxNameLength
func ValidateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrNameRequired
	}
	if len(name) > MaxNameLength {
		return "", ErrNameTooLong
	}
	return name, nil
}

// ValidateNonNegative rejects any value below zero with ErrInvalidAmount
func ValidateNonNegative(values ...decimal.Decimal) error {
	for _, v := range values {
		if v.IsNegative() {
			return ErrInvalidAmount
		}
	}
	return nil
}
