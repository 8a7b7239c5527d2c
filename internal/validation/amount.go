// Package validation holds boundary-level input checks. Monetary precision
// is a caller-side contract: amounts reaching the core are already known to
// carry at most 2 fraction digits and 14 integer digits.
package validation

import (
	"errors"

	"github.com/shopspring/decimal"
)

const maxIntegerDigits = 14

var (
	ErrAmountNotPositive = errors.New("amount must be greater than zero")
	ErrAmountScale       = errors.New("amount must have at most 2 decimal places")
	ErrAmountTooLarge    = errors.New("amount exceeds 14 integer digits")
)

// ValidateAmount enforces the wire contract for monetary amounts.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrAmountNotPositive
	}
	if amount.Exponent() < -2 {
		return ErrAmountScale
	}
	if len(amount.Truncate(0).Abs().String()) > maxIntegerDigits {
		return ErrAmountTooLarge
	}
	return nil
}

// ParseAmount parses and validates an amount from its request
// representation.
func ParseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, errors.New("invalid amount format")
	}
	if err := ValidateAmount(amount); err != nil {
		return decimal.Zero, err
	}
	return amount, nil
}
