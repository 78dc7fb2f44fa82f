package domain

import "github.com/shopspring/decimal"

var twelve = decimal.NewFromInt(12)

// RoundCurrency rounds a currency amount to cents using banker's rounding.
// Amounts are exact decimals, so 2.675 rounds to 2.68.
func RoundCurrency(v decimal.Decimal) decimal.Decimal {
	return v.RoundBank(2)
}

// RoundRate rounds a rate or yield fraction to four places
func RoundRate(v decimal.Decimal) decimal.Decimal {
	return v.RoundBank(4)
}
