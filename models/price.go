package models

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrInvalidPrice = errors.New("invalid price")

// ParsePrice converts a decimal string like "19.99" into minor units.
// Negative amounts and sub-cent precision are rejected.
func ParsePrice(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrInvalidPrice
	}
	if d.IsNegative() {
		return 0, ErrInvalidPrice
	}

	minor := d.Shift(2)
	if !minor.IsInteger() {
		return 0, ErrInvalidPrice
	}
	return minor.IntPart(), nil
}

// FormatPrice renders minor units back to a two-decimal string.
func FormatPrice(minor int64) string {
	return decimal.NewFromInt(minor).Shift(-2).StringFixed(2)
}
