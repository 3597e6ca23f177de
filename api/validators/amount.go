package validators

import (
	"strings"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/paysecure/paysecure-backend/pkg/errors"
)

// ParseCashAmount converts a decimal dollar string into integer cents.
// Amounts with more than two fractional digits are rejected rather than
// rounded so callers never move a different amount than they asked for.
func ParseCashAmount(field, raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "amount is required").WithDetails(map[string]any{"field": field})
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "amount must be a decimal number").WithDetails(map[string]any{"field": field})
	}
	if value.Exponent() < -2 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "amount supports at most two decimal places").WithDetails(map[string]any{"field": field})
	}
	cents := value.Shift(2)
	if !cents.IsInteger() {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "amount supports at most two decimal places").WithDetails(map[string]any{"field": field})
	}
	if !cents.IsPositive() {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive").WithDetails(map[string]any{"field": field})
	}
	if !cents.BigInt().IsInt64() {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "amount out of range").WithDetails(map[string]any{"field": field})
	}
	return cents.IntPart(), nil
}

// FormatCashCents renders integer cents as a two-decimal dollar string.
func FormatCashCents(cents int64) string {
	return decimal.NewFromInt(cents).Shift(-2).StringFixed(2)
}
