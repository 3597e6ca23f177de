package enums

import "fmt"

// BalanceKind names the spendable balance a payment draws from.
type BalanceKind string

const (
	BalanceKindCoins BalanceKind = "coins"
	BalanceKindCash  BalanceKind = "cash"
)

var validBalanceKinds = []BalanceKind{
	BalanceKindCoins,
	BalanceKindCash,
}

// String implements fmt.Stringer.
func (k BalanceKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known BalanceKind.
func (k BalanceKind) IsValid() bool {
	for _, candidate := range validBalanceKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseBalanceKind converts raw input into a BalanceKind.
func ParseBalanceKind(value string) (BalanceKind, error) {
	for _, candidate := range validBalanceKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid balance kind %q", value)
}
