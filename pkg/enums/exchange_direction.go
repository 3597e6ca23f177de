package enums

import "fmt"

// ExchangeDirection selects which way a 1:1 denomination exchange runs.
type ExchangeDirection string

const (
	ExchangeCoinsToCash ExchangeDirection = "coins_to_cash"
	ExchangeCashToCoins ExchangeDirection = "cash_to_coins"
)

var validExchangeDirections = []ExchangeDirection{
	ExchangeCoinsToCash,
	ExchangeCashToCoins,
}

// IsValid reports whether the value is a known ExchangeDirection.
func (d ExchangeDirection) IsValid() bool {
	for _, candidate := range validExchangeDirections {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseExchangeDirection converts raw input into an ExchangeDirection.
func ParseExchangeDirection(value string) (ExchangeDirection, error) {
	for _, candidate := range validExchangeDirections {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid exchange direction %q", value)
}
