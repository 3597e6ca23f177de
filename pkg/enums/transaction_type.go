package enums

import "fmt"

// TransactionType classifies a wallet transaction record.
type TransactionType string

const (
	TransactionTypeTransfer      TransactionType = "transfer"
	TransactionTypeEscrowRelease TransactionType = "escrow_release"
)

var validTransactionTypes = []TransactionType{
	TransactionTypeTransfer,
	TransactionTypeEscrowRelease,
}

// IsValid reports whether the value matches the canonical transaction enum.
func (t TransactionType) IsValid() bool {
	for _, candidate := range validTransactionTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTransactionType converts raw input into TransactionType.
func ParseTransactionType(value string) (TransactionType, error) {
	for _, candidate := range validTransactionTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid transaction type %q", value)
}
