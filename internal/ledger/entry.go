package ledger

import (
	"sort"

	"github.com/google/uuid"
)

// BalanceField names an account balance column the ledger may mutate. The
// closed set doubles as a whitelist: column names reach SQL only through it.
type BalanceField string

const (
	FieldCoins  BalanceField = "coin_balance"
	FieldCash   BalanceField = "cash_cents"
	FieldEscrow BalanceField = "escrow_balance"
)

// IsValid reports whether the field is one of the known balance columns.
func (f BalanceField) IsValid() bool {
	switch f {
	case FieldCoins, FieldCash, FieldEscrow:
		return true
	default:
		return false
	}
}

// Entry is a single signed balance delta against one account field. A batch
// of entries is applied atomically; any entry that would drive its balance
// negative aborts the whole batch.
type Entry struct {
	AccountID uuid.UUID
	Field     BalanceField
	Delta     int64
}

// sortEntries orders entries by (account id, field) so concurrent batches
// always lock account rows in the same order.
func sortEntries(entries []Entry) []Entry {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.AccountID != b.AccountID {
			return a.AccountID.String() < b.AccountID.String()
		}
		return a.Field < b.Field
	})
	return sorted
}
