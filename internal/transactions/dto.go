package transactions

import (
	"time"

	"github.com/google/uuid"

	"github.com/paysecure/paysecure-backend/pkg/db/models"
	"github.com/paysecure/paysecure-backend/pkg/enums"
)

// TransactionDTO is the transport shape of a wallet transaction record.
type TransactionDTO struct {
	ID            uuid.UUID             `json:"id"`
	Type          enums.TransactionType `json:"type"`
	FromAccountID uuid.UUID             `json:"from_account_id"`
	ToAccountID   uuid.UUID             `json:"to_account_id"`
	Amount        int64                 `json:"amount"`
	BalanceKind   *enums.BalanceKind    `json:"balance_kind,omitempty"`
	OrderID       *uuid.UUID            `json:"order_id,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
}

func FromModel(t *models.WalletTransaction) *TransactionDTO {
	if t == nil {
		return nil
	}

	return &TransactionDTO{
		ID:            t.ID,
		Type:          t.Type,
		FromAccountID: t.FromAccountID,
		ToAccountID:   t.ToAccountID,
		Amount:        t.Amount,
		BalanceKind:   t.BalanceKind,
		OrderID:       t.OrderID,
		CreatedAt:     t.CreatedAt,
	}
}

// FromModels maps a listing to DTOs, preserving order.
func FromModels(items []models.WalletTransaction) []TransactionDTO {
	out := make([]TransactionDTO, 0, len(items))
	for i := range items {
		out = append(out, *FromModel(&items[i]))
	}
	return out
}
