package accounts

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/paysecure/paysecure-backend/pkg/db/models"
)

// AccountDTO is the transport shape of a wallet account. Cash is rendered as
// a two-decimal dollar string alongside the raw cent count so clients never
// do float math on money.
type AccountDTO struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	CoinBalance   int64     `json:"coin_balance"`
	CashCents     int64     `json:"cash_cents"`
	Cash          string    `json:"cash"`
	EscrowBalance int64     `json:"escrow_balance"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func FromModel(a *models.Account) *AccountDTO {
	if a == nil {
		return nil
	}

	return &AccountDTO{
		ID:            a.ID,
		UserID:        a.UserID,
		CoinBalance:   a.CoinBalance,
		CashCents:     a.CashCents,
		Cash:          decimal.NewFromInt(a.CashCents).Shift(-2).StringFixed(2),
		EscrowBalance: a.EscrowBalance,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}
