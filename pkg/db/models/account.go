package models

import (
	"time"

	"github.com/google/uuid"
)

// Account holds the three balances owned by a user. Coins and escrow are
// whole coin units; cash is stored in cents. Every balance column carries a
// non-negative CHECK constraint, and mutation goes through the ledger's
// guarded updates only.
type Account struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID        uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	CoinBalance   int64     `gorm:"column:coin_balance;not null;default:0"`
	CashCents     int64     `gorm:"column:cash_cents;not null;default:0"`
	EscrowBalance int64     `gorm:"column:escrow_balance;not null;default:0"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
