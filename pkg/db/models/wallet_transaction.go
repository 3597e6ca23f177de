package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/paysecure/paysecure-backend/pkg/enums"
)

// WalletTransaction records a completed money movement for display and
// audit. Amount is in coin units for coin/escrow movements and in cents for
// cash movements; BalanceKind disambiguates on transfers. Append-only.
type WalletTransaction struct {
	ID            uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Type          enums.TransactionType `gorm:"column:type;type:text;not null"`
	FromAccountID uuid.UUID             `gorm:"column:from_account_id;type:uuid;not null;index"`
	ToAccountID   uuid.UUID             `gorm:"column:to_account_id;type:uuid;not null;index"`
	Amount        int64                 `gorm:"column:amount;not null"`
	BalanceKind   *enums.BalanceKind    `gorm:"column:balance_kind;type:text"`
	OrderID       *uuid.UUID            `gorm:"column:order_id;type:uuid"`
	CreatedAt     time.Time             `gorm:"column:created_at;autoCreateTime"`
}
