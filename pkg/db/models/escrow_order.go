package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/paysecure/paysecure-backend/pkg/enums"
)

// EscrowOrder is a purchase whose coins sit in the buyer's escrow balance
// until delivery is confirmed or the order is rejected/disputed. Rows are
// immutable history once terminal; only status and closed_at ever change.
type EscrowOrder struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber int64             `gorm:"column:order_number;not null;autoIncrement"`
	BuyerID     uuid.UUID         `gorm:"column:buyer_id;type:uuid;not null;index"`
	SellerID    uuid.UUID         `gorm:"column:seller_id;type:uuid;not null;index"`
	ProductName string            `gorm:"column:product_name;type:text;not null"`
	Description string            `gorm:"column:description;type:text;not null"`
	AmountCoins int64             `gorm:"column:amount_coins;not null"`
	Status      enums.OrderStatus `gorm:"column:status;type:text;not null;default:'initiated'"`
	ClosedAt    *time.Time        `gorm:"column:closed_at"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
