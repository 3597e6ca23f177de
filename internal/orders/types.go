package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/paysecure/paysecure-backend/pkg/db/models"
	"github.com/paysecure/paysecure-backend/pkg/enums"
	"gorm.io/gorm"
)

// Repository manages persistence for escrow orders.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.EscrowOrder) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.EscrowOrder, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID, role ListRole) ([]models.EscrowOrder, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to enums.OrderStatus, closedAt *time.Time) (int64, error)
}

// ListRole filters an order listing by the account's side of the trade.
type ListRole string

const (
	ListRoleBuyer  ListRole = "buyer"
	ListRoleSeller ListRole = "seller"
	ListRoleAll    ListRole = "all"
)

// IsValid reports whether the role is a known listing filter.
func (r ListRole) IsValid() bool {
	switch r {
	case ListRoleBuyer, ListRoleSeller, ListRoleAll:
		return true
	default:
		return false
	}
}

// PlaceOrderInput captures the data needed to open an escrow order.
type PlaceOrderInput struct {
	BuyerID     uuid.UUID
	SellerID    uuid.UUID
	ProductName string
	Description string
	AmountCoins int64
}

// DisputeResolution names the arbitration outcome for a disputed order.
type DisputeResolution string

const (
	// ResolutionReleaseToSeller completes the order and pays the seller.
	ResolutionReleaseToSeller DisputeResolution = "release_to_seller"
	// ResolutionRefundBuyer cancels the order and returns the escrowed coins.
	ResolutionRefundBuyer DisputeResolution = "refund_buyer"
)

// IsValid reports whether the resolution is a known arbitration outcome.
func (r DisputeResolution) IsValid() bool {
	switch r {
	case ResolutionReleaseToSeller, ResolutionRefundBuyer:
		return true
	default:
		return false
	}
}
