package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/paysecure/paysecure-backend/pkg/db/models"
	"github.com/paysecure/paysecure-backend/pkg/enums"
)

// OrderDTO is the transport shape of an escrow order.
type OrderDTO struct {
	ID          uuid.UUID         `json:"id"`
	OrderNumber int64             `json:"order_number"`
	BuyerID     uuid.UUID         `json:"buyer_id"`
	SellerID    uuid.UUID         `json:"seller_id"`
	ProductName string            `json:"product_name"`
	Description string            `json:"description"`
	AmountCoins int64             `json:"amount_coins"`
	Status      enums.OrderStatus `json:"status"`
	ClosedAt    *time.Time        `json:"closed_at,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func FromModel(o *models.EscrowOrder) *OrderDTO {
	if o == nil {
		return nil
	}

	return &OrderDTO{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		BuyerID:     o.BuyerID,
		SellerID:    o.SellerID,
		ProductName: o.ProductName,
		Description: o.Description,
		AmountCoins: o.AmountCoins,
		Status:      o.Status,
		ClosedAt:    o.ClosedAt,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

// FromModels maps a listing to DTOs, preserving order.
func FromModels(items []models.EscrowOrder) []OrderDTO {
	out := make([]OrderDTO, 0, len(items))
	for i := range items {
		out = append(out, *FromModel(&items[i]))
	}
	return out
}
