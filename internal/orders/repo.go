package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/paysecure/paysecure-backend/pkg/db/models"
	"github.com/paysecure/paysecure-backend/pkg/enums"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, order *models.EscrowOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*models.EscrowOrder, error) {
	var order models.EscrowOrder
	if err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) ListByAccount(ctx context.Context, accountID uuid.UUID, role ListRole) ([]models.EscrowOrder, error) {
	query := r.db.WithContext(ctx)
	switch role {
	case ListRoleBuyer:
		query = query.Where("buyer_id = ?", accountID)
	case ListRoleSeller:
		query = query.Where("seller_id = ?", accountID)
	default:
		query = query.Where("buyer_id = ? OR seller_id = ?", accountID, accountID)
	}

	var orders []models.EscrowOrder
	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateStatus moves an order from one status to another. The current status
// sits in the WHERE clause, so of two concurrent transitions only the first
// matches a row; the loser sees RowsAffected == 0.
func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to enums.OrderStatus, closedAt *time.Time) (int64, error) {
	updates := map[string]any{
		"status":     to,
		"updated_at": time.Now().UTC(),
	}
	if closedAt != nil {
		updates["closed_at"] = *closedAt
	}

	result := r.db.WithContext(ctx).
		Model(&models.EscrowOrder{}).
		Where("id = ? AND status = ?", id, from).
		UpdateColumns(updates)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
