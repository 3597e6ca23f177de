package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/paysecure/paysecure-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository performs guarded balance updates against account rows.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ApplyDelta(ctx context.Context, accountID uuid.UUID, field BalanceField, delta int64) (int64, error)
	Exists(ctx context.Context, accountID uuid.UUID) (bool, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a ledger repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// ApplyDelta adds delta to the named balance column. The WHERE clause carries
// the non-negativity guard, so a debit past zero simply matches no rows and
// the caller sees RowsAffected == 0 without tripping the CHECK constraint.
func (r *repository) ApplyDelta(ctx context.Context, accountID uuid.UUID, field BalanceField, delta int64) (int64, error) {
	if !field.IsValid() {
		return 0, fmt.Errorf("invalid balance field %q", field)
	}

	column := string(field)
	result := r.db.WithContext(ctx).
		Model(&models.Account{}).
		Where(fmt.Sprintf("id = ? AND %s + ? >= 0", column), accountID, delta).
		UpdateColumns(map[string]any{
			column:       gorm.Expr(fmt.Sprintf("%s + ?", column), delta),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *repository) Exists(ctx context.Context, accountID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("id = ?", accountID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
