package transactions

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/paysecure/paysecure-backend/pkg/db/models"
	"github.com/paysecure/paysecure-backend/pkg/enums"
	"gorm.io/gorm"
)

const defaultListLimit = 100

// Service records and lists wallet transactions. Records are derived history:
// balances never depend on them, so a listing is safe to paginate or trim.
type Service interface {
	Record(ctx context.Context, tx *gorm.DB, input RecordTransactionInput) (*models.WalletTransaction, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]models.WalletTransaction, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.WalletTransaction, error)
}

type service struct {
	repo Repository
}

// RecordTransactionInput captures the immutable data a wallet transaction requires.
type RecordTransactionInput struct {
	Type          enums.TransactionType
	FromAccountID uuid.UUID
	ToAccountID   uuid.UUID
	Amount        int64
	BalanceKind   *enums.BalanceKind
	OrderID       *uuid.UUID
}

// NewService wires a transaction service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("transactions repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Record(ctx context.Context, tx *gorm.DB, input RecordTransactionInput) (*models.WalletTransaction, error) {
	if !input.Type.IsValid() {
		return nil, fmt.Errorf("invalid transaction type %q", input.Type)
	}
	if input.FromAccountID == uuid.Nil {
		return nil, fmt.Errorf("from account id is required")
	}
	if input.ToAccountID == uuid.Nil {
		return nil, fmt.Errorf("to account id is required")
	}
	if input.Amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}
	if input.BalanceKind != nil && !input.BalanceKind.IsValid() {
		return nil, fmt.Errorf("invalid balance kind %q", *input.BalanceKind)
	}

	txn := &models.WalletTransaction{
		Type:          input.Type,
		FromAccountID: input.FromAccountID,
		ToAccountID:   input.ToAccountID,
		Amount:        input.Amount,
		BalanceKind:   input.BalanceKind,
		OrderID:       input.OrderID,
	}

	if err := s.repo.WithTx(tx).Create(ctx, txn); err != nil {
		return nil, err
	}
	return txn, nil
}

func (s *service) ListByAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]models.WalletTransaction, error) {
	if accountID == uuid.Nil {
		return nil, fmt.Errorf("account id is required")
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	return s.repo.ListByAccountID(ctx, accountID, limit)
}

func (s *service) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.WalletTransaction, error) {
	if orderID == uuid.Nil {
		return nil, fmt.Errorf("order id is required")
	}
	return s.repo.ListByOrderID(ctx, orderID)
}
