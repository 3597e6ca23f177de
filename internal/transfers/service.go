package transfers

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/paysecure/paysecure-backend/internal/ledger"
	"github.com/paysecure/paysecure-backend/internal/transactions"
	"github.com/paysecure/paysecure-backend/pkg/db"
	"github.com/paysecure/paysecure-backend/pkg/db/models"
	"github.com/paysecure/paysecure-backend/pkg/enums"
	apperrors "github.com/paysecure/paysecure-backend/pkg/errors"
	"github.com/paysecure/paysecure-backend/pkg/metrics"
	"gorm.io/gorm"
)

// Service moves spendable balance between two accounts and records the
// movement. Escrow is not transferable; only coins and cash are.
type Service interface {
	Transfer(ctx context.Context, input TransferInput) (*models.WalletTransaction, error)
}

// TransferInput captures a peer-to-peer transfer. Amount is whole coins for
// coin transfers and cents for cash transfers.
type TransferInput struct {
	FromAccountID uuid.UUID
	ToAccountID   uuid.UUID
	Kind          enums.BalanceKind
	Amount        int64
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	ledger  ledger.Service
	txns    transactions.Service
	runner  txRunner
	metrics *metrics.WalletMetrics
}

// ServiceParams bundles the dependencies required to build a transfer service.
type ServiceParams struct {
	Ledger       ledger.Service
	Transactions transactions.Service
	TxRunner     txRunner
	Metrics      *metrics.WalletMetrics
}

// NewService constructs a transfer service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Ledger == nil {
		return nil, fmt.Errorf("ledger service is required")
	}
	if params.Transactions == nil {
		return nil, fmt.Errorf("transactions service is required")
	}
	if params.TxRunner == nil {
		return nil, fmt.Errorf("tx runner is required")
	}
	return &service{
		ledger:  params.Ledger,
		txns:    params.Transactions,
		runner:  params.TxRunner,
		metrics: params.Metrics,
	}, nil
}

func (s *service) Transfer(ctx context.Context, input TransferInput) (*models.WalletTransaction, error) {
	if input.FromAccountID == uuid.Nil || input.ToAccountID == uuid.Nil {
		return nil, apperrors.New(apperrors.CodeValidation, "both account ids are required")
	}
	if input.FromAccountID == input.ToAccountID {
		return nil, apperrors.New(apperrors.CodeSelfTransfer, "cannot transfer to your own account")
	}
	if !input.Kind.IsValid() {
		return nil, apperrors.New(apperrors.CodeValidation, fmt.Sprintf("invalid balance kind %q", input.Kind))
	}
	if input.Amount <= 0 {
		return nil, apperrors.New(apperrors.CodeValidation, "amount must be positive")
	}

	field := ledger.FieldCoins
	if input.Kind == enums.BalanceKindCash {
		field = ledger.FieldCash
	}

	var record *models.WalletTransaction
	err := s.runner.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.ledger.Move(ctx, tx, input.FromAccountID, input.ToAccountID, field, input.Amount); err != nil {
			return err
		}

		kind := input.Kind
		txn, err := s.txns.Record(ctx, tx, transactions.RecordTransactionInput{
			Type:          enums.TransactionTypeTransfer,
			FromAccountID: input.FromAccountID,
			ToAccountID:   input.ToAccountID,
			Amount:        input.Amount,
			BalanceKind:   &kind,
		})
		if err != nil {
			return err
		}
		record = txn
		return nil
	})
	if err != nil {
		s.metrics.IncTransfer(string(input.Kind), "failed")
		if db.IsLockContention(err) {
			return nil, apperrors.Wrap(apperrors.CodeBusy, err, "account rows are contended")
		}
		return nil, err
	}

	s.metrics.IncTransfer(string(input.Kind), "ok")
	return record, nil
}
