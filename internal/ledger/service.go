package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	apperrors "github.com/paysecure/paysecure-backend/pkg/errors"
	"github.com/paysecure/paysecure-backend/pkg/metrics"
	"gorm.io/gorm"
)

// Service applies batches of balance deltas atomically. Callers run it inside
// a transaction they own (via db.Client.WithTx) so order-state changes and
// transaction-log appends commit or roll back together with the balances.
type Service interface {
	Apply(ctx context.Context, tx *gorm.DB, entries []Entry) error
	Move(ctx context.Context, tx *gorm.DB, from, to uuid.UUID, field BalanceField, amount int64) error
}

type service struct {
	repo    Repository
	metrics *metrics.WalletMetrics
}

// NewService wires a ledger service with the provided repository.
func NewService(repo Repository, m *metrics.WalletMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("ledger repository required")
	}
	return &service{repo: repo, metrics: m}, nil
}

// Apply validates and applies every entry in deterministic account order.
// The transaction's rollback gives all-or-nothing semantics; a failed guard
// on any entry surfaces as InsufficientFunds or NotFound and aborts.
func (s *service) Apply(ctx context.Context, tx *gorm.DB, entries []Entry) error {
	if tx == nil {
		return fmt.Errorf("transaction is required")
	}
	if len(entries) == 0 {
		return apperrors.New(apperrors.CodeValidation, "ledger batch is empty")
	}
	for _, entry := range entries {
		if entry.AccountID == uuid.Nil {
			return apperrors.New(apperrors.CodeValidation, "ledger entry missing account id")
		}
		if !entry.Field.IsValid() {
			return apperrors.New(apperrors.CodeValidation, fmt.Sprintf("invalid balance field %q", entry.Field))
		}
		if entry.Delta == 0 {
			return apperrors.New(apperrors.CodeValidation, "ledger entry delta must be non-zero")
		}
	}

	repo := s.repo.WithTx(tx)
	for _, entry := range sortEntries(entries) {
		affected, err := repo.ApplyDelta(ctx, entry.AccountID, entry.Field, entry.Delta)
		if err != nil {
			s.metrics.IncLedgerApply("error")
			return err
		}
		if affected > 0 {
			continue
		}

		exists, err := repo.Exists(ctx, entry.AccountID)
		if err != nil {
			s.metrics.IncLedgerApply("error")
			return err
		}
		if !exists {
			s.metrics.IncLedgerApply("not_found")
			return apperrors.New(apperrors.CodeNotFound, "account not found").
				WithDetails(map[string]any{"account_id": entry.AccountID})
		}
		s.metrics.IncLedgerApply("insufficient_funds")
		return apperrors.New(apperrors.CodeInsufficientFunds, "balance would go negative").
			WithDetails(map[string]any{
				"account_id": entry.AccountID,
				"field":      string(entry.Field),
			})
	}
	s.metrics.IncLedgerApply("ok")
	return nil
}

// Move debits one account and credits another by the same amount on the same
// balance field, preserving the conservation invariant by construction.
func (s *service) Move(ctx context.Context, tx *gorm.DB, from, to uuid.UUID, field BalanceField, amount int64) error {
	if amount <= 0 {
		return apperrors.New(apperrors.CodeValidation, "amount must be positive")
	}
	if from == to {
		return apperrors.New(apperrors.CodeSelfTransfer, "cannot move funds to the same account")
	}
	return s.Apply(ctx, tx, []Entry{
		{AccountID: from, Field: field, Delta: -amount},
		{AccountID: to, Field: field, Delta: amount},
	})
}
