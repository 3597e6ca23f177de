package exchange

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/paysecure/paysecure-backend/internal/ledger"
	"github.com/paysecure/paysecure-backend/pkg/db"
	"github.com/paysecure/paysecure-backend/pkg/enums"
	apperrors "github.com/paysecure/paysecure-backend/pkg/errors"
	"github.com/paysecure/paysecure-backend/pkg/metrics"
	"gorm.io/gorm"
)

// CentsPerCoin fixes the exchange rate: one coin is exactly one dollar.
const CentsPerCoin int64 = 100

// Service converts between an account's coin and cash balances at the fixed
// 1:1 rate. Both legs land on the same account, so conversion never changes
// the account's total worth.
type Service interface {
	Exchange(ctx context.Context, input ExchangeInput) error
}

// ExchangeInput captures a conversion request. Amount is whole coins in
// either direction; the cash leg is Amount * CentsPerCoin.
type ExchangeInput struct {
	AccountID uuid.UUID
	Direction enums.ExchangeDirection
	Amount    int64
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	ledger  ledger.Service
	runner  txRunner
	metrics *metrics.WalletMetrics
}

// ServiceParams bundles the dependencies required to build an exchange service.
type ServiceParams struct {
	Ledger   ledger.Service
	TxRunner txRunner
	Metrics  *metrics.WalletMetrics
}

// NewService constructs an exchange service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Ledger == nil {
		return nil, fmt.Errorf("ledger service is required")
	}
	if params.TxRunner == nil {
		return nil, fmt.Errorf("tx runner is required")
	}
	return &service{
		ledger:  params.Ledger,
		runner:  params.TxRunner,
		metrics: params.Metrics,
	}, nil
}

func (s *service) Exchange(ctx context.Context, input ExchangeInput) error {
	if input.AccountID == uuid.Nil {
		return apperrors.New(apperrors.CodeValidation, "account id is required")
	}
	if !input.Direction.IsValid() {
		return apperrors.New(apperrors.CodeValidation, fmt.Sprintf("invalid exchange direction %q", input.Direction))
	}
	if input.Amount <= 0 {
		return apperrors.New(apperrors.CodeValidation, "amount must be positive")
	}

	cashCents := input.Amount * CentsPerCoin
	if cashCents/CentsPerCoin != input.Amount {
		return apperrors.New(apperrors.CodeValidation, "amount too large")
	}

	entries := []ledger.Entry{
		{AccountID: input.AccountID, Field: ledger.FieldCoins, Delta: -input.Amount},
		{AccountID: input.AccountID, Field: ledger.FieldCash, Delta: cashCents},
	}
	if input.Direction == enums.ExchangeCashToCoins {
		entries = []ledger.Entry{
			{AccountID: input.AccountID, Field: ledger.FieldCash, Delta: -cashCents},
			{AccountID: input.AccountID, Field: ledger.FieldCoins, Delta: input.Amount},
		}
	}

	err := s.runner.WithTx(ctx, func(tx *gorm.DB) error {
		return s.ledger.Apply(ctx, tx, entries)
	})
	if err != nil {
		s.metrics.IncExchange(string(input.Direction), "failed")
		if db.IsLockContention(err) {
			return apperrors.Wrap(apperrors.CodeBusy, err, "account rows are contended")
		}
		return err
	}

	s.metrics.IncExchange(string(input.Direction), "ok")
	return nil
}
