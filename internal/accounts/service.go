package accounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/paysecure/paysecure-backend/internal/ledger"
	"github.com/paysecure/paysecure-backend/pkg/config"
	"github.com/paysecure/paysecure-backend/pkg/db/models"
	apperrors "github.com/paysecure/paysecure-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service manages wallet accounts and the two funding paths that mint value:
// the one-time registration grant and the dev-only test funds top-up.
type Service interface {
	CreateForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*models.Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Account, error)
	AddTestFunds(ctx context.Context, accountID uuid.UUID) (*models.Account, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo     Repository
	ledger   ledger.Service
	runner   txRunner
	wallet   config.WalletConfig
	allowDev bool
}

// ServiceParams bundles the dependencies required to build an accounts service.
type ServiceParams struct {
	Repo         Repository
	Ledger       ledger.Service
	TxRunner     txRunner
	WalletConfig config.WalletConfig
	AppConfig    config.AppConfig
}

// NewService constructs an accounts service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("accounts repository is required")
	}
	if params.Ledger == nil {
		return nil, fmt.Errorf("ledger service is required")
	}
	if params.TxRunner == nil {
		return nil, fmt.Errorf("tx runner is required")
	}
	return &service{
		repo:     params.Repo,
		ledger:   params.Ledger,
		runner:   params.TxRunner,
		wallet:   params.WalletConfig,
		allowDev: !params.AppConfig.IsProd(),
	}, nil
}

// CreateForUser opens an account inside the caller's transaction and applies
// the registration grant. The grant is the only mint in production; it keeps
// the conservation invariant scoped to post-registration movement.
func (s *service) CreateForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*models.Account, error) {
	if tx == nil {
		return nil, fmt.Errorf("transaction is required")
	}
	if userID == uuid.Nil {
		return nil, apperrors.New(apperrors.CodeValidation, "user id is required")
	}

	account := &models.Account{ID: uuid.New(), UserID: userID}
	if err := s.repo.WithTx(tx).Create(ctx, account); err != nil {
		return nil, err
	}

	entries := grantEntries(account.ID, s.wallet.GrantCoins, s.wallet.GrantCashCents)
	if len(entries) > 0 {
		if err := s.ledger.Apply(ctx, tx, entries); err != nil {
			return nil, err
		}
		account.CoinBalance = s.wallet.GrantCoins
		account.CashCents = s.wallet.GrantCashCents
	}
	return account, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	if id == uuid.Nil {
		return nil, apperrors.New(apperrors.CodeValidation, "account id is required")
	}
	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.CodeNotFound, "account not found")
		}
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "load account")
	}
	return account, nil
}

func (s *service) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Account, error) {
	if userID == uuid.Nil {
		return nil, apperrors.New(apperrors.CodeValidation, "user id is required")
	}
	account, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.CodeNotFound, "account not found")
		}
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "load account")
	}
	return account, nil
}

// AddTestFunds mints the configured top-up into spendable balances. Disabled
// in production.
func (s *service) AddTestFunds(ctx context.Context, accountID uuid.UUID) (*models.Account, error) {
	if !s.allowDev {
		return nil, apperrors.New(apperrors.CodeForbidden, "test funds are disabled in this environment")
	}
	if accountID == uuid.Nil {
		return nil, apperrors.New(apperrors.CodeValidation, "account id is required")
	}

	entries := grantEntries(accountID, s.wallet.TestFundCoins, s.wallet.TestFundCashCents)
	if len(entries) == 0 {
		return nil, apperrors.New(apperrors.CodeValidation, "test fund amounts are not configured")
	}

	err := s.runner.WithTx(ctx, func(tx *gorm.DB) error {
		return s.ledger.Apply(ctx, tx, entries)
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, accountID)
}

func grantEntries(accountID uuid.UUID, coins, cashCents int64) []ledger.Entry {
	entries := make([]ledger.Entry, 0, 2)
	if coins > 0 {
		entries = append(entries, ledger.Entry{AccountID: accountID, Field: ledger.FieldCoins, Delta: coins})
	}
	if cashCents > 0 {
		entries = append(entries, ledger.Entry{AccountID: accountID, Field: ledger.FieldCash, Delta: cashCents})
	}
	return entries
}
