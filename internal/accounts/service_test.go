package accounts

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/paysecure/paysecure-backend/internal/ledger"
	"github.com/paysecure/paysecure-backend/pkg/config"
	"github.com/paysecure/paysecure-backend/pkg/db/models"
	apperrors "github.com/paysecure/paysecure-backend/pkg/errors"
	"gorm.io/gorm"
)

type fakeAccountsRepo struct {
	accounts map[uuid.UUID]*models.Account
}

func newFakeAccountsRepo() *fakeAccountsRepo {
	return &fakeAccountsRepo{accounts: map[uuid.UUID]*models.Account{}}
}

func (f *fakeAccountsRepo) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeAccountsRepo) Create(ctx context.Context, account *models.Account) error {
	f.accounts[account.ID] = account
	return nil
}

func (f *fakeAccountsRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	account, ok := f.accounts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *account
	return &copied, nil
}

func (f *fakeAccountsRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Account, error) {
	for _, account := range f.accounts {
		if account.UserID == userID {
			copied := *account
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeLedger struct {
	applied [][]ledger.Entry
	err     error
}

func (f *fakeLedger) Apply(ctx context.Context, tx *gorm.DB, entries []ledger.Entry) error {
	if f.err != nil {
		return f.err
	}
	f.applied = append(f.applied, entries)
	return nil
}

func (f *fakeLedger) Move(ctx context.Context, tx *gorm.DB, from, to uuid.UUID, field ledger.BalanceField, amount int64) error {
	return f.Apply(ctx, tx, []ledger.Entry{
		{AccountID: from, Field: field, Delta: -amount},
		{AccountID: to, Field: field, Delta: amount},
	})
}

type fakeRunner struct{}

func (fakeRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(&gorm.DB{})
}

func testWalletConfig() config.WalletConfig {
	return config.WalletConfig{
		GrantCoins:        1000,
		GrantCashCents:    100000,
		TestFundCoins:     500,
		TestFundCashCents: 50000,
	}
}

func newTestService(t *testing.T, repo Repository, led ledger.Service, env string) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Repo:         repo,
		Ledger:       led,
		TxRunner:     fakeRunner{},
		WalletConfig: testWalletConfig(),
		AppConfig:    config.AppConfig{Env: env},
	})
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}
	return svc
}

func TestCreateForUserAppliesGrant(t *testing.T) {
	repo := newFakeAccountsRepo()
	led := &fakeLedger{}
	svc := newTestService(t, repo, led, "development")

	account, err := svc.CreateForUser(context.Background(), &gorm.DB{}, uuid.New())
	if err != nil {
		t.Fatalf("CreateForUser returned error: %v", err)
	}
	if account.CoinBalance != 1000 || account.CashCents != 100000 {
		t.Fatalf("grant balances = (%d, %d), want (1000, 100000)", account.CoinBalance, account.CashCents)
	}
	if len(led.applied) != 1 || len(led.applied[0]) != 2 {
		t.Fatalf("expected one batch of two grant entries, got %+v", led.applied)
	}
	for _, entry := range led.applied[0] {
		if entry.Delta <= 0 {
			t.Fatalf("grant entry must be a credit, got %+v", entry)
		}
	}
}

func TestAddTestFundsBlockedInProd(t *testing.T) {
	repo := newFakeAccountsRepo()
	svc := newTestService(t, repo, &fakeLedger{}, "production")

	_, err := svc.AddTestFunds(context.Background(), uuid.New())
	if !apperrors.Is(err, apperrors.CodeForbidden) {
		t.Fatalf("expected FORBIDDEN, got %v", err)
	}
}

func TestAddTestFundsCreditsAccount(t *testing.T) {
	repo := newFakeAccountsRepo()
	led := &fakeLedger{}
	svc := newTestService(t, repo, led, "development")

	account := &models.Account{ID: uuid.New(), UserID: uuid.New(), CoinBalance: 1500, CashCents: 150000}
	repo.accounts[account.ID] = account

	got, err := svc.AddTestFunds(context.Background(), account.ID)
	if err != nil {
		t.Fatalf("AddTestFunds returned error: %v", err)
	}
	if got.ID != account.ID {
		t.Fatalf("returned account %s, want %s", got.ID, account.ID)
	}
	if len(led.applied) != 1 {
		t.Fatalf("expected one ledger batch, got %d", len(led.applied))
	}
}

func TestGetByIDNotFound(t *testing.T) {
	svc := newTestService(t, newFakeAccountsRepo(), &fakeLedger{}, "development")

	_, err := svc.GetByID(context.Background(), uuid.New())
	if !apperrors.Is(err, apperrors.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}
