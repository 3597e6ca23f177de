package exchange

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/paysecure/paysecure-backend/internal/ledger"
	"github.com/paysecure/paysecure-backend/pkg/enums"
	apperrors "github.com/paysecure/paysecure-backend/pkg/errors"
	"gorm.io/gorm"
)

type fakeBalances struct {
	balances map[uuid.UUID]map[ledger.BalanceField]int64
}

func newFakeBalances() *fakeBalances {
	return &fakeBalances{balances: map[uuid.UUID]map[ledger.BalanceField]int64{}}
}

func (f *fakeBalances) seed(accountID uuid.UUID, field ledger.BalanceField, amount int64) {
	if f.balances[accountID] == nil {
		f.balances[accountID] = map[ledger.BalanceField]int64{}
	}
	f.balances[accountID][field] = amount
}

func (f *fakeBalances) Apply(ctx context.Context, tx *gorm.DB, entries []ledger.Entry) error {
	for _, entry := range entries {
		account, ok := f.balances[entry.AccountID]
		if !ok {
			return apperrors.New(apperrors.CodeNotFound, "account not found")
		}
		if account[entry.Field]+entry.Delta < 0 {
			return apperrors.New(apperrors.CodeInsufficientFunds, "balance would go negative")
		}
	}
	for _, entry := range entries {
		f.balances[entry.AccountID][entry.Field] += entry.Delta
	}
	return nil
}

func (f *fakeBalances) Move(ctx context.Context, tx *gorm.DB, from, to uuid.UUID, field ledger.BalanceField, amount int64) error {
	return f.Apply(ctx, tx, []ledger.Entry{
		{AccountID: from, Field: field, Delta: -amount},
		{AccountID: to, Field: field, Delta: amount},
	})
}

type fakeRunner struct{}

func (fakeRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(&gorm.DB{})
}

func newExchangeFixture(t *testing.T) (Service, *fakeBalances, uuid.UUID) {
	t.Helper()

	balances := newFakeBalances()
	account := uuid.New()
	balances.seed(account, ledger.FieldCoins, 1000)
	balances.seed(account, ledger.FieldCash, 100000)

	svc, err := NewService(ServiceParams{
		Ledger:   balances,
		TxRunner: fakeRunner{},
	})
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}
	return svc, balances, account
}

func TestExchangeCoinsToCash(t *testing.T) {
	svc, balances, account := newExchangeFixture(t)

	err := svc.Exchange(context.Background(), ExchangeInput{
		AccountID: account,
		Direction: enums.ExchangeCoinsToCash,
		Amount:    250,
	})
	if err != nil {
		t.Fatalf("Exchange returned error: %v", err)
	}
	if got := balances.balances[account][ledger.FieldCoins]; got != 750 {
		t.Fatalf("coins = %d, want 750", got)
	}
	if got := balances.balances[account][ledger.FieldCash]; got != 125000 {
		t.Fatalf("cash = %d cents, want 125000", got)
	}
}

func TestExchangeCashToCoins(t *testing.T) {
	svc, balances, account := newExchangeFixture(t)

	err := svc.Exchange(context.Background(), ExchangeInput{
		AccountID: account,
		Direction: enums.ExchangeCashToCoins,
		Amount:    1000,
	})
	if err != nil {
		t.Fatalf("Exchange returned error: %v", err)
	}
	if got := balances.balances[account][ledger.FieldCoins]; got != 2000 {
		t.Fatalf("coins = %d, want 2000", got)
	}
	if got := balances.balances[account][ledger.FieldCash]; got != 0 {
		t.Fatalf("cash = %d cents, want 0", got)
	}
}

func TestExchangeInsufficientSource(t *testing.T) {
	svc, balances, account := newExchangeFixture(t)

	err := svc.Exchange(context.Background(), ExchangeInput{
		AccountID: account,
		Direction: enums.ExchangeCoinsToCash,
		Amount:    1001,
	})
	if !apperrors.Is(err, apperrors.CodeInsufficientFunds) {
		t.Fatalf("expected INSUFFICIENT_FUNDS, got %v", err)
	}
	// Failed exchange leaves both balances untouched.
	if got := balances.balances[account][ledger.FieldCoins]; got != 1000 {
		t.Fatalf("coins = %d, want 1000", got)
	}
	if got := balances.balances[account][ledger.FieldCash]; got != 100000 {
		t.Fatalf("cash = %d, want 100000", got)
	}
}

func TestExchangeValidation(t *testing.T) {
	svc, _, account := newExchangeFixture(t)
	ctx := context.Background()

	if err := svc.Exchange(ctx, ExchangeInput{Direction: enums.ExchangeCoinsToCash, Amount: 1}); !apperrors.Is(err, apperrors.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR for missing account, got %v", err)
	}
	if err := svc.Exchange(ctx, ExchangeInput{AccountID: account, Direction: "sideways", Amount: 1}); !apperrors.Is(err, apperrors.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR for bad direction, got %v", err)
	}
	if err := svc.Exchange(ctx, ExchangeInput{AccountID: account, Direction: enums.ExchangeCoinsToCash, Amount: 0}); !apperrors.Is(err, apperrors.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR for zero amount, got %v", err)
	}
	if err := svc.Exchange(ctx, ExchangeInput{AccountID: account, Direction: enums.ExchangeCoinsToCash, Amount: -3}); !apperrors.Is(err, apperrors.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR for negative amount, got %v", err)
	}
}
