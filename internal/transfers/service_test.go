package transfers

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/paysecure/paysecure-backend/internal/ledger"
	"github.com/paysecure/paysecure-backend/internal/transactions"
	"github.com/paysecure/paysecure-backend/pkg/db/models"
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
	if amount <= 0 {
		return apperrors.New(apperrors.CodeValidation, "amount must be positive")
	}
	if from == to {
		return apperrors.New(apperrors.CodeSelfTransfer, "cannot move funds to the same account")
	}
	return f.Apply(ctx, tx, []ledger.Entry{
		{AccountID: from, Field: field, Delta: -amount},
		{AccountID: to, Field: field, Delta: amount},
	})
}

type fakeTxnService struct {
	recorded []transactions.RecordTransactionInput
}

func (f *fakeTxnService) Record(ctx context.Context, tx *gorm.DB, input transactions.RecordTransactionInput) (*models.WalletTransaction, error) {
	f.recorded = append(f.recorded, input)
	return &models.WalletTransaction{Amount: input.Amount, Type: input.Type}, nil
}

func (f *fakeTxnService) ListByAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]models.WalletTransaction, error) {
	return nil, nil
}

func (f *fakeTxnService) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.WalletTransaction, error) {
	return nil, nil
}

type fakeRunner struct{}

func (fakeRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(&gorm.DB{})
}

func newTransferFixture(t *testing.T) (Service, *fakeBalances, *fakeTxnService, uuid.UUID, uuid.UUID) {
	t.Helper()

	balances := newFakeBalances()
	txns := &fakeTxnService{}
	sender := uuid.New()
	recipient := uuid.New()
	balances.seed(sender, ledger.FieldCoins, 1000)
	balances.seed(sender, ledger.FieldCash, 100000)
	balances.seed(recipient, ledger.FieldCoins, 0)
	balances.seed(recipient, ledger.FieldCash, 0)

	svc, err := NewService(ServiceParams{
		Ledger:       balances,
		Transactions: txns,
		TxRunner:     fakeRunner{},
	})
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}
	return svc, balances, txns, sender, recipient
}

func TestTransferCoins(t *testing.T) {
	svc, balances, txns, sender, recipient := newTransferFixture(t)

	record, err := svc.Transfer(context.Background(), TransferInput{
		FromAccountID: sender,
		ToAccountID:   recipient,
		Kind:          enums.BalanceKindCoins,
		Amount:        300,
	})
	if err != nil {
		t.Fatalf("Transfer returned error: %v", err)
	}
	if record.Amount != 300 {
		t.Fatalf("record amount = %d, want 300", record.Amount)
	}
	if got := balances.balances[sender][ledger.FieldCoins]; got != 700 {
		t.Fatalf("sender coins = %d, want 700", got)
	}
	if got := balances.balances[recipient][ledger.FieldCoins]; got != 300 {
		t.Fatalf("recipient coins = %d, want 300", got)
	}
	if len(txns.recorded) != 1 {
		t.Fatalf("expected one transaction record, got %d", len(txns.recorded))
	}
	if txns.recorded[0].BalanceKind == nil || *txns.recorded[0].BalanceKind != enums.BalanceKindCoins {
		t.Fatalf("record balance kind = %v, want coins", txns.recorded[0].BalanceKind)
	}
}

func TestTransferCashInsufficient(t *testing.T) {
	svc, balances, txns, sender, recipient := newTransferFixture(t)

	_, err := svc.Transfer(context.Background(), TransferInput{
		FromAccountID: sender,
		ToAccountID:   recipient,
		Kind:          enums.BalanceKindCash,
		Amount:        100001,
	})
	if !apperrors.Is(err, apperrors.CodeInsufficientFunds) {
		t.Fatalf("expected INSUFFICIENT_FUNDS, got %v", err)
	}
	if got := balances.balances[sender][ledger.FieldCash]; got != 100000 {
		t.Fatalf("sender cash = %d, want untouched 100000", got)
	}
	if len(txns.recorded) != 0 {
		t.Fatalf("failed transfer must not log, got %d records", len(txns.recorded))
	}
}

func TestTransferValidation(t *testing.T) {
	svc, _, _, sender, recipient := newTransferFixture(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		input TransferInput
		code  apperrors.Code
	}{
		{name: "self", input: TransferInput{FromAccountID: sender, ToAccountID: sender, Kind: enums.BalanceKindCoins, Amount: 1}, code: apperrors.CodeSelfTransfer},
		{name: "missing recipient", input: TransferInput{FromAccountID: sender, Kind: enums.BalanceKindCoins, Amount: 1}, code: apperrors.CodeValidation},
		{name: "bad kind", input: TransferInput{FromAccountID: sender, ToAccountID: recipient, Kind: "gold", Amount: 1}, code: apperrors.CodeValidation},
		{name: "zero amount", input: TransferInput{FromAccountID: sender, ToAccountID: recipient, Kind: enums.BalanceKindCoins}, code: apperrors.CodeValidation},
		{name: "unknown account", input: TransferInput{FromAccountID: sender, ToAccountID: uuid.New(), Kind: enums.BalanceKindCoins, Amount: 1}, code: apperrors.CodeNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Transfer(ctx, tc.input)
			if !apperrors.Is(err, tc.code) {
				t.Fatalf("expected %s, got %v", tc.code, err)
			}
		})
	}
}
