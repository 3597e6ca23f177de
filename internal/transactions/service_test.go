package transactions

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/paysecure/paysecure-backend/pkg/db/models"
	"github.com/paysecure/paysecure-backend/pkg/enums"
	"gorm.io/gorm"
)

type fakeTxnRepo struct {
	created []models.WalletTransaction
}

func (f *fakeTxnRepo) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeTxnRepo) Create(ctx context.Context, txn *models.WalletTransaction) error {
	f.created = append(f.created, *txn)
	return nil
}

func (f *fakeTxnRepo) ListByAccountID(ctx context.Context, accountID uuid.UUID, limit int) ([]models.WalletTransaction, error) {
	var out []models.WalletTransaction
	for _, txn := range f.created {
		if txn.FromAccountID == accountID || txn.ToAccountID == accountID {
			out = append(out, txn)
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeTxnRepo) ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]models.WalletTransaction, error) {
	var out []models.WalletTransaction
	for _, txn := range f.created {
		if txn.OrderID != nil && *txn.OrderID == orderID {
			out = append(out, txn)
		}
	}
	return out, nil
}

func TestRecordTransfer(t *testing.T) {
	repo := &fakeTxnRepo{}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}

	kind := enums.BalanceKindCoins
	txn, err := svc.Record(context.Background(), nil, RecordTransactionInput{
		Type:          enums.TransactionTypeTransfer,
		FromAccountID: uuid.New(),
		ToAccountID:   uuid.New(),
		Amount:        42,
		BalanceKind:   &kind,
	})
	if err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	if txn.Amount != 42 {
		t.Fatalf("amount = %d, want 42", txn.Amount)
	}
	if len(repo.created) != 1 {
		t.Fatalf("created %d records, want 1", len(repo.created))
	}
}

func TestRecordValidation(t *testing.T) {
	svc, _ := NewService(&fakeTxnRepo{})
	ctx := context.Background()
	from, to := uuid.New(), uuid.New()
	badKind := enums.BalanceKind("gold")

	cases := []struct {
		name  string
		input RecordTransactionInput
	}{
		{name: "bad type", input: RecordTransactionInput{Type: "refund", FromAccountID: from, ToAccountID: to, Amount: 1}},
		{name: "missing from", input: RecordTransactionInput{Type: enums.TransactionTypeTransfer, ToAccountID: to, Amount: 1}},
		{name: "missing to", input: RecordTransactionInput{Type: enums.TransactionTypeTransfer, FromAccountID: from, Amount: 1}},
		{name: "zero amount", input: RecordTransactionInput{Type: enums.TransactionTypeTransfer, FromAccountID: from, ToAccountID: to}},
		{name: "negative amount", input: RecordTransactionInput{Type: enums.TransactionTypeTransfer, FromAccountID: from, ToAccountID: to, Amount: -5}},
		{name: "bad kind", input: RecordTransactionInput{Type: enums.TransactionTypeTransfer, FromAccountID: from, ToAccountID: to, Amount: 1, BalanceKind: &badKind}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Record(ctx, nil, tc.input); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestListByAccountDefaultsLimit(t *testing.T) {
	repo := &fakeTxnRepo{}
	svc, _ := NewService(repo)
	ctx := context.Background()
	account := uuid.New()

	for i := 0; i < 3; i++ {
		_, err := svc.Record(ctx, nil, RecordTransactionInput{
			Type:          enums.TransactionTypeEscrowRelease,
			FromAccountID: account,
			ToAccountID:   uuid.New(),
			Amount:        int64(i + 1),
		})
		if err != nil {
			t.Fatalf("Record returned error: %v", err)
		}
	}

	txns, err := svc.ListByAccount(ctx, account, 0)
	if err != nil {
		t.Fatalf("ListByAccount returned error: %v", err)
	}
	if len(txns) != 3 {
		t.Fatalf("listed %d transactions, want 3", len(txns))
	}

	if _, err := svc.ListByAccount(ctx, uuid.Nil, 0); err == nil {
		t.Fatal("expected error for nil account id")
	}
}
