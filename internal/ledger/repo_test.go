package ledger

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/paysecure/paysecure-backend/pkg/db/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupLedgerTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	accounts := `
CREATE TABLE IF NOT EXISTS accounts (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  coin_balance INTEGER NOT NULL DEFAULT 0,
  cash_cents INTEGER NOT NULL DEFAULT 0,
  escrow_balance INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(accounts).Error)
	require.NoError(t, db.Exec("DELETE FROM accounts").Error)
	return db
}

func createLedgerTestAccount(t *testing.T, db *gorm.DB, coins, cash, escrow int64) uuid.UUID {
	t.Helper()
	account := &models.Account{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		CoinBalance:   coins,
		CashCents:     cash,
		EscrowBalance: escrow,
	}
	require.NoError(t, db.Create(account).Error)
	return account.ID
}

func TestApplyDeltaCreditAndDebit(t *testing.T) {
	db := setupLedgerTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	accountID := createLedgerTestAccount(t, db, 100, 0, 0)

	affected, err := repo.ApplyDelta(ctx, accountID, FieldCoins, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	affected, err = repo.ApplyDelta(ctx, accountID, FieldCoins, -150)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	var account models.Account
	require.NoError(t, db.First(&account, "id = ?", accountID).Error)
	assert.Equal(t, int64(0), account.CoinBalance)
}

func TestApplyDeltaGuardBlocksOverdraft(t *testing.T) {
	db := setupLedgerTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	accountID := createLedgerTestAccount(t, db, 0, 100, 0)

	affected, err := repo.ApplyDelta(ctx, accountID, FieldCash, -101)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)

	var account models.Account
	require.NoError(t, db.First(&account, "id = ?", accountID).Error)
	assert.Equal(t, int64(100), account.CashCents, "failed guard must leave balance untouched")
}

func TestApplyDeltaUnknownAccount(t *testing.T) {
	db := setupLedgerTestDB(t)
	repo := NewRepository(db)

	affected, err := repo.ApplyDelta(context.Background(), uuid.New(), FieldEscrow, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
}

func TestApplyDeltaRejectsUnknownField(t *testing.T) {
	db := setupLedgerTestDB(t)
	repo := NewRepository(db)

	_, err := repo.ApplyDelta(context.Background(), uuid.New(), BalanceField("password_hash"), 1)
	require.Error(t, err)
}

func TestExists(t *testing.T) {
	db := setupLedgerTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	accountID := createLedgerTestAccount(t, db, 0, 0, 0)

	exists, err := repo.Exists(ctx, accountID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, exists)
}
