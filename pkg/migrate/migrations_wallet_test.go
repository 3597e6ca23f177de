package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paysecure/paysecure-backend/pkg/migrate"
)

func TestMigrationsDirValidates(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}

func TestAccountsMigrationContainsBalanceGuards(t *testing.T) {
	content := readMigration(t, "*_create_accounts.sql")

	checks := []string{
		"CREATE TABLE accounts",
		"CHECK (coin_balance >= 0)",
		"CHECK (cash_cents >= 0)",
		"CHECK (escrow_balance >= 0)",
		"UNIQUE (user_id)",
		"DROP TABLE accounts",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestOrdersMigrationContainsStateGuards(t *testing.T) {
	content := readMigration(t, "*_create_escrow_orders.sql")

	checks := []string{
		"CREATE TABLE escrow_orders",
		// BY DEFAULT identity: restores insert exported order numbers verbatim.
		"order_number BIGINT GENERATED BY DEFAULT AS IDENTITY",
		"CHECK (amount_coins > 0)",
		"CHECK (buyer_id <> seller_id)",
		"'initiated', 'accepted', 'shipped', 'completed', 'disputed', 'cancelled'",
		"DROP TABLE escrow_orders",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func readMigration(t *testing.T, pattern string) string {
	t.Helper()

	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %q found", pattern)
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}
