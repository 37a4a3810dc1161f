package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/luminaretail/orders-backend/pkg/migrate"
)

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %q", pattern)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}

func TestStockLedgerMigrationContainsSchemas(t *testing.T) {
	content := readMigration(t, "*_create_products_and_stock_ledgers.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS products",
		"CREATE TABLE IF NOT EXISTS stock_ledgers",
		"baseline_qty",
		"current_qty",
		"display_qty",
		"reserved_qty",
		"last_sync_at",
		"inventory_updated_at",
		"display_synced_at",
		"CONSTRAINT stock_ledgers_nonnegative",
		"CREATE INDEX IF NOT EXISTS idx_products_branch_is_active",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestOrdersMigrationContainsSchemas(t *testing.T) {
	content := readMigration(t, "*_create_orders_tables.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS orders",
		"CREATE TABLE IF NOT EXISTS order_items",
		"stock_applied_at",
		"CHECK (qty > 0)",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_orders_order_number",
		"CREATE INDEX IF NOT EXISTS idx_orders_branch_status",
		"CREATE INDEX IF NOT EXISTS idx_order_items_product_id",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestMigrationDirValidates(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}

func TestDialectFor(t *testing.T) {
	if got := migrate.DialectFor("sqlite"); got != "sqlite3" {
		t.Errorf("sqlite driver: got %q", got)
	}
	if got := migrate.DialectFor("postgres"); got != "postgres" {
		t.Errorf("postgres driver: got %q", got)
	}
	if got := migrate.DialectFor(""); got != "postgres" {
		t.Errorf("empty driver: got %q", got)
	}
}
