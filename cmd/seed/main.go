// seed populates a development database with a minimal demo dataset: one
// operator, one retail customer, units, a tax, two products with tiered
// prices and opening stock.
//
// Usage: go run ./cmd/seed
// Connection settings come from the same env vars as the API (DB_*, DATABASE_URL).
package main

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/santoko/kasir-api/internal/infrastructure/postgres"
	"github.com/santoko/kasir-api/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load configuration: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect to PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte("kasir123"), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash password: %v\n", err)
		os.Exit(1)
	}

	statements := []struct {
		desc string
		sql  string
		args []any
	}{
		{"operator", `
			INSERT INTO users (store_id, warehouse_id, email, password_hash, name, status, created_at, updated_at)
			VALUES (1, 1, 'kasir@toko.local', $1, 'Kasir Demo', 'active', now(), now())
			ON CONFLICT (email) DO NOTHING`,
			[]any{string(hash)}},
		{"units", `
			INSERT INTO units (id, name) VALUES (1, 'pcs'), (2, 'box')
			ON CONFLICT (id) DO NOTHING`, nil},
		{"tax", `
			INSERT INTO taxes (id, rate) VALUES (1, 11)
			ON CONFLICT (id) DO NOTHING`, nil},
		{"customer", `
			INSERT INTO customers (id, store_id, code, name, phone_number, email, customer_group_id,
			                       deposit, expense, is_active, created_at)
			VALUES (1, 1, 'CUST-001', 'Pelanggan Umum', '0800000000', NULL, 1, 0, 0, 1, now())
			ON CONFLICT (id) DO NOTHING`, nil},
		{"products", `
			INSERT INTO products (id, store_id, barcode, code, name, sale_unit_id, cost, tax_id,
			                      tax_method, is_point, promotion, promotion_price, max_item_promo,
			                      starting_date, last_date)
			VALUES
				(1, 1, '8991002101234', 'KOPI-01', 'Kopi Bubuk 200g', 1, 12000, 1, 1, 1, 0, NULL, 0, NULL, NULL),
				(2, 1, '8991002105678', 'GULA-01', 'Gula Pasir 1kg', 1, 1200, NULL, 2, 0, 0, NULL, 0, NULL, NULL)
			ON CONFLICT (id) DO NOTHING`, nil},
		{"prices", `
			INSERT INTO product_prices (product_id, warehouse_id, minimal, price)
			VALUES
				(1, 1, 0, 15000), (1, 1, 10, 14000),
				(2, 1, 0, 1500), (2, 1, 12, 1400)
			ON CONFLICT DO NOTHING`, nil},
		{"stock", `
			INSERT INTO stock_levels (product_id, warehouse_id, quantity, updated_at)
			VALUES (1, 1, 100, now()), (2, 1, 200, now())
			ON CONFLICT (product_id, warehouse_id) DO NOTHING`, nil},
	}

	for _, st := range statements {
		if _, err := pool.Exec(ctx, st.sql, st.args...); err != nil {
			fmt.Fprintf(os.Stderr, "seed %s: %v\n", st.desc, err)
			os.Exit(1)
		}
		fmt.Printf("seeded %s\n", st.desc)
	}

	fmt.Println("done. login: kasir@toko.local / kasir123")
}
