package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/santoko/kasir-api/internal/application/cart"
	"github.com/santoko/kasir-api/internal/application/checkout"
	"github.com/santoko/kasir-api/internal/domain/repository"
)

// Ensure TxRunner implements cart.TxRunner and checkout.TxRunner.
var _ cart.TxRunner = (*TxRunner)(nil)
var _ checkout.TxRunner = (*TxRunner)(nil)

// TxRunner runs callbacks inside a PostgreSQL transaction.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner over the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run starts a transaction, runs fn with repos bound to the tx and commits,
// or rolls back when fn fails. Used by cart line merges.
func (r *TxRunner) Run(ctx context.Context, fn func(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	cartRepo := NewCartRepository(tx)
	productRepo := NewProductRepository(tx)

	if err := fn(cartRepo, productRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunCheckout starts a transaction with the full finalize repo set. Every
// write of the finalize sequence commits together or not at all.
func (r *TxRunner) RunCheckout(ctx context.Context, fn func(
	cartRepo repository.CartRepository,
	saleRepo repository.SaleRepository,
	stockRepo repository.StockRepository,
	movementRepo repository.StockMovementRepository,
	paymentRepo repository.PaymentRepository,
	ledgerRepo repository.LedgerRepository,
	customerLogRepo repository.CustomerLogRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewCartRepository(tx),
		NewSaleRepository(tx),
		NewStockRepository(tx),
		NewStockMovementRepository(tx),
		NewPaymentRepository(tx),
		NewLedgerRepository(tx),
		NewCustomerLogRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
