package postgres

import (
	"context"
	"fmt"

	"github.com/santoko/kasir-api/internal/domain/entity"
	"github.com/santoko/kasir-api/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo append-only balance ledger adapter. Write-once rows.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository builds the ledger adapter. Pass pool or tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

// Create appends one ledger entry.
func (r *LedgerRepo) Create(e *entity.LedgerEntry) error {
	query := `
		INSERT INTO balance_ledger (id, kind, reference_no, user_id, customer_id, amount, paid,
		                            trx_id, payment_method_id, store_id, warehouse_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, int(e.Kind), e.ReferenceNo, e.UserID, e.CustomerID, e.Amount, e.Paid,
		e.TrxID, int(e.PaymentMethodID), e.StoreID, e.WarehouseID, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}
