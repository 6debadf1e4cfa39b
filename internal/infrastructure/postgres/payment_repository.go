package postgres

import (
	"context"
	"fmt"

	"github.com/santoko/kasir-api/internal/domain/entity"
	"github.com/santoko/kasir-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo append-only payment adapter. One row per finalize.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository builds the payment adapter. Pass pool or tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// Create appends one payment row.
func (r *PaymentRepo) Create(p *entity.Payment) error {
	query := `
		INSERT INTO payments (id, reference_no, payment_reference, user_id, account_id,
		                      paying, amount, change_due, paying_method, payment_note,
		                      store_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.ReferenceNo, p.PaymentReference, p.UserID, p.AccountID,
		p.Paying, p.Amount, p.Change, p.PayingMethod, nullIfEmpty(p.PaymentNote),
		p.StoreID, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}
