package postgres

import (
	"context"
	"fmt"

	"github.com/santoko/kasir-api/internal/domain/entity"
	"github.com/santoko/kasir-api/internal/domain/repository"
)

var _ repository.CustomerLogRepository = (*CustomerLogRepo)(nil)

// CustomerLogRepo append-only customer activity adapter.
type CustomerLogRepo struct {
	q Querier
}

// NewCustomerLogRepository builds the log adapter. Pass pool or tx (Querier).
func NewCustomerLogRepository(q Querier) *CustomerLogRepo {
	return &CustomerLogRepo{q: q}
}

// Create appends one customer activity row.
func (r *CustomerLogRepo) Create(l *entity.CustomerLog) error {
	query := `
		INSERT INTO customer_logs (id, customer_id, kind, amount, reff_id, status, store_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		l.ID, l.CustomerID, int(l.Kind), l.Amount, l.ReffID, l.Status, l.StoreID, l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert customer log: %w", err)
	}
	return nil
}
