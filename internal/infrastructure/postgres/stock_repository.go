package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/santoko/kasir-api/internal/domain/entity"
	"github.com/santoko/kasir-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo stock level adapter (usable with pool or tx). A missing row reads
// as zero stock; the row is created on the first Upsert.
type StockRepo struct {
	q Querier
}

// NewStockRepository builds the stock adapter. Pass pool or tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get returns the current stock of a product in a warehouse.
func (r *StockRepo) Get(productID, warehouseID int64) (*entity.StockLevel, error) {
	query := `
		SELECT product_id, warehouse_id, quantity, updated_at
		FROM stock_levels WHERE product_id = $1 AND warehouse_id = $2`
	var s entity.StockLevel
	err := r.q.QueryRow(context.Background(), query, productID, warehouseID).Scan(
		&s.ProductID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockLevel{ProductID: productID, WarehouseID: warehouseID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// GetForUpdate returns the stock row locked for update (SELECT FOR UPDATE).
func (r *StockRepo) GetForUpdate(productID, warehouseID int64) (*entity.StockLevel, error) {
	query := `
		SELECT product_id, warehouse_id, quantity, updated_at
		FROM stock_levels WHERE product_id = $1 AND warehouse_id = $2
		FOR UPDATE`
	var s entity.StockLevel
	err := r.q.QueryRow(context.Background(), query, productID, warehouseID).Scan(
		&s.ProductID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockLevel{ProductID: productID, WarehouseID: warehouseID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// Upsert inserts or updates the stock quantity (per product and warehouse).
func (r *StockRepo) Upsert(stock *entity.StockLevel) error {
	query := `
		INSERT INTO stock_levels (product_id, warehouse_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, stock.ProductID, stock.WarehouseID, stock.Quantity)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo append-only stock movement audit adapter.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository builds the movement adapter. Pass pool or tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create appends one movement audit row.
func (r *StockMovementRepo) Create(m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, store_id, reference_no, warehouse_id, product_id,
		                             start_qty, end_qty, run_qty, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.StoreID, m.ReferenceNo, m.WarehouseID, m.ProductID,
		m.StartQty, m.EndQty, m.RunQty, int(m.Reason), m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}
