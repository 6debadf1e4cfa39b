package repository

import "github.com/santoko/kasir-api/internal/domain/entity"

// StockRepository reads and updates per-(product, warehouse) stock levels.
// Used inside transactions to guarantee consistency of the decrement.
type StockRepository interface {
	Get(productID, warehouseID int64) (*entity.StockLevel, error)
	// GetForUpdate locks the stock row (SELECT FOR UPDATE) so that reading
	// the current quantity and writing the decremented one is indivisible
	// with respect to other finalizes.
	GetForUpdate(productID, warehouseID int64) (*entity.StockLevel, error)
	Upsert(stock *entity.StockLevel) error
}

// StockMovementRepository appends audit rows for stock mutations. Write-once.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
}
