package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock movement reasons (status_qty wire codes).
type StockMovementReason int

const (
	MovementSale StockMovementReason = 1
)

// StockLevel is the available quantity of a product in a warehouse.
// Finalize decrements it under a row lock; it must never go negative.
type StockLevel struct {
	ProductID   int64
	WarehouseID int64
	Quantity    decimal.Decimal
	UpdatedAt   time.Time
}

// StockMovement is the append-only audit row written for every StockLevel
// mutation, capturing the quantity before and after plus the signed delta.
type StockMovement struct {
	ID          string // uuid
	StoreID     int64
	ReferenceNo string
	WarehouseID int64
	ProductID   int64
	StartQty    decimal.Decimal
	EndQty      decimal.Decimal
	RunQty      decimal.Decimal
	Reason      StockMovementReason
	CreatedAt   time.Time
}
