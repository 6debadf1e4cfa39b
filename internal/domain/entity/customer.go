package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerTier selects which pricing rule applies. Wire codes are historical:
// retail customers buy from the tiered price list, branches and warehouses
// buy at cost with tax forced to zero.
type CustomerTier int

const (
	TierRetail    CustomerTier = 1
	TierBranch    CustomerTier = 2
	TierWarehouse CustomerTier = 3
)

// Retail reports whether the tiered retail price list applies.
func (t CustomerTier) Retail() bool { return t == TierRetail }

// Customer master data, read-only for this service. Deposit is the loyalty
// point balance; Expense the outstanding receivable (piutang), both surfaced
// verbatim when a cart is opened.
type Customer struct {
	ID          int64
	StoreID     int64
	Code        string
	Name        string
	PhoneNumber string
	Email       string
	Tier        CustomerTier
	Deposit     decimal.Decimal
	Expense     decimal.Decimal
	IsActive    int
	CreatedAt   time.Time
}

// CustomerLog is the append-only per-customer activity record written once
// per finalize. Never updated.
type CustomerLog struct {
	ID         string // uuid
	CustomerID int64
	Kind       TransactionKind
	Amount     decimal.Decimal
	ReffID     int64 // sale id
	Status     int
	StoreID    int64
	CreatedAt  time.Time
}
