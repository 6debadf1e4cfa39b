package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment methods. Numeric values are the historical wire codes; COD is the
// only deferred-settlement method.
type PaymentMethod int

const (
	PayCash     PaymentMethod = 1
	PayOvo      PaymentMethod = 2
	PayGopay    PaymentMethod = 3
	PayShopee   PaymentMethod = 4
	PayTransfer PaymentMethod = 5
	PayCOD      PaymentMethod = 6
	PayQRIS     PaymentMethod = 7
)

// Deferred reports whether settlement may happen after delivery, which allows
// unpaid and partially paid sales.
func (m PaymentMethod) Deferred() bool { return m == PayCOD }

// Name returns the display name stored on payment rows.
func (m PaymentMethod) Name() string {
	switch m {
	case PayCash:
		return "Cash"
	case PayOvo:
		return "Ovo"
	case PayGopay:
		return "Gopay"
	case PayShopee:
		return "Shopee"
	case PayTransfer:
		return "Transfer"
	case PayCOD:
		return "COD"
	case PayQRIS:
		return "QRIS"
	default:
		return "Cash"
	}
}

// Payment status wire values.
type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "1"
	PaymentPartial PaymentStatus = "3"
	PaymentPaid    PaymentStatus = "4"
)

// Sale status for finalized sales.
const SaleStatusProcessed = "1"

// Ledger movement kinds. One ledger entry is written per non-zero monetary
// component of a finalize.
type LedgerKind int

const (
	LedgerSale            LedgerKind = 1
	LedgerPointRedemption LedgerKind = 7
	LedgerOrderDiscount   LedgerKind = 9
	LedgerShippingCost    LedgerKind = 10
	LedgerServiceFee      LedgerKind = 11
)

// Sale is the durable record of a completed transaction. Created exactly once
// per successful finalize and never mutated afterwards; corrections use
// compensating records (a return), not updates.
type Sale struct {
	ID            int64
	ReferenceNo   string
	StoreID       int64
	WarehouseID   int64
	BillerID      int64
	CustomerID    int64
	UserID        int64
	Item          int
	TotalQty      decimal.Decimal
	TotalDiscount decimal.Decimal
	TotalTax      decimal.Decimal
	TotalPrice    decimal.Decimal
	// TotalPriceRounded is TotalPrice truncated down to the nearest 100
	// minor units, the store's rounding convention. Grand total and the
	// sale ledger entry build on this figure, not on TotalPrice.
	TotalPriceRounded decimal.Decimal
	GrandTotal        decimal.Decimal
	OrderTaxRate      decimal.Decimal
	OrderTax          decimal.Decimal
	OrderDiscount     decimal.Decimal
	ShippingCost      decimal.Decimal
	ServiceFee        decimal.Decimal
	PointDiscount     decimal.Decimal
	CouponDiscount    decimal.Decimal
	SaleStatus        string
	PaymentStatus     PaymentStatus
	PaidAmount        decimal.Decimal
	SaleNote          string
	StaffNote         string
	CustomerAlias     string
	IsShipped         int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// SaleLine is the immutable snapshot of a cart line at finalize time, linked
// to the sale by reference number (the cart lines themselves are deleted).
type SaleLine struct {
	ID           int64
	ReferenceNo  string
	ProductID    int64
	Qty          decimal.Decimal
	SaleUnitID   int64
	NetUnitPrice decimal.Decimal
	Discount     decimal.Decimal
	TaxRate      decimal.Decimal
	Tax          decimal.Decimal
	Total        decimal.Decimal
	Profit       decimal.Decimal
	CreatedAt    time.Time
}

// Payment records the tender for one sale. 1:1 with Sale; no split tender.
type Payment struct {
	ID               string // uuid
	ReferenceNo      string
	PaymentReference string
	UserID           int64
	AccountID        int64
	Paying           decimal.Decimal // amount tendered
	Amount           decimal.Decimal // amount applied to the sale
	Change           decimal.Decimal // tendered minus grand total, may be negative (piutang)
	PayingMethod     string
	PaymentNote      string
	StoreID          int64
	CreatedAt        time.Time
}

// LedgerEntry is an append-only bookkeeping record tagged by movement kind,
// always referencing the sale's reference number. Write-once.
type LedgerEntry struct {
	ID              string // uuid
	Kind            LedgerKind
	ReferenceNo     string
	UserID          int64
	CustomerID      int64
	Amount          decimal.Decimal
	Paid            decimal.Decimal
	TrxID           int64 // sale id
	PaymentMethodID PaymentMethod
	StoreID         int64
	WarehouseID     int64
	CreatedAt       time.Time
}
