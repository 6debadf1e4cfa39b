package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction kinds. Numeric values are the historical wire codes.
type TransactionKind int

const (
	KindSale   TransactionKind = 1
	KindReturn TransactionKind = 5
)

// KindFromReference recovers the transaction kind from a reference number
// prefix (P for sales, R for returns).
func KindFromReference(referenceNo string) TransactionKind {
	if len(referenceNo) > 0 && referenceNo[0] == 'R' {
		return KindReturn
	}
	return KindSale
}

// Cart lifecycle status. Open carts use "0"; anything else means the cart was
// already taken over by a finalize and must not be mutated.
const CartStatusOpen = "0"

// Cart is the header of one in-progress transaction. It is owned by the
// operator that opened it and is hard-deleted when the cart is finalized,
// so a Cart never survives as the record of a completed sale.
type Cart struct {
	ID          int64
	WarehouseID int64
	BillerID    int64
	CustomerID  int64
	OperatorID  int64
	Kind        TransactionKind
	Status      string
	CreatedAt   time.Time
}

// Open reports whether the cart can still be mutated or finalized.
func (c *Cart) Open() bool { return c.Status == CartStatusOpen }

// CartLine is one product entry within a cart. Name, barcode, unit and all
// priced fields are snapshots taken at add time; the catalog is not re-read
// when the cart is listed or finalized. At most one line exists per
// (cart, barcode) pair; repeated barcodes merge into the existing line.
type CartLine struct {
	No        int64 // sequence number, insertion order
	CartID    int64
	Barcode   string
	ProductID int64
	Name      string
	Quantity  decimal.Decimal
	Unit      string
	UnitID    int64
	UnitPrice decimal.Decimal // net unit price
	Discount  decimal.Decimal
	Total     decimal.Decimal
	Profit    decimal.Decimal
	IsPoint   int
	TaxRate   decimal.Decimal
	Tax       decimal.Decimal
}
