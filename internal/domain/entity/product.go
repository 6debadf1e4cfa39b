package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxMethod controls whether the listed price carries the tax.
// Wire value 1 means tax-exclusive; any other value (including absent)
// is treated as tax-inclusive.
type TaxMethod int

const (
	TaxExclusive TaxMethod = 1
	TaxInclusive TaxMethod = 2
)

// Exclusive reports whether tax is added on top of the listed price.
func (m TaxMethod) Exclusive() bool { return m == TaxExclusive }

// Product is catalog master data, read-only for this service.
// Promotion fields are advisory metadata surfaced on cart responses.
type Product struct {
	ID             int64
	StoreID        int64
	Barcode        string
	Code           string
	Name           string
	SaleUnitID     int64
	Cost           decimal.Decimal
	TaxID          int64
	TaxMethod      TaxMethod
	IsPoint        int
	Promotion      int
	PromotionPrice decimal.Decimal
	MaxItemPromo   int
	StartingDate   *time.Time
	LastDate       *time.Time
}

// PromotionActive reports whether the product has a promotion running at now.
func (p *Product) PromotionActive(now time.Time) bool {
	if p.Promotion != 1 || p.StartingDate == nil || p.LastDate == nil {
		return false
	}
	return !now.Before(*p.StartingDate) && !now.After(*p.LastDate)
}

// PriceQuote is the catalog row the pricing resolver works on: the listed
// price selected for (product, quantity, tier, warehouse) plus the tax and
// unit reference data needed to compute a cart line.
type PriceQuote struct {
	ProductID int64
	Barcode   string
	Name      string
	UnitID    int64
	UnitName  string
	Price     decimal.Decimal // listed price for the quantity tier (cost basis for branch/warehouse tiers)
	Cost      decimal.Decimal
	TaxRate   decimal.Decimal
	TaxMethod TaxMethod
	IsPoint   int
}
