// Package pricing implements the pure price/tax/profit arithmetic for cart
// lines. It has no side effects: the catalog lookup that produces a
// PriceQuote lives in the repository layer, and this package only computes.
//
// Every monetary intermediate is rounded to 2 decimal places, half-up, in the
// same order the store's historical system did it; totals reconcile exactly
// only when that order is preserved.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/santoko/kasir-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Calculation is the priced result for one cart line at a given quantity.
type Calculation struct {
	NetPrice decimal.Decimal // net unit price, 2 dp
	Tax      decimal.Decimal // tax amount for the whole line, 2 dp
	Total    decimal.Decimal // line total, 2 dp
	Profit   decimal.Decimal // qty * (net - cost), 2 dp
	TaxRate  decimal.Decimal
}

// Resolve prices a quote at the requested quantity for the given customer
// tier.
//
// Retail tier, tax-exclusive: net = listed price, tax = net*rate/100*qty,
// total = net*qty + tax. Retail tier, tax-inclusive: net = listed*100/(100+rate),
// tax = (listed-net)*qty, total = listed*qty. Branch and warehouse tiers buy
// at the cost basis with tax forced to zero regardless of the product's tax
// configuration.
func Resolve(q *entity.PriceQuote, qty decimal.Decimal, tier entity.CustomerTier) Calculation {
	listed := q.Price
	rate := q.TaxRate

	var net, tax, total decimal.Decimal
	if tier.Retail() {
		if q.TaxMethod.Exclusive() {
			net = listed
			tax = net.Mul(rate).Div(hundred).Mul(qty).Round(2)
			total = net.Mul(qty).Add(tax).Round(2)
		} else {
			net = hundred.Div(hundred.Add(rate)).Mul(listed)
			tax = listed.Sub(net).Mul(qty).Round(2)
			total = listed.Mul(qty).Round(2)
		}
	} else {
		net = listed
		rate = decimal.Zero
		tax = decimal.Zero
		total = listed.Mul(qty).Round(2)
	}

	// Profit uses the unrounded net price; only the result is rounded.
	profit := qty.Mul(net.Sub(q.Cost)).Round(2)

	return Calculation{
		NetPrice: net.Round(2),
		Tax:      tax,
		Total:    total,
		Profit:   profit,
		TaxRate:  rate,
	}
}

// TaxedUnitPrice returns the tax-inclusive unit price shown on cart lines:
// unit price plus the per-unit share of the line tax, 2 dp. Defined as zero
// when the quantity is zero.
func TaxedUnitPrice(unitPrice, tax, qty decimal.Decimal) decimal.Decimal {
	if qty.IsZero() {
		return decimal.Zero
	}
	return unitPrice.Add(tax.Div(qty)).Round(2)
}
