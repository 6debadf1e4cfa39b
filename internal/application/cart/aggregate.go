package cart

import (
	"github.com/shopspring/decimal"

	"github.com/santoko/kasir-api/internal/domain/entity"
)

// Summary is the pure fold over a cart's lines that checkout builds the sale
// header from. Quantities and amounts are summed as stored on the lines; no
// re-pricing happens here.
type Summary struct {
	Items         int
	TotalQty      decimal.Decimal
	TotalPrice    decimal.Decimal
	TotalTax      decimal.Decimal
	TotalDiscount decimal.Decimal
	TotalProfit   decimal.Decimal
}

// Aggregate sums the given lines. ok is false when there are no lines, which
// callers must treat as an empty cart rather than a zero-amount sale.
func Aggregate(lines []*entity.CartLine) (s Summary, ok bool) {
	if len(lines) == 0 {
		return Summary{}, false
	}
	s.TotalQty = decimal.Zero
	s.TotalPrice = decimal.Zero
	s.TotalTax = decimal.Zero
	s.TotalDiscount = decimal.Zero
	s.TotalProfit = decimal.Zero
	for _, ln := range lines {
		s.Items++
		s.TotalQty = s.TotalQty.Add(ln.Quantity)
		s.TotalPrice = s.TotalPrice.Add(ln.Total)
		s.TotalTax = s.TotalTax.Add(ln.Tax)
		s.TotalDiscount = s.TotalDiscount.Add(ln.Discount)
		s.TotalProfit = s.TotalProfit.Add(ln.Profit)
	}
	return s, true
}
