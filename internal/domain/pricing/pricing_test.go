package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/santoko/kasir-api/internal/domain/entity"
	"github.com/santoko/kasir-api/internal/domain/pricing"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func quote(price, cost, rate string, method entity.TaxMethod) *entity.PriceQuote {
	return &entity.PriceQuote{
		ProductID: 1,
		Price:     d(price),
		Cost:      d(cost),
		TaxRate:   d(rate),
		TaxMethod: method,
	}
}

func TestResolve_RetailExclusive(t *testing.T) {
	// net = listed, tax added on top: 1500 * 10/100 * 2 = 300
	calc := pricing.Resolve(quote("1500", "1000", "10", entity.TaxExclusive), d("2"), entity.TierRetail)

	assert.True(t, calc.NetPrice.Equal(d("1500")), "net price must be the listed price")
	assert.True(t, calc.Tax.Equal(d("300")), "tax = net*rate/100*qty")
	assert.True(t, calc.Total.Equal(d("3300")), "total = net*qty + tax")
	assert.True(t, calc.Profit.Equal(d("1000")), "profit = qty*(net-cost)")
	assert.True(t, calc.TaxRate.Equal(d("10")))
}

func TestResolve_RetailInclusive(t *testing.T) {
	// listed carries the tax: net = 1100 * 100/110 = 1000
	calc := pricing.Resolve(quote("1100", "800", "10", entity.TaxInclusive), d("3"), entity.TierRetail)

	assert.True(t, calc.NetPrice.Equal(d("1000")), "net = listed*100/(100+rate)")
	assert.True(t, calc.Tax.Equal(d("300")), "tax = (listed-net)*qty")
	assert.True(t, calc.Total.Equal(d("3300")), "total = listed*qty")
	assert.True(t, calc.Profit.Equal(d("600")), "profit = qty*(net-cost)")
}

func TestResolve_InclusiveRoundsToTwoPlaces(t *testing.T) {
	// net = 1000*100/107 = 934.5794..., stored net rounds to 934.58 while
	// tax and profit are computed from the unrounded value.
	calc := pricing.Resolve(quote("1000", "900", "7", entity.TaxInclusive), d("1"), entity.TierRetail)

	assert.True(t, calc.NetPrice.Equal(d("934.58")), "net rounds half-up to 2 dp, got %s", calc.NetPrice)
	assert.True(t, calc.Tax.Equal(d("65.42")), "tax rounds to 2 dp, got %s", calc.Tax)
	assert.True(t, calc.Total.Equal(d("1000")))
	assert.True(t, calc.Profit.Equal(d("34.58")), "profit uses the unrounded net, got %s", calc.Profit)
}

func TestResolve_ZeroRate(t *testing.T) {
	calc := pricing.Resolve(quote("1500", "1000", "0", entity.TaxExclusive), d("2"), entity.TierRetail)

	assert.True(t, calc.Tax.Equal(decimal.Zero))
	assert.True(t, calc.Total.Equal(d("3000")))
}

func TestResolve_BranchTierUsesCostAndForcesZeroTax(t *testing.T) {
	// Non-retail tiers receive the cost basis in Price and ignore the tax
	// configuration entirely.
	q := quote("1000", "1000", "11", entity.TaxExclusive)
	calc := pricing.Resolve(q, d("5"), entity.TierBranch)

	assert.True(t, calc.NetPrice.Equal(d("1000")))
	assert.True(t, calc.Tax.Equal(decimal.Zero), "tax is forced to zero for branch tier")
	assert.True(t, calc.TaxRate.Equal(decimal.Zero))
	assert.True(t, calc.Total.Equal(d("5000")))
	assert.True(t, calc.Profit.Equal(decimal.Zero), "selling at cost yields zero profit")
}

func TestResolve_NegativeQuantity(t *testing.T) {
	// Return carts price lines at negative quantities; totals flip sign.
	calc := pricing.Resolve(quote("1500", "1000", "0", entity.TaxExclusive), d("-2"), entity.TierRetail)

	assert.True(t, calc.Total.Equal(d("-3000")))
	assert.True(t, calc.Profit.Equal(d("-1000")))
}

func TestTaxedUnitPrice(t *testing.T) {
	assert.True(t, pricing.TaxedUnitPrice(d("1500"), d("300"), d("2")).Equal(d("1650")),
		"unit price plus per-unit tax share")
	assert.True(t, pricing.TaxedUnitPrice(d("1500"), d("0"), d("3")).Equal(d("1500")))
	assert.True(t, pricing.TaxedUnitPrice(d("1500"), d("300"), decimal.Zero).Equal(decimal.Zero),
		"defined as zero when quantity is zero")
}
