package cart_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/santoko/kasir-api/internal/application/cart"
	"github.com/santoko/kasir-api/internal/domain/entity"
)

func TestAggregate_Empty(t *testing.T) {
	_, ok := cart.Aggregate(nil)
	assert.False(t, ok, "an empty cart must be a distinct signal, not zero values")

	_, ok = cart.Aggregate([]*entity.CartLine{})
	assert.False(t, ok)
}

func TestAggregate_Sums(t *testing.T) {
	lines := []*entity.CartLine{
		{
			Quantity: d("2"), Total: d("3000"), Tax: d("300"),
			Discount: d("0"), Profit: d("1000"),
		},
		{
			Quantity: d("1.5"), Total: d("2250"), Tax: d("0"),
			Discount: d("50"), Profit: d("750"),
		},
	}
	s, ok := cart.Aggregate(lines)

	assert.True(t, ok)
	assert.Equal(t, 2, s.Items)
	assert.True(t, s.TotalQty.Equal(d("3.5")))
	assert.True(t, s.TotalPrice.Equal(d("5250")))
	assert.True(t, s.TotalTax.Equal(d("300")))
	assert.True(t, s.TotalDiscount.Equal(d("50")))
	assert.True(t, s.TotalProfit.Equal(d("1750")))
}

func TestAggregate_ZeroTotalIsNotEmpty(t *testing.T) {
	// A cart holding only zero-amount lines still aggregates as non-empty.
	s, ok := cart.Aggregate([]*entity.CartLine{{Quantity: decimal.Zero, Total: decimal.Zero}})

	assert.True(t, ok)
	assert.Equal(t, 1, s.Items)
	assert.True(t, s.TotalPrice.Equal(decimal.Zero))
}
